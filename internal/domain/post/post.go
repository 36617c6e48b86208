package post

import (
	"errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultAuthor 為未填作者時使用的名稱。
const DefaultAuthor = "Anonymous"

var (
	// ErrNotFound 表示找不到指定 id 的文章。
	ErrNotFound = errors.New("post not found")
	// ErrValidation 表示表單欄位不合法（標題或內容為空）。
	ErrValidation = errors.New("title and content are required")
)

// Post 為部落格文章。
type Post struct {
	ID        int64
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Draft 是寫入儲存層前的文章欄位，已完成清理。
type Draft struct {
	Title   string
	Content string
	Author  string
}

// Validate 僅檢查 title 與 content 非空白。
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Content) == "" {
		return ErrValidation
	}
	return nil
}

// policy 移除 script/style、事件屬性與 javascript: 連結，保留一般排版標籤。
var policy = bluemonday.UGCPolicy()

// Sanitize 去除內容中的可執行標記。
func Sanitize(content string) string {
	return policy.Sanitize(content)
}

// NewDraft 建立新文章用的 Draft；author 為空時帶入預設值。
func NewDraft(title, content, author string) Draft {
	author = strings.TrimSpace(author)
	if author == "" {
		author = DefaultAuthor
	}
	return Draft{
		Title:   strings.TrimSpace(title),
		Content: Sanitize(content),
		Author:  author,
	}
}

// EditDraft 建立更新用的 Draft；author 為空時保留原作者，由儲存層處理。
func EditDraft(title, content, author string) Draft {
	return Draft{
		Title:   strings.TrimSpace(title),
		Content: Sanitize(content),
		Author:  strings.TrimSpace(author),
	}
}
