package blog

import (
	"context"
	"fmt"

	"pg-blog/internal/domain/post"
)

// PostRepository 為文章儲存層，Postgres 與記憶體版本皆實作此介面。
type PostRepository interface {
	List(ctx context.Context) ([]post.Post, error)
	Get(ctx context.Context, id int64) (post.Post, error)
	Create(ctx context.Context, d post.Draft) (post.Post, error)
	// Update 在 d.Author 為空時保留原作者。
	Update(ctx context.Context, id int64, d post.Draft) (post.Post, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Service 負責文章的驗證、清理與預設值，再交給儲存層。
type Service struct {
	repo PostRepository
}

// NewService 建立文章服務。
func NewService(repo PostRepository) *Service {
	return &Service{repo: repo}
}

// ListAll 依建立時間新到舊回傳全部文章；空表回傳空 slice。
func (s *Service) ListAll(ctx context.Context) ([]post.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []post.Post{}
	}
	return posts, nil
}

// GetByID 找不到時回傳 post.ErrNotFound。
func (s *Service) GetByID(ctx context.Context, id int64) (post.Post, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return post.Post{}, fmt.Errorf("get post id=%d: %w", id, err)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, title, content, author string) (post.Post, error) {
	d := post.NewDraft(title, content, author)
	if err := d.Validate(); err != nil {
		return post.Post{}, err
	}
	p, err := s.repo.Create(ctx, d)
	if err != nil {
		return post.Post{}, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

// Update 覆寫 title/content/author；author 空白時保留原值，title/content 仍為必填。
func (s *Service) Update(ctx context.Context, id int64, title, content, author string) (post.Post, error) {
	d := post.EditDraft(title, content, author)
	if err := d.Validate(); err != nil {
		return post.Post{}, err
	}
	p, err := s.repo.Update(ctx, id, d)
	if err != nil {
		return post.Post{}, fmt.Errorf("update post id=%d: %w", id, err)
	}
	return p, nil
}

// Delete 回傳是否真的刪除了資料；false 不是錯誤。
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete post id=%d: %w", id, err)
	}
	return removed, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
