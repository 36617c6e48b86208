package httpapi

import (
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
	"github.com/microcosm-cc/bluemonday"
)

const layoutFile = "layout.html"

var pageNames = []string{"index", "show", "new", "edit", "about", "contact", "error"}

var stripAll = bluemonday.StrictPolicy()

var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	// safe 僅用於已清理過的文章內容
	"safe": func(s string) template.HTML {
		return template.HTML(s)
	},
	// unescape 還原清理後內容的實體，交給模板只轉義一次（textarea 用）
	"unescape": html.UnescapeString,
	"excerpt": func(s string, n int) string {
		plain := strings.TrimSpace(html.UnescapeString(stripAll.Sanitize(s)))
		runes := []rune(plain)
		if len(runes) <= n {
			return plain
		}
		return strings.TrimSpace(string(runes[:n])) + "…"
	},
}

// pageRenderer 實作 gin 的 render.HTMLRender，每個頁面各自與 layout 組合。
type pageRenderer struct {
	pages map[string]*template.Template
}

func newPageRenderer(fsys fs.FS) (*pageRenderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(layoutFile).Funcs(templateFuncs).ParseFS(fsys, layoutFile, name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &pageRenderer{pages: pages}, nil
}

func (p *pageRenderer) Instance(name string, data any) render.Render {
	t, ok := p.pages[name]
	if !ok {
		t = p.pages["error"]
		data = map[string]any{"Status": 500, "Message": "template not found: " + name}
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}
