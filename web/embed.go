// Package web 內嵌 HTML 模板，未設定 templates_dir 時使用。
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templates embed.FS

// Templates 回傳以 templates 目錄為根的檔案系統。
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
