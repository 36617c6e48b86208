package httpapi

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pg-blog/internal/domain/post"
)

// page 建立共用的模板資料。
func (s *Server) page(title string, extra gin.H) gin.H {
	data := gin.H{
		"AppName": s.appName,
		"Title":   title,
		"Year":    time.Now().Year(),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (s *Server) renderError(c *gin.Context, status int, msg string) {
	c.HTML(status, "error", s.page(http.StatusText(status), gin.H{
		"Status":  status,
		"Message": msg,
	}))
}

// fail 是錯誤轉換為 HTTP 狀態的唯一出口，不對外洩漏原始錯誤。
func (s *Server) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, post.ErrValidation):
		s.renderError(c, http.StatusBadRequest, "Title and content are required")
	case errors.Is(err, post.ErrNotFound):
		s.renderError(c, http.StatusNotFound, "Post not found")
	default:
		log.Printf("%s failed request_id=%s: %v", op, c.GetString(requestIDKey), err)
		s.renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}
