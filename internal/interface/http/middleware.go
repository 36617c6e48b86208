package httpapi

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader      = "X-Request-ID"
	requestIDKey         = "requestID"
	methodOverrideField  = "_method"
	methodOverrideHeader = "X-HTTP-Method-Override"
)

// requestID 沿用上游帶入的 X-Request-ID，否則產生新的 UUID。
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Printf("[GIN] %v | %3d | %13v | %-7s %s | request_id=%s",
			start.Format("2006/01/02 - 15:04:05"),
			status,
			latency,
			c.Request.Method,
			path,
			c.GetString(requestIDKey),
		)
	}
}

// methodOverride 讓只能送出 POST 的表單以 _method 欄位、query 或標頭改用 PUT/PATCH/DELETE。
// 必須包在 gin engine 外層，gin 的 middleware 在路由比對後才執行。
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := overrideMethod(r); m != "" {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	candidate := r.Header.Get(methodOverrideHeader)
	if candidate == "" {
		candidate = r.URL.Query().Get(methodOverrideField)
	}
	if candidate == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		// ParseForm 會把 body 留在 r.PostForm，後續 c.PostForm 仍可讀取
		if err := r.ParseForm(); err == nil {
			candidate = r.PostForm.Get(methodOverrideField)
		}
	}
	switch m := strings.ToUpper(strings.TrimSpace(candidate)); m {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return m
	default:
		return ""
	}
}
