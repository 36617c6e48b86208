package httpapi

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerRoutes() {
	r := s.engine
	r.Use(gin.Recovery(), requestID(), s.ginLogger())

	r.GET("/api/ping", s.handlePing)
	r.GET("/api/health", s.handleHealth)

	r.GET("/", s.handleIndex)
	r.GET("/posts/new", s.handleNewPost)
	r.POST("/posts", s.handleCreatePost)
	r.GET("/posts/:id", s.handleShowPost)
	r.GET("/posts/:id/edit", s.handleEditPost)
	r.PUT("/posts/:id", s.handleUpdatePost)
	r.PATCH("/posts/:id", s.handleUpdatePost)
	r.DELETE("/posts/:id", s.handleDeletePost)

	r.GET("/about", s.handleStatic("about", "About"))
	r.GET("/contact", s.handleStatic("contact", "Contact"))

	// 靜態資源（若目錄存在）
	if s.staticDir != "" {
		if _, err := os.Stat(s.staticDir); err == nil {
			r.Static("/static", s.staticDir)
		} else {
			log.Printf("static directory %q not found, /static disabled", s.staticDir)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		s.renderError(c, http.StatusNotFound, "Page not found")
	})
}
