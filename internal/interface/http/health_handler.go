package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"status":    "alive",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "using_memory"
	if s.db != nil {
		dbStatus = "ok"
		if err := s.db.PingContext(ctx); err != nil {
			log.Printf("health db ping failed request_id=%s: %v", c.GetString(requestIDKey), err)
			dbStatus = "error"
		}
	}

	posts, err := s.posts.Count(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"health":  "degraded",
			"storage": s.storage,
			"db":      dbStatus,
			"time":    time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"health":  "ok",
		"storage": s.storage,
		"db":      dbStatus,
		"posts":   posts,
		"time":    time.Now().Format(time.RFC3339),
	})
}
