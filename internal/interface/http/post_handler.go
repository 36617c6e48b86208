package httpapi

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pg-blog/internal/domain/post"
)

type postForm struct {
	Title   string
	Content string
	Author  string
}

func bindPostForm(c *gin.Context) postForm {
	return postForm{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
		Author:  c.PostForm("author"),
	}
}

// parseID 非正整數一律視為找不到。
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) handleIndex(c *gin.Context) {
	ctx, cancel := s.storageContext(c)
	defer cancel()
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		s.fail(c, "list posts", err)
		return
	}
	c.HTML(http.StatusOK, "index", s.page("", gin.H{"Posts": posts}))
}

func (s *Server) handleShowPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		s.fail(c, "show post", post.ErrNotFound)
		return
	}
	ctx, cancel := s.storageContext(c)
	defer cancel()
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		s.fail(c, "show post", err)
		return
	}
	c.HTML(http.StatusOK, "show", s.page(p.Title, gin.H{"Post": p}))
}

func (s *Server) handleNewPost(c *gin.Context) {
	c.HTML(http.StatusOK, "new", s.page("New Post", gin.H{"Form": postForm{}}))
}

func (s *Server) handleCreatePost(c *gin.Context) {
	form := bindPostForm(c)
	ctx, cancel := s.storageContext(c)
	defer cancel()
	p, err := s.posts.Create(ctx, form.Title, form.Content, form.Author)
	if errors.Is(err, post.ErrValidation) {
		c.HTML(http.StatusBadRequest, "new", s.page("New Post", gin.H{
			"Form":  form,
			"Error": "Title and content are required.",
		}))
		return
	}
	if err != nil {
		s.fail(c, "create post", err)
		return
	}
	log.Printf("post created id=%d author=%s request_id=%s", p.ID, p.Author, c.GetString(requestIDKey))
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleEditPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		s.fail(c, "edit post", post.ErrNotFound)
		return
	}
	ctx, cancel := s.storageContext(c)
	defer cancel()
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		s.fail(c, "edit post", err)
		return
	}
	c.HTML(http.StatusOK, "edit", s.page("Edit Post", gin.H{"Post": p}))
}

func (s *Server) handleUpdatePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		s.fail(c, "update post", post.ErrNotFound)
		return
	}
	form := bindPostForm(c)
	ctx, cancel := s.storageContext(c)
	defer cancel()
	p, err := s.posts.Update(ctx, id, form.Title, form.Content, form.Author)
	if errors.Is(err, post.ErrValidation) {
		c.HTML(http.StatusBadRequest, "edit", s.page("Edit Post", gin.H{
			"Post":  post.Post{ID: id, Title: form.Title, Content: post.Sanitize(form.Content), Author: form.Author},
			"Error": "Title and content are required.",
		}))
		return
	}
	if err != nil {
		s.fail(c, "update post", err)
		return
	}
	log.Printf("post updated id=%d request_id=%s", p.ID, c.GetString(requestIDKey))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d", p.ID))
}

func (s *Server) handleDeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		s.fail(c, "delete post", post.ErrNotFound)
		return
	}
	ctx, cancel := s.storageContext(c)
	defer cancel()
	removed, err := s.posts.Delete(ctx, id)
	if err != nil {
		s.fail(c, "delete post", err)
		return
	}
	if !removed {
		s.renderError(c, http.StatusNotFound, "Post not found")
		return
	}
	log.Printf("post deleted id=%d request_id=%s", id, c.GetString(requestIDKey))
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleStatic(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, s.page(title, nil))
	}
}
