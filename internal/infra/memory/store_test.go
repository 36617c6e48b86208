package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"pg-blog/internal/domain/post"
)

func TestStore_Posts(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	t.Run("ListEmpty", func(t *testing.T) {
		posts, err := s.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if posts == nil || len(posts) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", posts)
		}
	})

	t.Run("CreateAndGet", func(t *testing.T) {
		p, err := s.Create(ctx, post.Draft{Title: "t", Content: "c", Author: "a"})
		if err != nil {
			t.Fatal(err)
		}
		if p.ID == 0 || p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
			t.Fatalf("incomplete post: %+v", p)
		}
		got, err := s.Get(ctx, p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got != p {
			t.Errorf("expected %+v, got %+v", p, got)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get(ctx, 999)
		if !errors.Is(err, post.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestStore_Update(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	orig, _ := s.Create(ctx, post.Draft{Title: "t", Content: "c", Author: "alice"})

	t.Run("KeepAuthorWhenBlank", func(t *testing.T) {
		p, err := s.Update(ctx, orig.ID, post.Draft{Title: "t2", Content: "c2"})
		if err != nil {
			t.Fatal(err)
		}
		if p.Author != "alice" {
			t.Errorf("expected author kept, got %s", p.Author)
		}
		if !p.CreatedAt.Equal(orig.CreatedAt) || p.ID != orig.ID {
			t.Error("id/created_at changed")
		}
		if !p.UpdatedAt.After(orig.UpdatedAt) {
			t.Error("updated_at not refreshed")
		}
	})

	t.Run("ReplaceAuthor", func(t *testing.T) {
		p, err := s.Update(ctx, orig.ID, post.Draft{Title: "t3", Content: "c3", Author: "bob"})
		if err != nil {
			t.Fatal(err)
		}
		if p.Author != "bob" {
			t.Errorf("expected bob, got %s", p.Author)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		before, _ := s.Count(ctx)
		_, err := s.Update(ctx, 42, post.Draft{Title: "x", Content: "y"})
		if !errors.Is(err, post.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		after, _ := s.Count(ctx)
		if before != after {
			t.Error("row count changed")
		}
	})
}

func TestStore_DeleteIdempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	p, _ := s.Create(ctx, post.Draft{Title: "t", Content: "c", Author: "a"})

	removed, err := s.Delete(ctx, p.ID)
	if err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}
	removed, err = s.Delete(ctx, p.ID)
	if err != nil || removed {
		t.Fatalf("second delete: removed=%v err=%v", removed, err)
	}
}

func TestStore_IDNotReused(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a, _ := s.Create(ctx, post.Draft{Title: "a", Content: "a", Author: "x"})
	b, _ := s.Create(ctx, post.Draft{Title: "b", Content: "b", Author: "x"})
	s.Delete(ctx, b.ID)
	c, _ := s.Create(ctx, post.Draft{Title: "c", Content: "c", Author: "x"})
	if c.ID == b.ID || c.ID == a.ID {
		t.Errorf("id reused: %d", c.ID)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := NewStore()
	// 固定時鐘，驗證單調遞增時間仍能保持順序
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := s.Create(ctx, post.Draft{Title: title, Content: "c", Author: "a"}); err != nil {
			t.Fatal(err)
		}
	}
	posts, _ := s.List(ctx)
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	for i := 1; i < len(posts); i++ {
		if !posts[i-1].CreatedAt.After(posts[i].CreatedAt) {
			t.Errorf("not strictly descending at %d", i)
		}
	}
	if posts[0].Title != "third" {
		t.Errorf("expected newest first, got %s", posts[0].Title)
	}
}

func TestStore_Seed(t *testing.T) {
	s := NewStore()
	if n := s.Seed(); n != len(post.SamplePosts) {
		t.Fatalf("expected %d seeded, got %d", len(post.SamplePosts), n)
	}
	if n := s.Seed(); n != 0 {
		t.Fatalf("expected no reseed, got %d", n)
	}
	count, _ := s.Count(context.Background())
	if count != len(post.SamplePosts) {
		t.Errorf("expected %d posts, got %d", len(post.SamplePosts), count)
	}
}
