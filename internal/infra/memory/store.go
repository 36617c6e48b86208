package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pg-blog/internal/domain/post"
)

// Store 為不落地的記憶體文章庫，重啟後資料消失。
type Store struct {
	mu    sync.RWMutex
	posts map[int64]post.Post
	idSeq int64
	last  time.Time
	now   func() time.Time
}

// NewStore 建立新的記憶體 Store 實例。
func NewStore() *Store {
	return &Store{
		posts: make(map[int64]post.Post),
		now:   time.Now,
	}
}

// nextID 只增不減，刪除後的 id 不會再被使用。
func (s *Store) nextID() int64 {
	s.idSeq++
	return s.idSeq
}

// tick 回傳單調遞增的時間，確保新到舊排序穩定。
func (s *Store) tick() time.Time {
	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

// Seed 在沒有任何文章時寫入範例文章，回傳寫入筆數。
func (s *Store) Seed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.posts) > 0 {
		return 0
	}
	for _, d := range post.SamplePosts {
		s.insert(d)
	}
	return len(post.SamplePosts)
}

func (s *Store) insert(d post.Draft) post.Post {
	ts := s.tick()
	p := post.Post{
		ID:        s.nextID(),
		Title:     d.Title,
		Content:   d.Content,
		Author:    d.Author,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.posts[p.ID] = p
	return p
}

// List 依 created_at 新到舊排序，時間相同時以 id 大者在前。
func (s *Store) List(ctx context.Context) ([]post.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]post.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) Get(ctx context.Context, id int64) (post.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return post.Post{}, post.ErrNotFound
	}
	return p, nil
}

func (s *Store) Create(ctx context.Context, d post.Draft) (post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(d), nil
}

// Update 不改動 id 與 created_at；author 空白時保留原值。
func (s *Store) Update(ctx context.Context, id int64, d post.Draft) (post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return post.Post{}, post.ErrNotFound
	}
	p.Title = d.Title
	p.Content = d.Content
	if d.Author != "" {
		p.Author = d.Author
	}
	p.UpdatedAt = s.tick()
	s.posts[id] = p
	return p, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return false, nil
	}
	delete(s.posts, id)
	return true, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts), nil
}
