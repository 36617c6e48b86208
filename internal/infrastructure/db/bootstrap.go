package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"pg-blog/internal/domain/post"
	"pg-blog/internal/infrastructure/config"
)

const (
	livenessQuery = `SELECT NOW()`

	createPostsTable = `
CREATE TABLE IF NOT EXISTS posts (
    id SERIAL PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    content TEXT NOT NULL,
    author VARCHAR(100) DEFAULT 'Anonymous',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

	createPostsIndex = `CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC)`

	countPosts = `SELECT COUNT(*) FROM posts`

	insertSeedPost = `INSERT INTO posts (title, content, author) VALUES ($1, $2, $3)`
)

// ErrBootstrapExhausted 表示重試次數用盡，服務不可啟動。
var ErrBootstrapExhausted = errors.New("database bootstrap retries exhausted")

// SleepFunc 等待 d 或 ctx 結束。
type SleepFunc func(ctx context.Context, d time.Duration) error

// BootstrapResult 描述一次 Run 的結果。
type BootstrapResult struct {
	Attempts int
	Seeded   int
	Existing int
}

// Bootstrapper 確保 posts 資料表、索引與範例資料存在，啟動時失敗會以指數退避重試。
type Bootstrapper struct {
	db           *sql.DB
	attempts     int
	initialDelay time.Duration
	sleep        SleepFunc
}

// NewBootstrapper 建立 Bootstrapper；attempts/initial_delay 為 0 時使用 3 次與 2 秒。
func NewBootstrapper(db *sql.DB, cfg config.BootstrapConfig) *Bootstrapper {
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 3
	}
	delay := cfg.InitialDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Bootstrapper{
		db:           db,
		attempts:     attempts,
		initialDelay: delay,
		sleep:        sleepContext,
	}
}

// WithSleep 替換等待函式，主要用於測試。
func (b *Bootstrapper) WithSleep(fn SleepFunc) *Bootstrapper {
	b.sleep = fn
	return b
}

// Run 依序執行連線測試、建表、建索引、播種；任一步失敗即整段重來。
func (b *Bootstrapper) Run(ctx context.Context) (BootstrapResult, error) {
	var (
		res     BootstrapResult
		lastErr error
	)
	delay := b.initialDelay
	for attempt := 1; attempt <= b.attempts; attempt++ {
		res.Attempts = attempt
		log.Printf("bootstrap connecting to database attempt=%d/%d", attempt, b.attempts)

		seeded, existing, err := b.initialize(ctx)
		if err == nil {
			res.Seeded, res.Existing = seeded, existing
			log.Printf("bootstrap database initialized successfully attempt=%d", attempt)
			return res, nil
		}
		lastErr = err
		log.Printf("bootstrap error initializing database attempt=%d/%d: %v", attempt, b.attempts, err)
		if attempt == b.attempts {
			break
		}

		log.Printf("bootstrap retrying in %s", delay)
		if err := b.sleep(ctx, delay); err != nil {
			return res, fmt.Errorf("bootstrap interrupted: %w", err)
		}
		delay *= 2
	}
	log.Printf("bootstrap failed to initialize database after %d attempts", b.attempts)
	return res, fmt.Errorf("%w after %d attempts: %w", ErrBootstrapExhausted, b.attempts, lastErr)
}

func (b *Bootstrapper) initialize(ctx context.Context) (seeded, existing int, err error) {
	var now time.Time
	if err := b.db.QueryRowContext(ctx, livenessQuery).Scan(&now); err != nil {
		return 0, 0, fmt.Errorf("liveness check: %w", err)
	}
	log.Printf("bootstrap database connection successful")

	if _, err := b.db.ExecContext(ctx, createPostsTable); err != nil {
		return 0, 0, fmt.Errorf("create posts table: %w", err)
	}
	log.Printf("bootstrap posts table created/verified")

	if _, err := b.db.ExecContext(ctx, createPostsIndex); err != nil {
		return 0, 0, fmt.Errorf("create posts index: %w", err)
	}
	log.Printf("bootstrap index created/verified")

	var count int
	if err := b.db.QueryRowContext(ctx, countPosts).Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("count posts: %w", err)
	}
	if count > 0 {
		log.Printf("bootstrap database already has %d posts", count)
		return 0, count, nil
	}

	log.Printf("bootstrap inserting %d sample posts", len(post.SamplePosts))
	// 逐筆寫入，讓每筆 created_at 不同
	for _, p := range post.SamplePosts {
		if _, err := b.db.ExecContext(ctx, insertSeedPost, p.Title, p.Content, p.Author); err != nil {
			return 0, 0, fmt.Errorf("seed post %q: %w", p.Title, err)
		}
	}
	log.Printf("bootstrap sample posts inserted successfully")
	return len(post.SamplePosts), 0, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
