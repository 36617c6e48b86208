package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pg-blog/internal/domain/post"
)

const postColumns = `id, title, content, COALESCE(author, 'Anonymous'), COALESCE(created_at, NOW()), COALESCE(updated_at, created_at, NOW())`

// PostRepo 提供 posts 資料表的 CRUD。
type PostRepo struct {
	db *sql.DB
}

// NewPostRepo 建立 Postgres 文章存取實例。
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (post.Post, error) {
	var p post.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return post.Post{}, err
	}
	return p, nil
}

// List 取全部文章，新到舊。
func (r *PostRepo) List(ctx context.Context) ([]post.Post, error) {
	const q = `
SELECT ` + postColumns + `
FROM posts
ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []post.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get 單筆查詢，不存在時回傳 post.ErrNotFound。
func (r *PostRepo) Get(ctx context.Context, id int64) (post.Post, error) {
	const q = `
SELECT ` + postColumns + `
FROM posts
WHERE id = $1;
`
	p, err := scanPost(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return post.Post{}, post.ErrNotFound
	}
	return p, err
}

// Create 寫入新文章並回傳含 id 與時間戳的完整資料。
func (r *PostRepo) Create(ctx context.Context, d post.Draft) (post.Post, error) {
	const q = `
INSERT INTO posts (title, content, author, created_at, updated_at)
VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
RETURNING ` + postColumns + `;
`
	return scanPost(r.db.QueryRowContext(ctx, q, d.Title, d.Content, d.Author))
}

// Update 更新 title/content/author 並刷新 updated_at；author 空字串時保留原值。
func (r *PostRepo) Update(ctx context.Context, id int64, d post.Draft) (post.Post, error) {
	const q = `
UPDATE posts
SET title = $1,
    content = $2,
    author = COALESCE(NULLIF($3, ''), author),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $4
RETURNING ` + postColumns + `;
`
	p, err := scanPost(r.db.QueryRowContext(ctx, q, d.Title, d.Content, d.Author, id))
	if errors.Is(err, sql.ErrNoRows) {
		return post.Post{}, post.ErrNotFound
	}
	return p, err
}

// Delete 回傳是否有資料被刪除。
func (r *PostRepo) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM posts WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostRepo) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM posts;`
	var n int
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
