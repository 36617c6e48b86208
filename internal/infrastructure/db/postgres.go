package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"pg-blog/internal/infrastructure/config"
)

// Open 建立 PostgreSQL 連線池，不做連線測試；可用性由 Bootstrapper 確認。
func Open(cfg config.DBConfig) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db dsn is empty")
	}
	connCfg, err := pgx.ParseConfig(WithSSLMode(cfg.DSN, cfg.SSL))
	if err != nil {
		return nil, fmt.Errorf("parse db dsn: %w", err)
	}
	if cfg.ConnectTimeout > 0 {
		connCfg.ConnectTimeout = cfg.ConnectTimeout
	}

	db := stdlib.OpenDB(*connCfg)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.MaxIdleTime)
	return db, nil
}

// WithSSLMode 在 DSN 未指定 sslmode 時補上；ssl 為 true 時使用 require（不驗證憑證）。
func WithSSLMode(dsn string, ssl bool) string {
	mode := "disable"
	if ssl {
		mode = "require"
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		q := u.Query()
		if q.Get("sslmode") != "" {
			return dsn
		}
		q.Set("sslmode", mode)
		u.RawQuery = q.Encode()
		return u.String()
	}
	// keyword/value 格式
	if strings.Contains(dsn, "sslmode=") {
		return dsn
	}
	return strings.TrimSpace(dsn + " sslmode=" + mode)
}
