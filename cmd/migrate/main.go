package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"pg-blog/internal/infrastructure/config"
	"pg-blog/internal/infrastructure/db"
)

// migrate 單獨執行建表與範例資料寫入，不啟動 HTTP 服務。
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	flag.Parse()

	if err := run(*cfgPath, *timeout); err != nil {
		log.Fatalf("初始化失敗: %v", err)
	}
}

func run(cfgPath string, timeout time.Duration) error {
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return fmt.Errorf("讀取組態失敗: %w", err)
	}

	conn, err := sql.Open("postgres", db.WithSSLMode(cfg.DB.DSN, cfg.DB.SSL))
	if err != nil {
		return fmt.Errorf("連線資料庫失敗: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Printf("初始化資料庫 %s", cfg.DB.Describe())
	res, err := db.NewBootstrapper(conn, cfg.Bootstrap).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Migration 完成 (attempts=%d seeded=%d existing=%d)\n", res.Attempts, res.Seeded, res.Existing)
	return nil
}
