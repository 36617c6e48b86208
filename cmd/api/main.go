package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pg-blog/internal/infrastructure/config"
	"pg-blog/internal/infrastructure/db"
	httpapi "pg-blog/internal/interface/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("CRITICAL: %v", err)
	}
}

// run 回傳錯誤而不直接結束程序，確保連線池的 defer Close 會執行。
func run() error {
	cfg, err := config.LoadFromFile("config.yaml")
	if err != nil {
		return fmt.Errorf("load config failed: %w", err)
	}
	cfg.LogSummary()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *sql.DB
	if cfg.Storage == config.StoragePostgres {
		pool, err = db.Open(cfg.DB)
		if err != nil {
			return fmt.Errorf("open database failed: %w", err)
		}
		defer pool.Close()

		res, err := db.NewBootstrapper(pool, cfg.Bootstrap).Run(ctx)
		if err != nil {
			return fmt.Errorf("database initialization failed: %w", err)
		}
		log.Printf("database ready attempts=%d seeded=%d existing=%d", res.Attempts, res.Seeded, res.Existing)
	} else {
		log.Printf("storage=%s; skipping database bootstrap", cfg.Storage)
	}

	apiServer, err := httpapi.NewServer(cfg, pool)
	if err != nil {
		return fmt.Errorf("build server failed: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("starting HTTP server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	return nil
}
