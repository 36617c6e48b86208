package httpapi

import (
	"context"
	"database/sql"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"pg-blog/internal/application/blog"
	"pg-blog/internal/infra/memory"
	"pg-blog/internal/infrastructure/config"
	"pg-blog/internal/infrastructure/persistence/postgres"
	"pg-blog/web"
)

const defaultStorageTimeout = 10 * time.Second

// Server 封裝 HTTP 路由與依賴。
type Server struct {
	engine         *gin.Engine
	posts          *blog.Service
	db             *sql.DB
	storage        string
	appName        string
	staticDir      string
	storageTimeout time.Duration
}

// NewServer 建立部落格伺服器；db 為 nil 時使用記憶體 Store 並寫入範例文章。
func NewServer(cfg config.Config, db *sql.DB) (*Server, error) {
	var (
		repo    blog.PostRepository
		storage string
	)
	if db != nil {
		repo = postgres.NewPostRepo(db)
		storage = config.StoragePostgres
	} else {
		store := memory.NewStore()
		n := store.Seed()
		log.Printf("using in-memory store seeded=%d", n)
		repo = store
		storage = config.StorageMemory
	}

	var templates fs.FS = web.Templates()
	if cfg.HTTP.TemplatesDir != "" {
		templates = os.DirFS(cfg.HTTP.TemplatesDir)
	}
	renderer, err := newPageRenderer(templates)
	if err != nil {
		return nil, err
	}

	timeout := cfg.DB.ConnectTimeout
	if timeout == 0 {
		timeout = defaultStorageTimeout
	}
	appName := cfg.App.Name
	if appName == "" {
		appName = "Blog Application"
	}

	engine := gin.New()
	engine.HTMLRender = renderer

	s := &Server{
		engine:         engine,
		posts:          blog.NewService(repo),
		db:             db,
		storage:        storage,
		appName:        appName,
		staticDir:      cfg.HTTP.StaticDir,
		storageTimeout: timeout,
	}
	s.registerRoutes()
	return s, nil
}

// Handler 回傳路由處理器，method override 需在 gin 路由比對前套用。
func (s *Server) Handler() http.Handler {
	return methodOverride(s.engine)
}

// storageContext 限制單一請求等待連線池與查詢的時間。
func (s *Server) storageContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.storageTimeout)
}
