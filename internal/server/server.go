// Package server wires the dataset, the SQLite store and the API into a gin engine.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tidinho/dash-leishmaniose/internal/api"
	"github.com/tidinho/dash-leishmaniose/internal/config"
	"github.com/tidinho/dash-leishmaniose/internal/dataset"
	"github.com/tidinho/dash-leishmaniose/internal/logging"
	"github.com/tidinho/dash-leishmaniose/internal/store"
)

//go:embed all:dist
var staticFiles embed.FS

// DBFileName SQLite file inside the data directory.
const DBFileName = "leishdash.db"

// Server HTTP server
type Server struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	store   *store.Store
	data    *dataset.Store
	watcher *dataset.Watcher
	api     *api.Handler
	logger  *zap.Logger
	httpSrv *http.Server
}

// NewServer creates the server from configuration.
func NewServer(cfg *config.AppConfig, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		logger.Warn("failed to create data dir", zap.Error(err))
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, DBFileName)

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	data := dataset.NewStore(cfg.Data.SnapshotPath,
		dataset.WithLogger(logger.Named("dataset")),
		dataset.WithObserver(newLoadRecorder(sqliteStore, logger.Named("loadlog"))),
	)

	s := &Server{
		cfg:    cfg,
		router: gin.New(),
		store:  sqliteStore,
		data:   data,
		api:    api.NewHandler(data, sqliteStore, cfg.ViewOptions(), filepath.Join(dataDir, "exports"), logger.Named("api")),
		logger: logger,
	}

	s.setupRoutes(devMode)

	return s, nil
}

// setupRoutes registers middleware, the API and the static page.
func (s *Server) setupRoutes(devMode bool) {
	s.router.Use(gin.Recovery(), logging.GinMiddleware(s.logger.Named("http")))

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	if devMode {
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	sub, _ := fs.Sub(staticFiles, "dist")
	index := func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
	s.router.GET("/", index)
	s.router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 5 && c.Request.URL.Path[:5] == "/api/" {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		index(c)
	})
}

// Start begins watching the snapshot file when configured and loads the
// snapshot in the background so the first request does not pay for it.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.Data.Watch {
		w, err := dataset.NewWatcher(s.data, s.cfg.Data.Debounce.Duration, s.logger.Named("watcher"), nil)
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		if err := w.Start(ctx); err != nil {
			w.Stop()
			return fmt.Errorf("failed to watch snapshot: %w", err)
		}
		s.watcher = w
	}

	go func() {
		if _, err := s.data.Get(ctx); err != nil {
			s.logger.Warn("initial snapshot load failed", zap.Error(err))
		}
	}()
	return nil
}

// Run serves HTTP on addr until Shutdown.
func (s *Server) Run(addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server, the watcher and the database.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Handler the gin engine, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Data the dataset store.
func (s *Server) Data() *dataset.Store {
	return s.data
}

// GetStore the SQLite store.
func (s *Server) GetStore() *store.Store {
	return s.store
}
