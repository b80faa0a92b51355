package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/rhyrak/course-planner/internal/catalog"
	"github.com/rhyrak/course-planner/internal/config"
	"github.com/rhyrak/course-planner/internal/planner"
	"github.com/rhyrak/course-planner/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.NeedsRedis() {
		rdb = redis.NewClient(cfg.Redis.Options())
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error("redis unreachable", slog.String("addr", cfg.Redis.Addr()), slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer rdb.Close()
	}

	source, closeSource, err := newSource(ctx, cfg, rdb, log)
	if err != nil {
		log.Error("catalog source", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeSource()

	kv, err := newStore(ctx, cfg, rdb)
	if err != nil {
		log.Error("planner store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer kv.Close()

	srv := &server{
		source:   source,
		semester: cfg.Catalog.Semester,
		repo:     store.NewRepository(kv, log),
		limits:   planner.Limits{MinCredits: cfg.Planner.MinCredits, MaxCredits: cfg.Planner.MaxCredits},
		logger:   log,
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: newRouter(srv, cfg.Server.AllowedOrigin),
	}

	go func() {
		log.Info("listening", slog.String("addr", httpServer.Addr), slog.String("semester", cfg.Catalog.Semester))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("starting graceful shutdown...", slog.String("timeout", cfg.Server.ShutdownTimeout.String()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", slog.String("error", err.Error()))
	}
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if cfg.App.Debug || cfg.Log.Level == "debug" {
		opts.Level = slog.LevelDebug
	}

	if cfg.Log.Format == "json" || (cfg.Log.Format == "" && cfg.IsProduction()) {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler).With(slog.String("app", cfg.App.Name))
	slog.SetDefault(log)

	return log
}

func newSource(ctx context.Context, cfg *config.Config, rdb *redis.Client, log *slog.Logger) (catalog.Source, func(), error) {
	var (
		source  catalog.Source
		closeFn = func() {}
	)
	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		pg, err := catalog.NewPostgresSource(ctx, cfg.Catalog.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		source, closeFn = pg, pg.Close
	default:
		source = catalog.NewFileSource(cfg.Catalog.Dir, cfg.Catalog.Delimiter)
	}
	if cfg.Catalog.Cache {
		source = catalog.NewCachedSource(source, rdb, cfg.Store.KeyPrefix, cfg.Catalog.CacheTTL, log)
	}
	return source, closeFn, nil
}

func newStore(ctx context.Context, cfg *config.Config, rdb *redis.Client) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		return store.NewSQLiteStore(ctx, cfg.Store.SQLitePath)
	case config.BackendRedis:
		return store.NewRedisStore(rdb, cfg.Store.KeyPrefix, cfg.Store.TTL), nil
	default:
		return store.NewMemoryStore(), nil
	}
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debug("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()))
	}
}

func newRouter(s *server, allowedOrigin string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger), corsMiddleware(allowedOrigin))

	r.GET("/health", s.handleHealth)

	r.GET("/courses", s.handleListCourses)
	r.POST("/courses/search", s.handleSearchCourses)
	r.GET("/filters/options", s.handleFilterOptions)
	r.GET("/sort/options", s.handleSortOptions)

	r.POST("/planners", s.handleCreatePlanner)
	r.GET("/planners/:id", s.handleGetPlanner)
	r.PUT("/planners/:id", s.handleUpdatePlanner)
	r.DELETE("/planners/:id", s.handleDeletePlanner)
	r.POST("/planners/:id/courses/:courseId/toggle", s.handleToggleCourse)
	r.PUT("/planners/:id/courses/:courseId/labels/:labelId", s.handleAssignLabel)
	r.DELETE("/planners/:id/courses/:courseId/labels/:labelId", s.handleUnassignLabel)
	r.DELETE("/planners/:id/labels/:labelId", s.handleRemoveLabel)
	r.GET("/planners/:id/summary", s.handleSummary)
	r.GET("/planners/:id/export", s.handleExport)
	r.POST("/planners/:id/import", s.handleImport)

	return r
}
