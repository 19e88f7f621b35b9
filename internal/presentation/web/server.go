// Package web serves the diet plan form and JSON API over HTTP.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tesso57/dietplan/internal/application/settings"
	"github.com/tesso57/dietplan/internal/application/usecase"
	"github.com/tesso57/dietplan/internal/domain/plan"
	"github.com/tesso57/dietplan/internal/domain/profile"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// Planner generates a diet plan for one profile.
type Planner interface {
	Generate(ctx context.Context, p profile.Profile) (usecase.DietPlan, error)
}

// PlanHistory reads previously generated plans.
type PlanHistory interface {
	List(limit int) ([]plan.Record, error)
	Get(id string) (plan.Record, error)
}

// Server exposes the planner over HTTP.
type Server struct {
	planner   Planner
	history   PlanHistory
	pdfPath   string
	providers []string
	cfg       settings.ServerConfig
	logger    *slog.Logger
}

// NewServer constructs a Server. history may be nil.
func NewServer(cfg settings.ServerConfig, planner Planner, history PlanHistory, pdfPath string, providers []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		planner:   planner,
		history:   history,
		pdfPath:   pdfPath,
		providers: append([]string(nil), providers...),
		cfg:       cfg,
		logger:    logger,
	}
}

// Router builds the gin engine with all routes and middleware. Gin runs in
// release mode so requests are only logged through the slog middleware.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.logger))

	if s.cfg.AllowAllOrigins {
		config := cors.DefaultConfig()
		config.AllowAllOrigins = true
		router.Use(cors.New(config))
	}

	router.GET("/", s.handleIndex)
	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/plans", s.rateLimiter(), s.handleCreatePlan)
		api.GET("/plans", s.handleListPlans)
		api.GET("/plans/latest.pdf", s.handleDownload)
		api.GET("/plans/:id", s.handleGetPlan)
	}
	return router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info("web server listening", "addr", s.cfg.Addr)

	select {
	case <-ctx.Done():
		timeout := settings.Timeout(s.cfg.ShutdownSeconds)
		if timeout == 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// rateLimiter limits plan requests per client IP. Non-positive limits disable it.
func (s *Server) rateLimiter() gin.HandlerFunc {
	perMinute := s.cfg.RequestsPerMinute
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return limit.NewRateLimiter(func(c *gin.Context) string {
		return c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute), time.Hour
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, try again in a minute"})
	})
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(started),
			"client", c.ClientIP(),
		)
	}
}
