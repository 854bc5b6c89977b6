// ABOUTME: HTTP server exposing the GraphQL API and its helper endpoints.
// ABOUTME: Gin router with recovery, request logging, metrics and optional CORS.
package graphql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/harperreed/fittrack/internal/fitness"
	"github.com/harperreed/fittrack/internal/metrics"
	"github.com/harperreed/fittrack/internal/nutrition"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string
	Debug          bool
	CORSOrigins    []string
	MaxUploadBytes int64
}

// DefaultServerConfig returns the settings used when none are supplied.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:           ":4000",
		MaxUploadBytes: 8 << 20,
	}
}

// Validate reports configuration errors.
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return errors.New("listen address is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}

// NutritionLookup finds macro data for a food query.
type NutritionLookup interface {
	Lookup(ctx context.Context, query string) (*nutrition.Item, error)
}

// PhotoProcessor converts an uploaded photo and returns its public URL.
type PhotoProcessor interface {
	Process(ctx context.Context, inputPath string) (string, error)
	UploadDir() string
}

// Server wraps the HTTP server with its routes and lifecycle.
type Server struct {
	server    *http.Server
	router    *gin.Engine
	schema    *graphql.Schema
	logger    *zap.SugaredLogger
	config    *ServerConfig
	metrics   *metrics.Metrics
	nutrition NutritionLookup
	photos    PhotoProcessor
}

// ServerOption configures optional collaborators.
type ServerOption func(*Server)

// WithMetrics records HTTP and GraphQL metrics and serves /metrics.
func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) { s.metrics = m }
}

// WithNutrition enables the /api/nutrition proxy.
func WithNutrition(n NutritionLookup) ServerOption {
	return func(s *Server) { s.nutrition = n }
}

// WithPhotos enables photo upload and serves processed photos under /uploads.
func WithPhotos(p PhotoProcessor) ServerOption {
	return func(s *Server) { s.photos = p }
}

// NewServer builds the router and HTTP server for svc.
func NewServer(svc *fitness.Service, config *ServerConfig, logger *zap.SugaredLogger, opts ...ServerOption) (*Server, error) {
	if config == nil {
		config = DefaultServerConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	schema, err := NewSchema(svc)
	if err != nil {
		return nil, err
	}

	s := &Server{schema: schema, logger: logger, config: config}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	s.server = &http.Server{
		Addr:              config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = s.config.MaxUploadBytes
	router.Use(gin.Recovery())
	router.Use(s.loggingMiddleware())
	if s.metrics != nil {
		router.Use(s.metricsMiddleware())
	}
	if len(s.config.CORSOrigins) > 0 {
		router.Use(s.corsMiddleware())
	}

	router.POST("/graphql", s.handleGraphQL)
	router.GET("/graphql", s.handleGraphQL)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))
	}
	router.GET("/api/nutrition", s.handleNutrition)
	router.POST("/api/uploadPhoto", s.handleUploadPhoto)
	if s.photos != nil {
		router.Static("/uploads", filepath.Clean(s.photos.UploadDir()))
	}
	return router
}

// Start serves until Stop is called. A clean shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Infow("Starting API server",
		"addr", s.config.Addr,
		"debug", s.config.Debug,
		"cors_origins", s.config.CORSOrigins,
		"nutrition", s.nutrition != nil,
		"photos", s.photos != nil,
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http: %w", err)
	}
	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server")
	return s.server.Shutdown(ctx)
}
