// Package http provides the HTTP server, router and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	authHTTP "github.com/allisson/chatcrypt/internal/auth/http"
	authUseCase "github.com/allisson/chatcrypt/internal/auth/usecase"
	chatHTTP "github.com/allisson/chatcrypt/internal/chat/http"
	cryptoHTTP "github.com/allisson/chatcrypt/internal/crypto/http"
	"github.com/allisson/chatcrypt/internal/metrics"
)

const readinessTimeout = 2 * time.Second

// Server is the public API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// RouterConfig holds the optional router features.
type RouterConfig struct {
	CORSEnabled             bool
	CORSAllowOrigins        string
	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
	MetricsNamespace        string
}

// Handlers groups the domain handlers mounted under /v1.
type Handlers struct {
	Keys            *cryptoHTTP.KeyHandler
	MessageCrypto   *cryptoHTTP.MessageHandler
	Files           *cryptoHTTP.FileHandler
	Chat            *chatHTTP.MessageHandler
	TokenUseCase    authUseCase.TokenUseCase
	MeterProvider   metric.MeterProvider
	ShutdownContext context.Context
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with middleware, health probes and the /v1 API.
func (s *Server) SetupRouter(cfg RouterConfig, h Handlers) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if h.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(h.MeterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		ctx := h.ShutdownContext
		if ctx == nil {
			ctx = context.Background()
		}
		v1.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	if h.TokenUseCase != nil {
		v1.Use(authHTTP.AuthenticationMiddleware(h.TokenUseCase, s.logger))
	}

	if h.Keys != nil {
		keys := v1.Group("/keys")
		keys.POST("/:user_id", h.Keys.EnsureHandler)
		keys.GET("/:user_id", h.Keys.GetHandler)
	}

	messages := v1.Group("/messages")
	if h.MessageCrypto != nil {
		messages.POST("/encrypt", h.MessageCrypto.EncryptHandler)
		messages.POST("/decrypt", h.MessageCrypto.DecryptHandler)
	}
	if h.Chat != nil {
		messages.POST("", h.Chat.SendHandler)
		messages.GET("", h.Chat.ListHandler)
		messages.GET("/:id/plaintext", h.Chat.PlaintextHandler)
	}

	if h.Files != nil {
		files := v1.Group("/files")
		files.POST("/keys", h.Files.GenerateKeyHandler)
		files.POST("/keys/wrap", h.Files.WrapKeyHandler)
		files.POST("/keys/unwrap", h.Files.UnwrapKeyHandler)
		files.POST("/chunks/encrypt", h.Files.EncryptChunkHandler)
		files.POST("/chunks/decrypt", h.Files.DecryptChunkHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves requests until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports not_ready unless the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	dbStatus := "ok"
	if s.db == nil {
		dbStatus = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			dbStatus = "error"
		}
	}

	status, code := "ready", http.StatusOK
	if dbStatus != "ok" {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":     status,
		"components": gin.H{"database": dbStatus},
	})
}
