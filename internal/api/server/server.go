package server

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	_ "stt-relay/docs" // Generated swagger docs
	"stt-relay/internal/api/middleware"
	"stt-relay/internal/api/v1/dto"
	v1routes "stt-relay/internal/api/v1/routes"
	"stt-relay/internal/api/v1/services"
	webhandlers "stt-relay/web/handlers"
)

// Config represents API server configuration
type Config struct {
	Address        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	Environment    string
	MaxUploadBytes int64
	CORSOrigins    []string
	// Static is the browser client served for every unmatched GET
	Static fs.FS
}

// Server represents the relay HTTP server
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	logger     *zap.Logger
}

// NewServer creates the relay server. registry receives the HTTP metrics and
// is exposed on /metrics.
func NewServer(
	config Config,
	service services.TranscriptionService,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *Server {
	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	corsConfig := middleware.DefaultCORSConfig()
	if len(config.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = config.CORSOrigins
	}

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger, middleware.DefaultErrorMessage))
	router.Use(middleware.CORS(corsConfig))
	router.Use(middleware.NewHTTPMetrics(registry).Handler())

	// ?deep=1 also checks the provider credential and reachability
	router.GET("/health", func(c *gin.Context) {
		if deep, _ := strconv.ParseBool(c.Query("deep")); deep {
			if err := service.CheckProvider(c.Request.Context()); err != nil {
				middleware.HandleError(c, logger, err)
				return
			}
		}
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:    "healthy",
			Provider:  service.ProviderName(),
			Timestamp: time.Now().Unix(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	// Swagger documentation routes
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	v1routes.RegisterRoutes(api, &v1routes.ServiceContainer{
		TranscriptionService: service,
		Logger:               logger,
		MaxUploadBytes:       config.MaxUploadBytes,
	})

	if config.Static != nil {
		router.NoRoute(webhandlers.NewStaticHandler(config.Static).ServeStatic)
	}

	httpServer := &http.Server{
		Addr:         config.Address,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start binds the listen address and serves in the background. Bind errors
// are returned; the returned channel reports a later serve failure.
func (s *Server) Start() (<-chan error, error) {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return nil, err
	}
	s.listener = listener

	s.logger.Info("Starting relay server",
		zap.String("address", listener.Addr().String()),
		zap.String("environment", s.config.Environment),
	)

	serveErr := make(chan error, 1)
	go func() {
		defer close(serveErr)
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Relay server stopped", zap.Error(err))
			serveErr <- err
		}
	}()

	return serveErr, nil
}

// Addr is the bound address once Start succeeded
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.config.Address
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down relay server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("Relay server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
