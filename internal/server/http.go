package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lk2023060901/ai-translate-backend/internal/assets/service"
	"github.com/lk2023060901/ai-translate-backend/internal/auth"
	"github.com/lk2023060901/ai-translate-backend/internal/auth/middleware"
	"github.com/lk2023060901/ai-translate-backend/internal/conf"
	apperrors "github.com/lk2023060901/ai-translate-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/response"
	"go.uber.org/zap"
)

// ReadinessChecker 报告依赖的外部服务是否可用
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

type HTTPServer struct {
	server       *http.Server
	router       *gin.Engine
	logger       *logger.Logger
	assetService *service.AssetService
}

func NewHTTPServer(
	config *conf.Config,
	log *logger.Logger,
	assetService *service.AssetService,
	jwtManager *auth.JWTManager,
	limiter middleware.ScriptEvaluator,
	readiness ReadinessChecker,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(logger.GinRecovery(log))
	router.Use(logger.GinLogger(log, "/health", "/ready"))
	router.Use(middleware.CORS())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := readiness.Ready(ctx); err != nil {
			log.Warn("readiness check failed", zap.Error(err))
			response.ErrorWithCode(c, apperrors.ErrServiceUnavail)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	// API routes
	api := router.Group("/api/v1")
	assetService.RegisterRoutes(api,
		middleware.JWTAuth(jwtManager, log),
		middleware.ContractRateLimiter(limiter, config.RateLimit.MaxRequests, config.RateLimit.WindowSeconds, log),
	)

	return &HTTPServer{
		server: &http.Server{
			Addr:              config.Server.HTTPAddr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		router:       router,
		logger:       log,
		assetService: assetService,
	}
}

// Handler 返回路由，供测试直接驱动
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}
