// Package http provides HTTP server implementation and request handlers.
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

	assignmentHTTP "github.com/allisson/vetdesk/internal/assignment/http"
	authHTTP "github.com/allisson/vetdesk/internal/auth/http"
	authService "github.com/allisson/vetdesk/internal/auth/service"
	authUseCase "github.com/allisson/vetdesk/internal/auth/usecase"
	"github.com/allisson/vetdesk/internal/config"
	"github.com/allisson/vetdesk/internal/metrics"
	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
	permissionHTTP "github.com/allisson/vetdesk/internal/permission/http"
	supervisionHTTP "github.com/allisson/vetdesk/internal/supervision/http"
)

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// Handlers groups the request handlers mounted by SetupRouter.
type Handlers struct {
	Token      *authHTTP.TokenHandler
	Moderator  *authHTTP.ModeratorHandler
	AuditLog   *authHTTP.AuditLogHandler
	Catalog    *permissionHTTP.CatalogHandler
	Grant      *permissionHTTP.GrantHandler
	Permission *permissionHTTP.PermissionHandler
	Assignment *assignmentHTTP.AssignmentHandler
	Candidate  *assignmentHTTP.CandidateHandler
	Farm       *assignmentHTTP.FarmHandler
	Request    *supervisionHTTP.RequestHandler
}

// Guards holds what the authentication and capability middlewares need.
type Guards struct {
	TokenUseCase      authUseCase.TokenUseCase
	TokenService      authService.TokenService
	AuditLogUseCase   authUseCase.AuditLogUseCase
	CapabilityChecker authHTTP.CapabilityChecker
}

// NewServer creates a new HTTP server
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

// SetupRouter builds the gin engine with every API route.
//
// Public routes are limited per client IP. Everything else requires a bearer token;
// moderator administration and the audit log are root only, the field screens are
// gated by a catalog capability.
func (s *Server) SetupRouter(
	cfg *config.Config,
	handlers Handlers,
	guards Guards,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	public := v1.Group("")
	if cfg.RateLimitPublicEnabled {
		public.Use(authHTTP.PublicRateLimitMiddleware(
			cfg.RateLimitPublicRequestsPerSec,
			cfg.RateLimitPublicBurst,
			s.logger,
		))
	}
	public.POST("/token", handlers.Token.IssueTokenHandler)
	public.POST("/supervision-requests", handlers.Request.SubmitHandler)

	protected := v1.Group("")
	protected.Use(authHTTP.AuthenticationMiddleware(guards.TokenUseCase, guards.TokenService, s.logger))
	if cfg.RateLimitEnabled {
		protected.Use(authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	protected.GET("/catalog", handlers.Catalog.GetHandler)
	protected.GET("/me/permissions", handlers.Permission.MeHandler)

	root := protected.Group("")
	root.Use(authHTTP.RootMiddleware(s.logger))
	{
		moderators := root.Group("/moderators")
		moderators.POST("", handlers.Moderator.CreateHandler)
		moderators.GET("", handlers.Moderator.ListHandler)
		moderators.GET("/:id", handlers.Moderator.GetHandler)
		moderators.DELETE("/:id", handlers.Moderator.DeactivateHandler)
		moderators.POST("/:id/unlock", handlers.Moderator.UnlockHandler)
		moderators.GET("/:id/grant", handlers.Grant.GetHandler)
		moderators.PUT("/:id/grant", handlers.Grant.ReplaceHandler)
		moderators.PUT("/:id/grant/capabilities/:capability", handlers.Grant.SetCapabilityHandler)
		moderators.PUT(
			"/:id/grant/capabilities/:capability/sub-options/:sub",
			handlers.Grant.SetSubOptionHandler,
		)
		moderators.GET("/:id/permissions", handlers.Permission.ModeratorHandler)

		root.GET("/audit-logs", handlers.AuditLog.ListHandler)
	}

	capability := func(id string) gin.HandlerFunc {
		return authHTTP.CapabilityMiddleware(id, guards.CapabilityChecker, guards.AuditLogUseCase, s.logger)
	}

	fieldAssignment := capability(permissionDomain.CapabilityFieldAssignment)
	vetAssignment := capability(permissionDomain.CapabilityVetAssignment)
	supervisionAssignment := capability(permissionDomain.CapabilitySupervisionAssignment)
	supervisionRequests := capability(permissionDomain.CapabilitySupervisionRequests)

	farms := protected.Group("/farms")
	{
		farms.GET("", fieldAssignment, handlers.Farm.ListHandler)
		farms.GET("/:farm_id", fieldAssignment, handlers.Farm.GetHandler)
		farms.GET("/:farm_id/assignment", fieldAssignment, handlers.Assignment.GetHandler)
		farms.PUT("/:farm_id/assignment/vet", vetAssignment, handlers.Assignment.AssignVetHandler)
		farms.DELETE("/:farm_id/assignment/vet", vetAssignment, handlers.Assignment.RemoveVetHandler)
		farms.PUT(
			"/:farm_id/assignment/supervisor",
			supervisionAssignment,
			handlers.Assignment.AssignSupervisorHandler,
		)
		farms.DELETE(
			"/:farm_id/assignment/supervisor",
			supervisionAssignment,
			handlers.Assignment.RemoveSupervisorHandler,
		)
	}

	protected.GET("/candidates", fieldAssignment, handlers.Candidate.ListHandler)

	requests := protected.Group("/supervision-requests")
	requests.Use(supervisionRequests)
	{
		requests.GET("", handlers.Request.ListHandler)
		requests.GET("/:id", handlers.Request.GetHandler)
		requests.POST("/:id/approve", handlers.Request.ApproveHandler)
		requests.POST("/:id/reject", handlers.Request.RejectHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter before Start")
	}
	s.server.Handler = s.router

	return serve(s.server, s.logger, "http server")
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports not_ready while the database cannot be reached.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
