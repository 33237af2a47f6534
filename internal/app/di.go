// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	assignmentUseCase "github.com/allisson/vetdesk/internal/assignment/usecase"
	authService "github.com/allisson/vetdesk/internal/auth/service"
	authUseCase "github.com/allisson/vetdesk/internal/auth/usecase"
	"github.com/allisson/vetdesk/internal/config"
	"github.com/allisson/vetdesk/internal/database"
	"github.com/allisson/vetdesk/internal/http"
	"github.com/allisson/vetdesk/internal/metrics"
	outboxRepository "github.com/allisson/vetdesk/internal/outbox/repository"
	outboxUseCase "github.com/allisson/vetdesk/internal/outbox/usecase"
	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
	permissionUseCase "github.com/allisson/vetdesk/internal/permission/usecase"
	supervisionUseCase "github.com/allisson/vetdesk/internal/supervision/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Managers
	txManager database.TxManager

	// Outbox
	outboxRepo    outboxUseCase.OutboxEventRepository
	publisher     *outboxUseCase.Publisher
	outboxUseCase outboxUseCase.UseCase

	// Auth
	secretService authService.SecretService
	tokenService  authService.TokenService
	kmsService    authService.KMSService
	moderatorRepo authUseCase.ModeratorRepository
	tokenRepo     authUseCase.TokenRepository
	auditLogRepo  authUseCase.AuditLogRepository
	moderatorUC   authUseCase.ModeratorUseCase
	tokenUC       authUseCase.TokenUseCase
	auditLogUC    authUseCase.AuditLogUseCase

	// Permission
	catalog    *permissionDomain.Catalog
	grantRepo  permissionUseCase.GrantRepository
	grantUC    permissionUseCase.GrantUseCase
	resolverUC permissionUseCase.ResolverUseCase

	// Assignment
	assignmentRepo assignmentUseCase.AssignmentRepository
	candidateRepo  assignmentUseCase.CandidateRepository
	farmRepo       assignmentUseCase.FarmRepository
	directoryUC    assignmentUseCase.DirectoryUseCase
	matcherUC      assignmentUseCase.MatcherUseCase
	slotLocks      *assignmentUseCase.SlotLocks
	candidateUC    assignmentUseCase.CandidateUseCase
	farmUC         assignmentUseCase.FarmUseCase

	// Supervision
	requestRepo supervisionUseCase.RequestRepository
	workflowUC  supervisionUseCase.WorkflowUseCase

	// Servers and Workers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	txManagerInit       sync.Once
	outboxRepoInit      sync.Once
	publisherInit       sync.Once
	outboxUseCaseInit   sync.Once
	secretServiceInit   sync.Once
	tokenServiceInit    sync.Once
	kmsServiceInit      sync.Once
	moderatorRepoInit   sync.Once
	tokenRepoInit       sync.Once
	auditLogRepoInit    sync.Once
	moderatorUCInit     sync.Once
	tokenUCInit         sync.Once
	auditLogUCInit      sync.Once
	catalogInit         sync.Once
	grantRepoInit       sync.Once
	grantUCInit         sync.Once
	resolverUCInit      sync.Once
	assignmentRepoInit  sync.Once
	candidateRepoInit   sync.Once
	farmRepoInit        sync.Once
	directoryUCInit     sync.Once
	matcherUCInit       sync.Once
	slotLocksInit       sync.Once
	candidateUCInit     sync.Once
	farmUCInit          sync.Once
	requestRepoInit     sync.Once
	workflowUCInit      sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.setInitError("db", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("db"); storedErr != nil {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.setInitError("txManager", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("txManager"); storedErr != nil {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.setInitError("metricsProvider", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("metricsProvider"); storedErr != nil {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is returned when
// metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.setInitError("businessMetrics", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("businessMetrics"); storedErr != nil {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// OutboxRepository returns the outbox event repository instance.
func (c *Container) OutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	var err error
	c.outboxRepoInit.Do(func() {
		c.outboxRepo, err = c.initOutboxRepository()
		if err != nil {
			c.setInitError("outboxRepo", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("outboxRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.outboxRepo, nil
}

// Publisher returns the outbox publisher shared by every use case that emits events.
func (c *Container) Publisher() (*outboxUseCase.Publisher, error) {
	var err error
	c.publisherInit.Do(func() {
		var repo outboxUseCase.OutboxEventRepository
		repo, err = c.OutboxRepository()
		if err != nil {
			err = fmt.Errorf("failed to get outbox repository for publisher: %w", err)
			c.setInitError("publisher", err)
			return
		}
		c.publisher = outboxUseCase.NewPublisher(repo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("publisher"); storedErr != nil {
		return nil, storedErr
	}
	return c.publisher, nil
}

// OutboxUseCase returns the outbox relay.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	var err error
	c.outboxUseCaseInit.Do(func() {
		c.outboxUseCase, err = c.initOutboxUseCase()
		if err != nil {
			c.setInitError("outboxUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("outboxUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.outboxUseCase, nil
}

// HTTPServer returns the HTTP server instance with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.setInitError("httpServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("httpServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		var provider *metrics.Provider
		provider, err = c.MetricsProvider()
		if err != nil {
			err = fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
			c.setInitError("metricsServer", err)
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("metricsServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

func (c *Container) setInitError(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

func (c *Container) initError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// driverRepository picks the repository matching the configured database driver.
func driverRepository[T any](driver string, postgres, mysql func() T) (T, error) {
	switch driver {
	case "postgres":
		return postgres(), nil
	case "mysql":
		return mysql(), nil
	default:
		var zero T
		return zero, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(context.Background(), database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initBusinessMetrics creates the OpenTelemetry-backed recorder when metrics are enabled.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initOutboxRepository creates the outbox event repository instance.
func (c *Container) initOutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
	}

	return driverRepository[outboxUseCase.OutboxEventRepository](
		c.config.DBDriver,
		func() outboxUseCase.OutboxEventRepository {
			return outboxRepository.NewPostgreSQLOutboxEventRepository(db)
		},
		func() outboxUseCase.OutboxEventRepository { return outboxRepository.NewMySQLOutboxEventRepository(db) },
	)
}

// initOutboxUseCase creates the outbox relay with a logging notifier.
func (c *Container) initOutboxUseCase() (outboxUseCase.UseCase, error) {
	logger := c.Logger()

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}

	useCaseConfig := outboxUseCase.Config{
		Interval:   c.config.OutboxInterval,
		BatchSize:  c.config.OutboxBatchSize,
		MaxRetries: c.config.OutboxMaxRetries,
	}

	eventProcessor := outboxUseCase.NewNotifierEventProcessor(outboxUseCase.NewLogNotifier(logger), logger)

	return outboxUseCase.NewRelay(useCaseConfig, txManager, outboxRepo, eventProcessor, logger), nil
}

// initHTTPServer creates the HTTP server and mounts every handler.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	handlers, err := c.httpHandlers()
	if err != nil {
		return nil, err
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for http server: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log use case for http server: %w", err)
	}

	resolverUseCase, err := c.ResolverUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get resolver use case for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(c.config, handlers, http.Guards{
		TokenUseCase:      tokenUseCase,
		TokenService:      c.TokenService(),
		AuditLogUseCase:   auditLogUseCase,
		CapabilityChecker: resolverUseCase,
	}, metricsProvider)

	return server, nil
}

// httpHandlers builds the handler set from the per-context use cases.
func (c *Container) httpHandlers() (http.Handlers, error) {
	var handlers http.Handlers

	authHandlers, err := c.authHandlers()
	if err != nil {
		return handlers, err
	}
	handlers.Token = authHandlers.token
	handlers.Moderator = authHandlers.moderator
	handlers.AuditLog = authHandlers.auditLog

	if handlers.Catalog, handlers.Grant, handlers.Permission, err = c.permissionHandlers(); err != nil {
		return handlers, err
	}

	if handlers.Assignment, handlers.Candidate, handlers.Farm, err = c.assignmentHandlers(); err != nil {
		return handlers, err
	}

	if handlers.Request, err = c.RequestHandler(); err != nil {
		return handlers, err
	}

	return handlers, nil
}
