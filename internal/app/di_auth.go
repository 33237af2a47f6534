package app

import (
	"context"
	"fmt"

	authHTTP "github.com/allisson/vetdesk/internal/auth/http"
	authRepository "github.com/allisson/vetdesk/internal/auth/repository"
	authService "github.com/allisson/vetdesk/internal/auth/service"
	authUseCase "github.com/allisson/vetdesk/internal/auth/usecase"
)

// SecretService returns the secret service for authentication operations.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService()
	})
	return c.secretService
}

// TokenService returns the token service for authentication operations.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// KMSService returns the KMS service used to unwrap the audit signing key.
func (c *Container) KMSService() authService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = authService.NewKMSService()
	})
	return c.kmsService
}

// ModeratorRepository returns the moderator repository based on database driver.
func (c *Container) ModeratorRepository() (authUseCase.ModeratorRepository, error) {
	var err error
	c.moderatorRepoInit.Do(func() {
		c.moderatorRepo, err = c.initModeratorRepository()
		if err != nil {
			c.setInitError("moderatorRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("moderatorRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.moderatorRepo, nil
}

// TokenRepository returns the token repository based on database driver.
func (c *Container) TokenRepository() (authUseCase.TokenRepository, error) {
	var err error
	c.tokenRepoInit.Do(func() {
		c.tokenRepo, err = c.initTokenRepository()
		if err != nil {
			c.setInitError("tokenRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("tokenRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.tokenRepo, nil
}

// AuditLogRepository returns the audit log repository based on database driver.
func (c *Container) AuditLogRepository() (authUseCase.AuditLogRepository, error) {
	var err error
	c.auditLogRepoInit.Do(func() {
		c.auditLogRepo, err = c.initAuditLogRepository()
		if err != nil {
			c.setInitError("auditLogRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("auditLogRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.auditLogRepo, nil
}

// ModeratorUseCase returns the moderator use case.
func (c *Container) ModeratorUseCase() (authUseCase.ModeratorUseCase, error) {
	var err error
	c.moderatorUCInit.Do(func() {
		c.moderatorUC, err = c.initModeratorUseCase()
		if err != nil {
			c.setInitError("moderatorUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("moderatorUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.moderatorUC, nil
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	var err error
	c.tokenUCInit.Do(func() {
		c.tokenUC, err = c.initTokenUseCase()
		if err != nil {
			c.setInitError("tokenUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("tokenUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.tokenUC, nil
}

// AuditLogUseCase returns the audit log use case.
func (c *Container) AuditLogUseCase() (authUseCase.AuditLogUseCase, error) {
	var err error
	c.auditLogUCInit.Do(func() {
		c.auditLogUC, err = c.initAuditLogUseCase()
		if err != nil {
			c.setInitError("auditLogUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("auditLogUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.auditLogUC, nil
}

// initModeratorRepository creates the moderator repository based on the database driver.
func (c *Container) initModeratorRepository() (authUseCase.ModeratorRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for moderator repository: %w", err)
	}

	return driverRepository[authUseCase.ModeratorRepository](
		c.config.DBDriver,
		func() authUseCase.ModeratorRepository { return authRepository.NewPostgreSQLModeratorRepository(db) },
		func() authUseCase.ModeratorRepository { return authRepository.NewMySQLModeratorRepository(db) },
	)
}

// initTokenRepository creates the token repository based on the database driver.
func (c *Container) initTokenRepository() (authUseCase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	return driverRepository[authUseCase.TokenRepository](
		c.config.DBDriver,
		func() authUseCase.TokenRepository { return authRepository.NewPostgreSQLTokenRepository(db) },
		func() authUseCase.TokenRepository { return authRepository.NewMySQLTokenRepository(db) },
	)
}

// initAuditLogRepository creates the audit log repository based on the database driver.
func (c *Container) initAuditLogRepository() (authUseCase.AuditLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit log repository: %w", err)
	}

	return driverRepository[authUseCase.AuditLogRepository](
		c.config.DBDriver,
		func() authUseCase.AuditLogRepository { return authRepository.NewPostgreSQLAuditLogRepository(db) },
		func() authUseCase.AuditLogRepository { return authRepository.NewMySQLAuditLogRepository(db) },
	)
}

// initModeratorUseCase creates the moderator use case with all its dependencies.
func (c *Container) initModeratorUseCase() (authUseCase.ModeratorUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for moderator use case: %w", err)
	}

	moderatorRepository, err := c.ModeratorRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get moderator repository for moderator use case: %w", err)
	}

	baseUseCase := authUseCase.NewModeratorUseCase(txManager, moderatorRepository, c.SecretService())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for moderator use case: %w", err)
		}
		return authUseCase.NewModeratorUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	moderatorRepository, err := c.ModeratorRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get moderator repository for token use case: %w", err)
	}

	tokenRepository, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for token use case: %w", err)
	}

	baseUseCase := authUseCase.NewTokenUseCase(
		c.config,
		moderatorRepository,
		tokenRepository,
		c.SecretService(),
		c.TokenService(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return authUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAuditLogUseCase creates the audit log use case. The signing key is decoded, and
// unwrapped through KMS when a key URI is configured, once at startup.
func (c *Container) initAuditLogUseCase() (authUseCase.AuditLogUseCase, error) {
	auditLogRepository, err := c.AuditLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log repository for audit log use case: %w", err)
	}

	signingKey, err := authService.LoadSigningKey(
		context.Background(),
		c.KMSService(),
		c.config.KMSKeyURI,
		c.config.AuditSigningKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit signing key: %w", err)
	}
	if signingKey == nil {
		c.Logger().Warn("AUDIT_SIGNING_KEY not set: audit logs will be stored unsigned")
	}

	return authUseCase.NewAuditLogUseCase(auditLogRepository, authService.NewAuditSigner(), signingKey), nil
}

// authContextHandlers groups the handlers of the auth context.
type authContextHandlers struct {
	token     *authHTTP.TokenHandler
	moderator *authHTTP.ModeratorHandler
	auditLog  *authHTTP.AuditLogHandler
}

// authHandlers creates the token, moderator and audit log HTTP handlers.
func (c *Container) authHandlers() (authContextHandlers, error) {
	logger := c.Logger()

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return authContextHandlers{}, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}

	moderatorUseCase, err := c.ModeratorUseCase()
	if err != nil {
		return authContextHandlers{}, fmt.Errorf("failed to get moderator use case for moderator handler: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return authContextHandlers{}, fmt.Errorf("failed to get audit log use case for audit log handler: %w", err)
	}

	return authContextHandlers{
		token:     authHTTP.NewTokenHandler(tokenUseCase, logger),
		moderator: authHTTP.NewModeratorHandler(moderatorUseCase, logger),
		auditLog:  authHTTP.NewAuditLogHandler(auditLogUseCase, logger),
	}, nil
}
