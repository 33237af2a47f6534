package app

import (
	"fmt"

	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
	permissionHTTP "github.com/allisson/vetdesk/internal/permission/http"
	permissionRepository "github.com/allisson/vetdesk/internal/permission/repository"
	permissionUseCase "github.com/allisson/vetdesk/internal/permission/usecase"
)

// Catalog returns the capability catalog the API and CLI resolve against.
func (c *Container) Catalog() *permissionDomain.Catalog {
	c.catalogInit.Do(func() {
		c.catalog = permissionDomain.DefaultCatalog()
	})
	return c.catalog
}

// GrantRepository returns the grant repository based on database driver.
func (c *Container) GrantRepository() (permissionUseCase.GrantRepository, error) {
	var err error
	c.grantRepoInit.Do(func() {
		c.grantRepo, err = c.initGrantRepository()
		if err != nil {
			c.setInitError("grantRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("grantRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.grantRepo, nil
}

// GrantUseCase returns the grant store use case.
func (c *Container) GrantUseCase() (permissionUseCase.GrantUseCase, error) {
	var err error
	c.grantUCInit.Do(func() {
		c.grantUC, err = c.initGrantUseCase()
		if err != nil {
			c.setInitError("grantUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("grantUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.grantUC, nil
}

// ResolverUseCase returns the permission resolver.
func (c *Container) ResolverUseCase() (permissionUseCase.ResolverUseCase, error) {
	var err error
	c.resolverUCInit.Do(func() {
		c.resolverUC, err = c.initResolverUseCase()
		if err != nil {
			c.setInitError("resolverUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("resolverUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.resolverUC, nil
}

// initGrantRepository creates the grant repository based on the database driver.
func (c *Container) initGrantRepository() (permissionUseCase.GrantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for grant repository: %w", err)
	}

	return driverRepository[permissionUseCase.GrantRepository](
		c.config.DBDriver,
		func() permissionUseCase.GrantRepository { return permissionRepository.NewPostgreSQLGrantRepository(db) },
		func() permissionUseCase.GrantRepository { return permissionRepository.NewMySQLGrantRepository(db) },
	)
}

// initGrantUseCase creates the grant use case with all its dependencies.
func (c *Container) initGrantUseCase() (permissionUseCase.GrantUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for grant use case: %w", err)
	}

	grantRepository, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for grant use case: %w", err)
	}

	publisher, err := c.Publisher()
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher for grant use case: %w", err)
	}

	baseUseCase := permissionUseCase.NewGrantUseCase(txManager, grantRepository, publisher, c.Catalog())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for grant use case: %w", err)
		}
		return permissionUseCase.NewGrantUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initResolverUseCase creates the resolver use case with all its dependencies.
func (c *Container) initResolverUseCase() (permissionUseCase.ResolverUseCase, error) {
	grantRepository, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for resolver use case: %w", err)
	}

	baseUseCase := permissionUseCase.NewResolverUseCase(grantRepository, c.Catalog())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for resolver use case: %w", err)
		}
		return permissionUseCase.NewResolverUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// permissionHandlers creates the catalog, grant and permission HTTP handlers.
func (c *Container) permissionHandlers() (
	*permissionHTTP.CatalogHandler,
	*permissionHTTP.GrantHandler,
	*permissionHTTP.PermissionHandler,
	error,
) {
	logger := c.Logger()

	grantUseCase, err := c.GrantUseCase()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get grant use case for grant handler: %w", err)
	}

	resolverUseCase, err := c.ResolverUseCase()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get resolver use case for permission handler: %w", err)
	}

	return permissionHTTP.NewCatalogHandler(c.Catalog(), logger),
		permissionHTTP.NewGrantHandler(grantUseCase, logger),
		permissionHTTP.NewPermissionHandler(resolverUseCase, logger),
		nil
}
