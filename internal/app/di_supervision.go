package app

import (
	"fmt"

	supervisionHTTP "github.com/allisson/vetdesk/internal/supervision/http"
	supervisionRepository "github.com/allisson/vetdesk/internal/supervision/repository"
	supervisionUseCase "github.com/allisson/vetdesk/internal/supervision/usecase"
)

// RequestRepository returns the supervision request repository based on database driver.
func (c *Container) RequestRepository() (supervisionUseCase.RequestRepository, error) {
	var err error
	c.requestRepoInit.Do(func() {
		c.requestRepo, err = c.initRequestRepository()
		if err != nil {
			c.setInitError("requestRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("requestRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.requestRepo, nil
}

// WorkflowUseCase returns the supervision request workflow.
func (c *Container) WorkflowUseCase() (supervisionUseCase.WorkflowUseCase, error) {
	var err error
	c.workflowUCInit.Do(func() {
		c.workflowUC, err = c.initWorkflowUseCase()
		if err != nil {
			c.setInitError("workflowUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("workflowUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.workflowUC, nil
}

// RequestHandler creates the supervision request HTTP handler.
func (c *Container) RequestHandler() (*supervisionHTTP.RequestHandler, error) {
	workflowUseCase, err := c.WorkflowUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow use case for request handler: %w", err)
	}
	return supervisionHTTP.NewRequestHandler(workflowUseCase, c.Logger()), nil
}

// initRequestRepository creates the request repository based on the database driver.
func (c *Container) initRequestRepository() (supervisionUseCase.RequestRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for request repository: %w", err)
	}

	return driverRepository[supervisionUseCase.RequestRepository](
		c.config.DBDriver,
		func() supervisionUseCase.RequestRepository {
			return supervisionRepository.NewPostgreSQLRequestRepository(db)
		},
		func() supervisionUseCase.RequestRepository { return supervisionRepository.NewMySQLRequestRepository(db) },
	)
}

// initWorkflowUseCase creates the workflow use case on top of the shared farm use case
// and matcher.
func (c *Container) initWorkflowUseCase() (supervisionUseCase.WorkflowUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for workflow use case: %w", err)
	}

	requestRepo, err := c.RequestRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get request repository for workflow use case: %w", err)
	}

	farmUseCase, err := c.FarmUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get farm use case for workflow use case: %w", err)
	}

	matcherUseCase, err := c.MatcherUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get matcher use case for workflow use case: %w", err)
	}

	publisher, err := c.Publisher()
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher for workflow use case: %w", err)
	}

	baseUseCase := supervisionUseCase.NewWorkflowUseCase(txManager, requestRepo, farmUseCase, matcherUseCase, publisher)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for workflow use case: %w", err)
		}
		return supervisionUseCase.NewWorkflowUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
