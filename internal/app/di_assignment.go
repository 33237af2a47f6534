package app

import (
	"fmt"

	assignmentHTTP "github.com/allisson/vetdesk/internal/assignment/http"
	assignmentRepository "github.com/allisson/vetdesk/internal/assignment/repository"
	assignmentUseCase "github.com/allisson/vetdesk/internal/assignment/usecase"
)

// AssignmentRepository returns the assignment directory repository based on database driver.
func (c *Container) AssignmentRepository() (assignmentUseCase.AssignmentRepository, error) {
	var err error
	c.assignmentRepoInit.Do(func() {
		c.assignmentRepo, err = c.initAssignmentRepository()
		if err != nil {
			c.setInitError("assignmentRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("assignmentRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.assignmentRepo, nil
}

// CandidateRepository returns the candidate pool repository based on database driver.
func (c *Container) CandidateRepository() (assignmentUseCase.CandidateRepository, error) {
	var err error
	c.candidateRepoInit.Do(func() {
		c.candidateRepo, err = c.initCandidateRepository()
		if err != nil {
			c.setInitError("candidateRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("candidateRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.candidateRepo, nil
}

// FarmRepository returns the farm repository based on database driver.
func (c *Container) FarmRepository() (assignmentUseCase.FarmRepository, error) {
	var err error
	c.farmRepoInit.Do(func() {
		c.farmRepo, err = c.initFarmRepository()
		if err != nil {
			c.setInitError("farmRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("farmRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.farmRepo, nil
}

// DirectoryUseCase returns the assignment directory use case.
func (c *Container) DirectoryUseCase() (assignmentUseCase.DirectoryUseCase, error) {
	var err error
	c.directoryUCInit.Do(func() {
		c.directoryUC, err = c.initDirectoryUseCase()
		if err != nil {
			c.setInitError("directoryUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("directoryUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.directoryUC, nil
}

// MatcherUseCase returns the assignment matcher. The HTTP handlers and the supervision
// workflow share this instance so they serialize on the same per-farm locks.
func (c *Container) MatcherUseCase() (assignmentUseCase.MatcherUseCase, error) {
	var err error
	c.matcherUCInit.Do(func() {
		c.matcherUC, err = c.initMatcherUseCase()
		if err != nil {
			c.setInitError("matcherUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("matcherUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.matcherUC, nil
}

// SlotLocks returns the slot lock table shared by the matcher and the directory.
func (c *Container) SlotLocks() *assignmentUseCase.SlotLocks {
	c.slotLocksInit.Do(func() {
		c.slotLocks = assignmentUseCase.NewSlotLocks()
	})
	return c.slotLocks
}

// CandidateUseCase returns the candidate pool use case.
func (c *Container) CandidateUseCase() (assignmentUseCase.CandidateUseCase, error) {
	var err error
	c.candidateUCInit.Do(func() {
		var repo assignmentUseCase.CandidateRepository
		repo, err = c.CandidateRepository()
		if err != nil {
			err = fmt.Errorf("failed to get candidate repository for candidate use case: %w", err)
			c.setInitError("candidateUseCase", err)
			return
		}
		c.candidateUC = assignmentUseCase.NewCandidateUseCase(repo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("candidateUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.candidateUC, nil
}

// FarmUseCase returns the farm use case.
func (c *Container) FarmUseCase() (assignmentUseCase.FarmUseCase, error) {
	var err error
	c.farmUCInit.Do(func() {
		var repo assignmentUseCase.FarmRepository
		repo, err = c.FarmRepository()
		if err != nil {
			err = fmt.Errorf("failed to get farm repository for farm use case: %w", err)
			c.setInitError("farmUseCase", err)
			return
		}
		c.farmUC = assignmentUseCase.NewFarmUseCase(repo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("farmUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.farmUC, nil
}

// initAssignmentRepository creates the assignment repository based on the database driver.
func (c *Container) initAssignmentRepository() (assignmentUseCase.AssignmentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for assignment repository: %w", err)
	}

	return driverRepository[assignmentUseCase.AssignmentRepository](
		c.config.DBDriver,
		func() assignmentUseCase.AssignmentRepository {
			return assignmentRepository.NewPostgreSQLAssignmentRepository(db)
		},
		func() assignmentUseCase.AssignmentRepository { return assignmentRepository.NewMySQLAssignmentRepository(db) },
	)
}

// initCandidateRepository creates the candidate repository based on the database driver.
func (c *Container) initCandidateRepository() (assignmentUseCase.CandidateRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for candidate repository: %w", err)
	}

	return driverRepository[assignmentUseCase.CandidateRepository](
		c.config.DBDriver,
		func() assignmentUseCase.CandidateRepository {
			return assignmentRepository.NewPostgreSQLCandidateRepository(db)
		},
		func() assignmentUseCase.CandidateRepository { return assignmentRepository.NewMySQLCandidateRepository(db) },
	)
}

// initFarmRepository creates the farm repository based on the database driver.
func (c *Container) initFarmRepository() (assignmentUseCase.FarmRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for farm repository: %w", err)
	}

	return driverRepository[assignmentUseCase.FarmRepository](
		c.config.DBDriver,
		func() assignmentUseCase.FarmRepository { return assignmentRepository.NewPostgreSQLFarmRepository(db) },
		func() assignmentUseCase.FarmRepository { return assignmentRepository.NewMySQLFarmRepository(db) },
	)
}

// initDirectoryUseCase creates the directory use case with all its dependencies.
func (c *Container) initDirectoryUseCase() (assignmentUseCase.DirectoryUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for directory use case: %w", err)
	}

	assignmentRepo, err := c.AssignmentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment repository for directory use case: %w", err)
	}

	publisher, err := c.Publisher()
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher for directory use case: %w", err)
	}

	baseUseCase := assignmentUseCase.NewDirectoryUseCase(txManager, assignmentRepo, publisher, c.SlotLocks())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for directory use case: %w", err)
		}
		return assignmentUseCase.NewDirectoryUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initMatcherUseCase creates the matcher use case with all its dependencies.
func (c *Container) initMatcherUseCase() (assignmentUseCase.MatcherUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for matcher use case: %w", err)
	}

	assignmentRepo, err := c.AssignmentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment repository for matcher use case: %w", err)
	}

	candidateRepo, err := c.CandidateRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate repository for matcher use case: %w", err)
	}

	publisher, err := c.Publisher()
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher for matcher use case: %w", err)
	}

	baseUseCase := assignmentUseCase.NewMatcherUseCase(
		txManager,
		assignmentRepo,
		candidateRepo,
		publisher,
		c.SlotLocks(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for matcher use case: %w", err)
		}
		return assignmentUseCase.NewMatcherUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// assignmentHandlers creates the assignment, candidate and farm HTTP handlers.
func (c *Container) assignmentHandlers() (
	*assignmentHTTP.AssignmentHandler,
	*assignmentHTTP.CandidateHandler,
	*assignmentHTTP.FarmHandler,
	error,
) {
	logger := c.Logger()

	directoryUseCase, err := c.DirectoryUseCase()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get directory use case for assignment handler: %w", err)
	}

	matcherUseCase, err := c.MatcherUseCase()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get matcher use case for assignment handler: %w", err)
	}

	candidateUseCase, err := c.CandidateUseCase()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get candidate use case for candidate handler: %w", err)
	}

	farmUseCase, err := c.FarmUseCase()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get farm use case for farm handler: %w", err)
	}

	return assignmentHTTP.NewAssignmentHandler(directoryUseCase, matcherUseCase, logger),
		assignmentHTTP.NewCandidateHandler(candidateUseCase, logger),
		assignmentHTTP.NewFarmHandler(farmUseCase, logger),
		nil
}
