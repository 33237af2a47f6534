package usecase

import (
	"context"

	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

// resolverUseCase implements ResolverUseCase. Every call reads the grant afresh.
type resolverUseCase struct {
	grantRepo GrantRepository
	catalog   *permissionDomain.Catalog
}

// Resolve loads the grant and derives its effective permission set.
func (r *resolverUseCase) Resolve(
	ctx context.Context,
	moderatorID string,
) (*permissionDomain.EffectivePermissionSet, error) {
	if err := permissionDomain.ValidateModeratorID(moderatorID); err != nil {
		return nil, err
	}

	grant, err := r.grantRepo.Get(ctx, moderatorID)
	if err != nil {
		return nil, err
	}

	return permissionDomain.Resolve(r.catalog, grant), nil
}

// HasCapability resolves the moderator and checks a single identifier.
func (r *resolverUseCase) HasCapability(ctx context.Context, moderatorID, id string) (bool, error) {
	set, err := r.Resolve(ctx, moderatorID)
	if err != nil {
		return false, err
	}
	return set.Contains(id), nil
}

// NewResolverUseCase creates a new ResolverUseCase.
func NewResolverUseCase(grantRepo GrantRepository, catalog *permissionDomain.Catalog) ResolverUseCase {
	return &resolverUseCase{
		grantRepo: grantRepo,
		catalog:   catalog,
	}
}
