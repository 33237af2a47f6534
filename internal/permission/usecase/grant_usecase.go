package usecase

import (
	"context"
	"time"

	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
	outboxDomain "github.com/allisson/vetdesk/internal/outbox/domain"
	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

// grantUseCase implements GrantUseCase on top of a GrantRepository and the outbox.
type grantUseCase struct {
	txManager database.TxManager
	grantRepo GrantRepository
	publisher EventPublisher
	catalog   *permissionDomain.Catalog
}

// Get returns the stored grant of a moderator.
func (g *grantUseCase) Get(ctx context.Context, moderatorID string) (*permissionDomain.Grant, error) {
	if err := permissionDomain.ValidateModeratorID(moderatorID); err != nil {
		return nil, err
	}
	return g.grantRepo.Get(ctx, moderatorID)
}

// SetCapability upserts a category key.
func (g *grantUseCase) SetCapability(
	ctx context.Context,
	moderatorID, capabilityID string,
	enabled bool,
) error {
	if err := permissionDomain.ValidateModeratorID(moderatorID); err != nil {
		return err
	}
	if !g.catalog.IsCategory(capabilityID) {
		return apperrors.Wrapf(permissionDomain.ErrUnknownCapability, "capability %q", capabilityID)
	}

	return g.upsert(ctx, moderatorID, capabilityID, permissionDomain.KindCategory, enabled)
}

// SetSubOption upserts a sub-option key after checking the parent/child pair.
func (g *grantUseCase) SetSubOption(
	ctx context.Context,
	moderatorID, capabilityID, subOptionID string,
	enabled bool,
) error {
	if err := permissionDomain.ValidateModeratorID(moderatorID); err != nil {
		return err
	}
	if !g.catalog.IsSubOptionOf(capabilityID, subOptionID) {
		return apperrors.Wrapf(
			permissionDomain.ErrUnknownCapability,
			"sub-option %q of capability %q",
			subOptionID,
			capabilityID,
		)
	}

	return g.upsert(ctx, moderatorID, subOptionID, permissionDomain.KindSubOption, enabled)
}

// Replace validates the new grant, then deletes and re-inserts every key in one transaction.
func (g *grantUseCase) Replace(
	ctx context.Context,
	moderatorID string,
	grant *permissionDomain.Grant,
) error {
	if err := permissionDomain.ValidateModeratorID(moderatorID); err != nil {
		return err
	}

	replacement := grant.Clone()
	replacement.ModeratorID = moderatorID
	if err := replacement.Validate(g.catalog); err != nil {
		return err
	}

	now := time.Now().UTC()
	return g.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := g.grantRepo.DeleteAll(ctx, moderatorID); err != nil {
			return err
		}
		if err := g.grantRepo.Insert(ctx, replacement, now); err != nil {
			return err
		}
		return g.publishChanged(ctx, moderatorID)
	})
}

func (g *grantUseCase) upsert(
	ctx context.Context,
	moderatorID, id string,
	kind permissionDomain.Kind,
	enabled bool,
) error {
	now := time.Now().UTC()
	return g.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := g.grantRepo.Upsert(ctx, moderatorID, id, kind, enabled, now); err != nil {
			return err
		}
		return g.publishChanged(ctx, moderatorID)
	})
}

func (g *grantUseCase) publishChanged(ctx context.Context, moderatorID string) error {
	return g.publisher.Publish(
		ctx,
		outboxDomain.EventTypeGrantChanged,
		outboxDomain.GrantChanged{ModeratorID: moderatorID},
	)
}

// NewGrantUseCase creates a new GrantUseCase with the provided dependencies.
func NewGrantUseCase(
	txManager database.TxManager,
	grantRepo GrantRepository,
	publisher EventPublisher,
	catalog *permissionDomain.Catalog,
) GrantUseCase {
	return &grantUseCase{
		txManager: txManager,
		grantRepo: grantRepo,
		publisher: publisher,
		catalog:   catalog,
	}
}
