// Package http provides HTTP middleware and handlers for moderator authentication,
// capability gating and audit logs.
package http

import (
	"context"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
)

// moderatorKey is a context key type for storing the authenticated moderator.
type moderatorKey struct{}

// capabilityKey is a context key type for storing the capability that let a request through.
type capabilityKey struct{}

// WithModerator stores an authenticated moderator in the context.
func WithModerator(ctx context.Context, moderator *authDomain.Moderator) context.Context {
	return context.WithValue(ctx, moderatorKey{}, moderator)
}

// GetModerator retrieves the authenticated moderator from the context.
func GetModerator(ctx context.Context) (*authDomain.Moderator, bool) {
	moderator, ok := ctx.Value(moderatorKey{}).(*authDomain.Moderator)
	return moderator, ok && moderator != nil
}

// WithCapability stores the capability checked by CapabilityMiddleware.
func WithCapability(ctx context.Context, capability string) context.Context {
	return context.WithValue(ctx, capabilityKey{}, capability)
}

// GetCapability retrieves the capability checked by CapabilityMiddleware.
func GetCapability(ctx context.Context) (string, bool) {
	capability, ok := ctx.Value(capabilityKey{}).(string)
	return capability, ok
}
