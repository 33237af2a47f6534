package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	authService "github.com/allisson/vetdesk/internal/auth/service"
	authUseCase "github.com/allisson/vetdesk/internal/auth/usecase"
	apperrors "github.com/allisson/vetdesk/internal/errors"
	"github.com/allisson/vetdesk/internal/httputil"
)

// CapabilityChecker answers whether a moderator holds an effective capability.
type CapabilityChecker interface {
	HasCapability(ctx context.Context, moderatorID, id string) (bool, error)
}

// AuthenticationMiddleware resolves the "Authorization: Bearer <token>" header to an active
// moderator and stores it in the request context.
//
// Missing or malformed headers and unusable tokens yield 401, inactive moderators 403.
func AuthenticationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Case-insensitive "bearer" prefix
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Extract token (everything after "Bearer ")
		plainToken := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Hash token and authenticate; only hashes are ever stored
		moderator, err := tokenUseCase.Authenticate(c.Request.Context(), tokenService.HashToken(plainToken))
		if err != nil {
			logger.Debug("authentication failed", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store authenticated moderator in request context
		c.Request = c.Request.WithContext(WithModerator(c.Request.Context(), moderator))

		logger.Debug("authentication successful",
			slog.String("moderator_id", moderator.ID.String()),
			slog.String("moderator_name", moderator.Name))

		c.Next()
	}
}

// RootMiddleware lets only root moderators through. Must run after AuthenticationMiddleware.
func RootMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve authenticated moderator from context
		moderator, ok := GetModerator(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !moderator.IsRoot {
			logger.Debug("root required",
				slog.String("moderator_id", moderator.ID.String()),
				slog.String("path", c.Request.URL.Path))
			httputil.HandleErrorGin(c, authDomain.ErrRootRequired, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CapabilityMiddleware resolves the moderator's effective permissions on every request
// and lets the request through only when capabilityID is among them. Root moderators
// bypass the check. Every request let through is recorded in the audit log; when the
// record cannot be written the request fails.
func CapabilityMiddleware(
	capabilityID string,
	checker CapabilityChecker,
	auditLogUseCase authUseCase.AuditLogUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// Retrieve authenticated moderator from context
		moderator, ok := GetModerator(ctx)
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		path := c.Request.URL.Path

		// Resolve fresh on every request; grant edits apply immediately
		if !moderator.IsRoot {
			allowed, err := checker.HasCapability(ctx, moderator.ID.String(), capabilityID)
			if err != nil {
				httputil.HandleErrorGin(c, err, logger)
				c.Abort()
				return
			}
			if !allowed {
				logger.Debug("capability denied",
					slog.String("moderator_id", moderator.ID.String()),
					slog.String("capability", capabilityID),
					slog.String("path", path))
				httputil.HandleErrorGin(c, authDomain.ErrCapabilityDenied, logger)
				c.Abort()
				return
			}
		}

		// Audit the allowed request before handing it on
		metadata := map[string]any{
			"method":    c.Request.Method,
			"client_ip": c.ClientIP(),
			"root":      moderator.IsRoot,
		}
		if err := auditLogUseCase.Create(ctx, requestID(c), moderator.ID, capabilityID, path, metadata); err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Expose the checked capability to handlers
		c.Request = c.Request.WithContext(WithCapability(ctx, capabilityID))
		c.Next()
	}
}

// requestID returns the request id set by the requestid middleware, or a fresh UUIDv7 when
// it is missing or not a UUID.
func requestID(c *gin.Context) uuid.UUID {
	if id, err := uuid.Parse(requestid.Get(c)); err == nil {
		return id
	}
	return uuid.Must(uuid.NewV7())
}
