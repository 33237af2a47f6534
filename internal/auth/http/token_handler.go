package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/vetdesk/internal/auth/http/dto"
	authUseCase "github.com/allisson/vetdesk/internal/auth/usecase"
	"github.com/allisson/vetdesk/internal/httputil"
	customValidation "github.com/allisson/vetdesk/internal/validation"
)

// TokenHandler serves the public token endpoint.
type TokenHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{tokenUseCase: tokenUseCase, logger: logger}
}

// IssueTokenHandler exchanges moderator credentials for a bearer token.
// POST /v1/token, unauthenticated, 201 on success.
func (h *TokenHandler) IssueTokenHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case; a wrong secret counts towards the lockout
	issued, err := h.tokenUseCase.Issue(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// The plain token is only ever returned here
	c.JSON(http.StatusCreated, dto.IssueTokenResponse{Token: issued.PlainToken, ExpiresAt: issued.ExpiresAt})
}
