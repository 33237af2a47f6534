package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
	"github.com/allisson/vetdesk/internal/permission/http/dto"
	permissionMocks "github.com/allisson/vetdesk/internal/permission/usecase/mocks"
)

func setupGrantTestHandler(t *testing.T) (*GrantHandler, *permissionMocks.MockGrantUseCase) {
	t.Helper()

	mockGrantUseCase := permissionMocks.NewMockGrantUseCase(t)
	return NewGrantHandler(mockGrantUseCase, newTestLogger()), mockGrantUseCase
}

func TestGrantHandler_GetHandler(t *testing.T) {
	moderatorID := uuid.Must(uuid.NewV7()).String()

	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)
		updatedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

		mockUseCase.On("Get", mock.Anything, moderatorID).Return(&permissionDomain.Grant{
			ModeratorID:  moderatorID,
			Capabilities: map[string]bool{"sections_control": true},
			SubOptions:   map[string]bool{"pets_section": true, "clinics_section": false},
			UpdatedAt:    &updatedAt,
		}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/moderators/"+moderatorID+"/grant", nil)
		c.Params = gin.Params{{Key: "id", Value: moderatorID}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.GrantResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, map[string]bool{"sections_control": true}, response.Capabilities)
		assert.Equal(t, map[string]bool{"pets_section": true, "clinics_section": false}, response.SubOptions)
	})

	t.Run("Success_EmptyGrant", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)
		mockUseCase.On("Get", mock.Anything, moderatorID).Return(permissionDomain.NewGrant(moderatorID), nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/moderators/"+moderatorID+"/grant", nil)
		c.Params = gin.Params{{Key: "id", Value: moderatorID}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"moderator_id":"`+moderatorID+`","capabilities":{},"sub_options":{}}`,
			w.Body.String(),
		)
	})

	t.Run("Error_InvalidModeratorID", func(t *testing.T) {
		handler, _ := setupGrantTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/moderators/nope/grant", nil)
		c.Params = gin.Params{{Key: "id", Value: "nope"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestGrantHandler_ReplaceHandler(t *testing.T) {
	moderatorID := uuid.Must(uuid.NewV7()).String()

	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		mockUseCase.On("Replace", mock.Anything, moderatorID, mock.MatchedBy(func(grant *permissionDomain.Grant) bool {
			return grant.ModeratorID == moderatorID &&
				grant.Capabilities["field_assignment"] &&
				!grant.SubOptions["pets_section"]
		})).Return(nil).Once()

		c, w := createTestContext(http.MethodPut, "/v1/moderators/"+moderatorID+"/grant", dto.ReplaceGrantRequest{
			Capabilities: map[string]bool{"field_assignment": true},
			SubOptions:   map[string]bool{"pets_section": false},
		})
		c.Params = gin.Params{{Key: "id", Value: moderatorID}}
		handler.ReplaceHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_InvalidGrantSet", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)

		mockUseCase.On("Replace", mock.Anything, moderatorID, mock.Anything).
			Return(fmt.Errorf("unknown keys [time_travel]: %w", permissionDomain.ErrInvalidGrantSet)).Once()

		c, w := createTestContext(http.MethodPut, "/v1/moderators/"+moderatorID+"/grant", dto.ReplaceGrantRequest{
			Capabilities: map[string]bool{"time_travel": true},
		})
		c.Params = gin.Params{{Key: "id", Value: moderatorID}}
		handler.ReplaceHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "invalid_grant_set", response["code"])
	})

	t.Run("Error_MalformedKey", func(t *testing.T) {
		handler, _ := setupGrantTestHandler(t)

		c, w := createTestContext(http.MethodPut, "/v1/moderators/"+moderatorID+"/grant", dto.ReplaceGrantRequest{
			Capabilities: map[string]bool{"Not A Key": true},
		})
		c.Params = gin.Params{{Key: "id", Value: moderatorID}}
		handler.ReplaceHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupGrantTestHandler(t)

		c, w := createTestContext(http.MethodPut, "/v1/moderators/"+moderatorID+"/grant", []string{"x"})
		c.Params = gin.Params{{Key: "id", Value: moderatorID}}
		handler.ReplaceHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGrantHandler_SetCapabilityHandler(t *testing.T) {
	moderatorID := uuid.Must(uuid.NewV7()).String()
	enabled := true

	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)
		mockUseCase.On("SetCapability", mock.Anything, moderatorID, "vet_assignment", true).Return(nil).Once()

		c, w := createTestContext(http.MethodPut, "/", dto.SetEnabledRequest{Enabled: &enabled})
		c.Params = gin.Params{{Key: "id", Value: moderatorID}, {Key: "capability", Value: "vet_assignment"}}
		handler.SetCapabilityHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_MissingEnabled", func(t *testing.T) {
		handler, _ := setupGrantTestHandler(t)

		c, w := createTestContext(http.MethodPut, "/", map[string]any{})
		c.Params = gin.Params{{Key: "id", Value: moderatorID}, {Key: "capability", Value: "vet_assignment"}}
		handler.SetCapabilityHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_UnknownCapability", func(t *testing.T) {
		handler, mockUseCase := setupGrantTestHandler(t)
		mockUseCase.On("SetCapability", mock.Anything, moderatorID, "pets_section", true).
			Return(permissionDomain.ErrUnknownCapability).Once()

		c, w := createTestContext(http.MethodPut, "/", dto.SetEnabledRequest{Enabled: &enabled})
		c.Params = gin.Params{{Key: "id", Value: moderatorID}, {Key: "capability", Value: "pets_section"}}
		handler.SetCapabilityHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestGrantHandler_SetSubOptionHandler(t *testing.T) {
	moderatorID := uuid.Must(uuid.NewV7()).String()
	disabled := false

	handler, mockUseCase := setupGrantTestHandler(t)
	mockUseCase.On("SetSubOption", mock.Anything, moderatorID, "sections_control", "pets_section", false).
		Return(nil).Once()

	c, w := createTestContext(http.MethodPut, "/", dto.SetEnabledRequest{Enabled: &disabled})
	c.Params = gin.Params{
		{Key: "id", Value: moderatorID},
		{Key: "capability", Value: "sections_control"},
		{Key: "sub", Value: "pets_section"},
	}
	handler.SetSubOptionHandler(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}
