package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/vetdesk/internal/errors"
)

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	errAlreadyAssigned := apperrors.Define(apperrors.ErrConflict, "already_assigned", "slot already taken")
	errUnknown := apperrors.Define(apperrors.ErrInvalidInput, "unknown_capability", "unknown capability")

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            apperrors.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedError:  "not_found",
		},
		{
			name:           "coded conflict",
			err:            apperrors.Wrapf(errAlreadyAssigned, "farm %s", "f-1"),
			expectedStatus: http.StatusConflict,
			expectedError:  "conflict",
			expectedCode:   "already_assigned",
		},
		{
			name:           "coded invalid input",
			err:            errUnknown,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "invalid_input",
			expectedCode:   "unknown_capability",
		},
		{
			name:           "unauthorized",
			err:            apperrors.ErrUnauthorized,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "unauthorized",
		},
		{
			name:           "locked",
			err:            apperrors.ErrLocked,
			expectedStatus: http.StatusLocked,
			expectedError:  "moderator_locked",
		},
		{
			name:           "forbidden",
			err:            apperrors.ErrForbidden,
			expectedStatus: http.StatusForbidden,
			expectedError:  "forbidden",
		},
		{
			name:           "internal",
			err:            errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedError, response.Error)
			assert.Equal(t, tt.expectedCode, response.Code)
		})
	}
}

func TestHandleErrorGin_NilError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleErrorGin(c, nil, nil)

	assert.Equal(t, 0, w.Body.Len())
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleBadRequestGin(c, errors.New("invalid json"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"invalid json"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleValidationErrorGin(c, errors.New("name: cannot be blank."), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(
		t,
		`{"error":"validation_error","message":"name: cannot be blank."}`,
		w.Body.String(),
	)
}
