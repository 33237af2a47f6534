package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
	"github.com/allisson/vetdesk/internal/permission/http/dto"
)

func TestCatalogHandler_GetHandler(t *testing.T) {
	handler := NewCatalogHandler(permissionDomain.DefaultCatalog(), newTestLogger())

	c, w := createTestContext(http.MethodGet, "/v1/catalog", nil)
	handler.GetHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.CatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, permissionDomain.DefaultCatalogVersion, response.Version)
	assert.Equal(t, permissionDomain.CapabilitySuperAdmin, response.SuperCategory)
	require.NotEmpty(t, response.Categories)
	assert.Equal(t, "consultation_reply", response.Categories[0].ID)

	subsumes := map[string][]string{}
	for _, category := range response.Categories {
		if category.ID != permissionDomain.CapabilitySuperAdmin {
			continue
		}
		for _, sub := range category.SubOptions {
			subsumes[sub.ID] = sub.Subsumes
		}
	}
	assert.Equal(t, []string{permissionDomain.CapabilityFieldAssignment}, subsumes["field_assignment_super"])
	assert.NotContains(t, subsumes[permissionDomain.CapabilityAllPermissions], permissionDomain.CapabilitySuperAdmin)
}
