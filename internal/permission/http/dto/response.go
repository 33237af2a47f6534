package dto

import (
	"time"

	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

// SubOptionResponse represents a catalog sub-option. Subsumes is set on super sub-options.
type SubOptionResponse struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Subsumes []string `json:"subsumes,omitempty"`
}

// CapabilityResponse represents a catalog category and its sub-options.
type CapabilityResponse struct {
	ID         string              `json:"id"`
	Label      string              `json:"label"`
	SubOptions []SubOptionResponse `json:"sub_options"`
}

// CatalogResponse represents the whole capability catalog in catalog order.
type CatalogResponse struct {
	Version       string               `json:"version"`
	SuperCategory string               `json:"super_category"`
	Categories    []CapabilityResponse `json:"categories"`
}

// MapCatalogToResponse converts the catalog to its API representation.
func MapCatalogToResponse(catalog *permissionDomain.Catalog) CatalogResponse {
	categories := catalog.Categories()
	response := CatalogResponse{
		Version:       catalog.Version(),
		SuperCategory: catalog.SuperCategory(),
		Categories:    make([]CapabilityResponse, 0, len(categories)),
	}

	for _, category := range categories {
		item := CapabilityResponse{
			ID:         category.ID,
			Label:      category.Label,
			SubOptions: make([]SubOptionResponse, 0, len(category.SubOptions)),
		}
		for _, sub := range category.SubOptions {
			item.SubOptions = append(item.SubOptions, SubOptionResponse{
				ID:       sub.ID,
				Label:    sub.Label,
				Subsumes: catalog.Subsumes(sub.ID),
			})
		}
		response.Categories = append(response.Categories, item)
	}

	return response
}

// GrantResponse represents the recorded grant of a moderator.
type GrantResponse struct {
	ModeratorID  string          `json:"moderator_id"`
	Capabilities map[string]bool `json:"capabilities"`
	SubOptions   map[string]bool `json:"sub_options"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

// MapGrantToResponse converts a domain grant to its API representation.
func MapGrantToResponse(grant *permissionDomain.Grant) GrantResponse {
	clone := grant.Clone()
	return GrantResponse{
		ModeratorID:  clone.ModeratorID,
		Capabilities: clone.Capabilities,
		SubOptions:   clone.SubOptions,
		UpdatedAt:    clone.UpdatedAt,
	}
}

// EffectivePermissionsResponse lists the identifiers a moderator can currently use.
type EffectivePermissionsResponse struct {
	ModeratorID    string   `json:"moderator_id"`
	CatalogVersion string   `json:"catalog_version"`
	IsRoot         bool     `json:"is_root"`
	Permissions    []string `json:"permissions"`
}

// MapEffectiveToResponse converts an effective permission set to its API representation.
func MapEffectiveToResponse(set *permissionDomain.EffectivePermissionSet, isRoot bool) EffectivePermissionsResponse {
	return EffectivePermissionsResponse{
		ModeratorID:    set.ModeratorID,
		CatalogVersion: set.CatalogVersion,
		IsRoot:         isRoot,
		Permissions:    set.IDs(),
	}
}
