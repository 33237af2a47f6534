package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Grant is the recorded boolean state of one moderator's capabilities and sub-options.
// A sub-option's stored value is independent of its parent category.
type Grant struct {
	ModeratorID  string
	Capabilities map[string]bool
	SubOptions   map[string]bool
	UpdatedAt    *time.Time
}

// NewGrant returns an empty grant.
func NewGrant(moderatorID string) *Grant {
	return &Grant{
		ModeratorID:  moderatorID,
		Capabilities: make(map[string]bool),
		SubOptions:   make(map[string]bool),
	}
}

// Clone returns a deep copy of the grant.
func (g *Grant) Clone() *Grant {
	clone := &Grant{
		ModeratorID:  g.ModeratorID,
		Capabilities: maps.Clone(g.Capabilities),
		SubOptions:   maps.Clone(g.SubOptions),
		UpdatedAt:    g.UpdatedAt,
	}
	if clone.Capabilities == nil {
		clone.Capabilities = make(map[string]bool)
	}
	if clone.SubOptions == nil {
		clone.SubOptions = make(map[string]bool)
	}
	return clone
}

// Validate checks every key against the catalog. Capability keys must be categories
// and sub-option keys must be sub-options. All offending keys are reported at once.
func (g *Grant) Validate(catalog *Catalog) error {
	var invalid []string
	for id := range g.Capabilities {
		if !catalog.IsCategory(id) {
			invalid = append(invalid, id)
		}
	}
	for id := range g.SubOptions {
		if !catalog.IsSubOption(id) {
			invalid = append(invalid, id)
		}
	}

	if len(invalid) == 0 {
		return nil
	}

	slices.Sort(invalid)
	return fmt.Errorf("unknown keys [%s]: %w", strings.Join(invalid, ", "), ErrInvalidGrantSet)
}

// ValidateModeratorID rejects blank moderator identities.
func ValidateModeratorID(moderatorID string) error {
	if strings.TrimSpace(moderatorID) == "" {
		return ErrInvalidModerator
	}
	return nil
}
