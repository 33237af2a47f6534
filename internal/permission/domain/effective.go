package domain

// EffectivePermissionSet is the set of capability and sub-option identifiers a moderator
// can currently use. It is derived from a grant on every call and never stored.
type EffectivePermissionSet struct {
	ModeratorID    string
	CatalogVersion string
	ids            []string
	set            map[string]struct{}
}

// Contains reports whether id is effective.
func (s *EffectivePermissionSet) Contains(id string) bool {
	_, ok := s.set[id]
	return ok
}

// IDs returns the effective identifiers in catalog order.
func (s *EffectivePermissionSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of effective identifiers.
func (s *EffectivePermissionSet) Len() int {
	return len(s.ids)
}

// Resolve derives the effective permission set of a grant.
//
// Keys absent from the catalog are ignored. A category is effective when its own value is
// true or an effective super sub-option subsumes it. A sub-option is effective when its
// own value is true and its parent category is effective. Super sub-options follow the
// sub-option rule with the super category as parent, and the super category itself is
// never subsumed.
func Resolve(catalog *Catalog, grant *Grant) *EffectivePermissionSet {
	result := &EffectivePermissionSet{
		ModeratorID:    grant.ModeratorID,
		CatalogVersion: catalog.Version(),
		set:            make(map[string]struct{}),
	}

	categoryOn := func(id string) bool {
		return catalog.IsCategory(id) && grant.Capabilities[id]
	}
	subOptionOn := func(id string) bool {
		return catalog.IsSubOption(id) && grant.SubOptions[id]
	}

	categories := catalog.Categories()
	superOn := catalog.SuperCategory() != "" && categoryOn(catalog.SuperCategory())

	subsumed := make(map[string]bool)
	if superOn {
		for _, category := range categories {
			if category.ID != catalog.SuperCategory() {
				continue
			}
			for _, sub := range category.SubOptions {
				if !subOptionOn(sub.ID) {
					continue
				}
				for _, target := range catalog.Subsumes(sub.ID) {
					subsumed[target] = true
				}
			}
		}
	}

	for _, category := range categories {
		effective := categoryOn(category.ID) || subsumed[category.ID]
		if !effective {
			continue
		}
		result.add(category.ID)

		for _, sub := range category.SubOptions {
			if subOptionOn(sub.ID) {
				result.add(sub.ID)
			}
		}
	}

	return result
}

func (s *EffectivePermissionSet) add(id string) {
	if _, ok := s.set[id]; ok {
		return
	}
	s.set[id] = struct{}{}
	s.ids = append(s.ids, id)
}
