package domain

import (
	"fmt"
	"slices"
)

// entry is the catalog index record for a single identifier.
type entry struct {
	kind   Kind
	parent string
	label  string
}

// Catalog is the immutable set of capabilities a moderator can be granted, plus the
// table of super sub-options and the categories each of them subsumes.
type Catalog struct {
	version       string
	superCategory string
	categories    []Capability
	index         map[string]entry
	subsumes      map[string][]string
	subsumers     map[string][]string
}

// NewCatalog validates and indexes a catalog definition.
//
// Identifiers must be unique across categories and sub-options. Every subsumption source
// must be a sub-option of superCategory and every target must be a category other than
// superCategory, or AllCategories.
func NewCatalog(
	version, superCategory string,
	categories []Capability,
	subsumptions map[string][]string,
) (*Catalog, error) {
	c := &Catalog{
		version:       version,
		superCategory: superCategory,
		categories:    cloneCategories(categories),
		index:         make(map[string]entry),
		subsumes:      make(map[string][]string),
		subsumers:     make(map[string][]string),
	}

	for _, category := range c.categories {
		if category.ID == "" {
			return nil, fmt.Errorf("catalog %s: empty category id", version)
		}
		if _, dup := c.index[category.ID]; dup {
			return nil, fmt.Errorf("catalog %s: duplicate id %q", version, category.ID)
		}
		c.index[category.ID] = entry{kind: KindCategory, label: category.Label}

		for _, sub := range category.SubOptions {
			if sub.ID == "" {
				return nil, fmt.Errorf("catalog %s: empty sub-option id under %q", version, category.ID)
			}
			if _, dup := c.index[sub.ID]; dup {
				return nil, fmt.Errorf("catalog %s: duplicate id %q", version, sub.ID)
			}
			c.index[sub.ID] = entry{kind: KindSubOption, parent: category.ID, label: sub.Label}
		}
	}

	if superCategory != "" && !c.IsCategory(superCategory) {
		return nil, fmt.Errorf("catalog %s: super category %q is not a category", version, superCategory)
	}

	sources := make([]string, 0, len(subsumptions))
	for source := range subsumptions {
		sources = append(sources, source)
	}
	slices.Sort(sources)

	for _, source := range sources {
		if !c.IsSubOptionOf(superCategory, source) {
			return nil, fmt.Errorf("catalog %s: subsumption source %q is not a super sub-option", version, source)
		}

		var targets []string
		for _, target := range subsumptions[source] {
			switch {
			case target == AllCategories:
				for _, category := range c.categories {
					if category.ID != superCategory {
						targets = append(targets, category.ID)
					}
				}
			case target == superCategory:
				return nil, fmt.Errorf("catalog %s: %q cannot subsume the super category", version, source)
			case c.IsCategory(target):
				targets = append(targets, target)
			default:
				return nil, fmt.Errorf("catalog %s: subsumption target %q is not a category", version, target)
			}
		}

		slices.Sort(targets)
		targets = slices.Compact(targets)
		c.subsumes[source] = targets
		for _, target := range targets {
			c.subsumers[target] = append(c.subsumers[target], source)
		}
	}

	return c, nil
}

// MustNewCatalog is like NewCatalog but panics on an invalid definition.
func MustNewCatalog(
	version, superCategory string,
	categories []Capability,
	subsumptions map[string][]string,
) *Catalog {
	c, err := NewCatalog(version, superCategory, categories, subsumptions)
	if err != nil {
		panic(err)
	}
	return c
}

// Version identifies the catalog definition.
func (c *Catalog) Version() string {
	return c.version
}

// SuperCategory returns the super-admin category ID.
func (c *Catalog) SuperCategory() string {
	return c.superCategory
}

// Categories returns the ordered categories. The result is a copy.
func (c *Catalog) Categories() []Capability {
	return cloneCategories(c.categories)
}

// Exists reports whether id is a category or a sub-option.
func (c *Catalog) Exists(id string) bool {
	_, ok := c.index[id]
	return ok
}

// IsCategory reports whether id is a category.
func (c *Catalog) IsCategory(id string) bool {
	e, ok := c.index[id]
	return ok && e.kind == KindCategory
}

// IsSubOption reports whether id is a sub-option of any category.
func (c *Catalog) IsSubOption(id string) bool {
	e, ok := c.index[id]
	return ok && e.kind == KindSubOption
}

// IsSubOptionOf reports whether child is a sub-option of parent.
func (c *Catalog) IsSubOptionOf(parent, child string) bool {
	e, ok := c.index[child]
	return ok && e.kind == KindSubOption && e.parent == parent
}

// ParentOf returns the category a sub-option belongs to.
func (c *Catalog) ParentOf(child string) (string, bool) {
	e, ok := c.index[child]
	if !ok || e.kind != KindSubOption {
		return "", false
	}
	return e.parent, true
}

// KindOf returns whether id is a category or a sub-option.
func (c *Catalog) KindOf(id string) (Kind, bool) {
	e, ok := c.index[id]
	return e.kind, ok
}

// Subsumes returns the categories the super sub-option grants, with AllCategories expanded.
func (c *Catalog) Subsumes(superSubOption string) []string {
	return slices.Clone(c.subsumes[superSubOption])
}

// Subsumers returns the super sub-options that subsume category.
func (c *Catalog) Subsumers(category string) []string {
	return slices.Clone(c.subsumers[category])
}

func cloneCategories(categories []Capability) []Capability {
	out := make([]Capability, len(categories))
	for i, category := range categories {
		out[i] = Capability{
			ID:         category.ID,
			Label:      category.Label,
			SubOptions: slices.Clone(category.SubOptions),
		}
	}
	return out
}
