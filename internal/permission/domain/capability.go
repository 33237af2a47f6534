// Package domain defines the moderator authorization model: an immutable capability
// catalog, per-moderator grants and the pure resolution of effective permissions.
package domain

// Capability is a top level grantable right (a catalog category).
type Capability struct {
	ID         string
	Label      string
	SubOptions []SubOption
}

// SubOption is a refinement of a Capability. Sub-options are one level deep only.
type SubOption struct {
	ID    string
	Label string
}

// Kind tells categories and sub-options apart in stored grants.
type Kind string

const (
	KindCategory  Kind = "category"
	KindSubOption Kind = "sub_option"
)

// AllCategories is the subsumption target meaning every category except the super-admin one.
const AllCategories = "*"
