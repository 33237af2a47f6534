package domain

// Capability identifiers referenced by code. The rest of the catalog is data.
const (
	CapabilityFieldAssignment       = "field_assignment"
	CapabilityVetAssignment         = "vet_assignment"
	CapabilitySupervisionAssignment = "supervision_assignment"
	CapabilitySupervisionRequests   = "supervision_requests"
	CapabilitySuperAdmin            = "super_admin"
	CapabilityAllPermissions        = "all_permissions"
)

// DefaultCatalogVersion is bumped whenever the default catalog changes shape.
const DefaultCatalogVersion = "2024.1"

var defaultCatalog = MustNewCatalog(
	DefaultCatalogVersion,
	CapabilitySuperAdmin,
	[]Capability{
		{ID: "consultation_reply", Label: "Consultation replies", SubOptions: []SubOption{
			{ID: "consultations_reply", Label: "Reply to consultations"},
			{ID: "inquiries_reply", Label: "Reply to inquiries"},
		}},
		{ID: "sections_control", Label: "Sections control", SubOptions: []SubOption{
			{ID: "pets_section", Label: "Pets"},
			{ID: "clinics_section", Label: "Clinics"},
			{ID: "stores_section", Label: "Stores"},
			{ID: "lost_pets_section", Label: "Lost pets"},
			{ID: "adoption_section", Label: "Adoption"},
			{ID: "tips_section", Label: "Tips"},
			{ID: "books_section", Label: "Books"},
			{ID: "courses_section", Label: "Courses"},
			{ID: "jobs_section", Label: "Jobs"},
			{ID: "union_section", Label: "Union"},
		}},
		{ID: "hospitals_management", Label: "Hospitals management", SubOptions: []SubOption{
			{ID: "hospitals_add", Label: "Add hospitals"},
			{ID: "hospitals_edit", Label: "Edit hospitals"},
			{ID: "hospitals_delete", Label: "Delete hospitals"},
		}},
		{ID: "union_management", Label: "Union management", SubOptions: []SubOption{
			{ID: "union_members", Label: "Union members"},
			{ID: "union_news", Label: "Union news"},
		}},
		{ID: "ads_control", Label: "Ads control", SubOptions: []SubOption{
			{ID: "ads_add", Label: "Add ads"},
			{ID: "ads_edit", Label: "Edit ads"},
			{ID: "ads_delete", Label: "Delete ads"},
		}},
		{ID: "homepage_curation", Label: "Homepage curation", SubOptions: []SubOption{
			{ID: "homepage_banners", Label: "Banners"},
			{ID: "homepage_featured", Label: "Featured content"},
		}},
		{ID: "messaging", Label: "Messaging", SubOptions: []SubOption{
			{ID: "messages_read", Label: "Read messages"},
			{ID: "messages_send", Label: "Send messages"},
		}},
		{ID: "users_management", Label: "Users management", SubOptions: []SubOption{
			{ID: "users_view", Label: "View users"},
			{ID: "users_edit", Label: "Edit users"},
			{ID: "users_block", Label: "Block users"},
		}},
		{ID: "store_types_management", Label: "Store types management"},
		{ID: "approvals_management", Label: "Approvals management", SubOptions: []SubOption{
			{ID: "clinics_approvals", Label: "Clinic approvals"},
			{ID: "stores_approvals", Label: "Store approvals"},
		}},
		{ID: "vet_approvals", Label: "Veterinarian approvals", SubOptions: []SubOption{
			{ID: "vet_approvals_view", Label: "View applications"},
			{ID: "vet_approvals_accept", Label: "Accept applications"},
			{ID: "vet_approvals_reject", Label: "Reject applications"},
		}},
		{ID: "jobs_management", Label: "Jobs management"},
		{ID: "courses_management", Label: "Courses management"},
		{ID: CapabilityFieldAssignment, Label: "Field assignment and supervision", SubOptions: []SubOption{
			{ID: CapabilityVetAssignment, Label: "Assign veterinarians"},
			{ID: CapabilitySupervisionAssignment, Label: "Assign supervisors"},
			{ID: CapabilitySupervisionRequests, Label: "Decide supervision requests"},
		}},
		{ID: "pet_approvals", Label: "Pet approvals"},
		{ID: "orders_management", Label: "Orders management", SubOptions: []SubOption{
			{ID: "orders_view", Label: "View orders"},
			{ID: "orders_update", Label: "Update orders"},
		}},
		{ID: CapabilitySuperAdmin, Label: "Super admin", SubOptions: []SubOption{
			{ID: CapabilityAllPermissions, Label: "All permissions"},
			{ID: "vet_approvals_super", Label: "Veterinarian approvals (super)"},
			{ID: "approvals_super", Label: "Approvals (super)"},
			{ID: "users_super", Label: "Users (super)"},
			{ID: "orders_super", Label: "Orders (super)"},
			{ID: "field_assignment_super", Label: "Field assignment (super)"},
			{ID: "sections_super", Label: "Sections (super)"},
		}},
	},
	map[string][]string{
		CapabilityAllPermissions: {AllCategories},
		"vet_approvals_super":    {"vet_approvals"},
		"approvals_super":        {"approvals_management", "pet_approvals"},
		"users_super":            {"users_management"},
		"orders_super":           {"orders_management"},
		"field_assignment_super": {CapabilityFieldAssignment},
		"sections_super":         {"sections_control"},
	},
)

// DefaultCatalog returns the catalog shipped with the service.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}
