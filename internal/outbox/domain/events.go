package domain

// Event types written to the outbox.
const (
	EventTypeGrantChanged      = "grant.changed"
	EventTypeAssignmentChanged = "assignment.changed"
	EventTypeRequestDecided    = "request.decided"
)

// GrantChanged is emitted after any successful write to a moderator's grant.
type GrantChanged struct {
	ModeratorID string `json:"moderator_id"`
}

// AssignmentChanged is emitted when a farm slot is filled or emptied.
// AssigneeID is empty when the slot was emptied.
type AssignmentChanged struct {
	FarmID     string `json:"farm_id"`
	Role       string `json:"role"`
	AssigneeID string `json:"assignee_id"`
}

// RequestDecided is emitted when a supervision request is approved or rejected.
type RequestDecided struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}
