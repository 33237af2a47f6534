package domain

import "time"

// Farm is owned by the wider platform. The service reads farms and only creates one when a
// supervision request is approved for a farm that is not registered yet.
type Farm struct {
	ID        string
	OwnerID   string
	Name      string
	Location  string
	CreatedAt time.Time
}

// Candidate is an entry of the candidate pool: someone eligible to occupy slots of Role.
type Candidate struct {
	ID       string
	Role     Role
	Name     string
	Phone    string
	IsActive bool
}

// Eligible reports whether the candidate may be placed into a slot of role.
func (c *Candidate) Eligible(role Role) bool {
	return c.IsActive && c.Role == role
}
