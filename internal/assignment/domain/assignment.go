// Package domain defines farms, their vet and supervisor assignment slots and the
// candidate pool those slots are filled from.
package domain

import (
	"strings"
	"time"
)

// Role names one of the two independent slots of a farm.
type Role string

const (
	RoleVet        Role = "vet"
	RoleSupervisor Role = "supervisor"
)

// Roles lists every slot in lock order.
var Roles = []Role{RoleVet, RoleSupervisor}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleVet || r == RoleSupervisor
}

// ParseRole converts s into a Role.
func ParseRole(s string) (Role, error) {
	role := Role(strings.TrimSpace(s))
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Assignee is the occupant of a slot. Name and phone are copied at assignment time and
// never refreshed from the candidate pool.
type Assignee struct {
	ID         string
	Name       string
	Phone      string
	AssignedAt time.Time
}

// Assignment holds the two slots of a farm. A nil slot is empty.
type Assignment struct {
	FarmID     string
	Vet        *Assignee
	Supervisor *Assignee
	UpdatedAt  *time.Time
}

// NewAssignment returns an assignment with both slots empty.
func NewAssignment(farmID string) *Assignment {
	return &Assignment{FarmID: farmID}
}

// Slot returns the occupant of role, nil when empty.
func (a *Assignment) Slot(role Role) *Assignee {
	switch role {
	case RoleVet:
		return a.Vet
	case RoleSupervisor:
		return a.Supervisor
	}
	return nil
}

// SetSlot replaces the occupant of role. A nil assignee empties the slot.
func (a *Assignment) SetSlot(role Role, assignee *Assignee) {
	switch role {
	case RoleVet:
		a.Vet = assignee
	case RoleSupervisor:
		a.Supervisor = assignee
	}
}

// IsEmpty reports whether both slots are empty.
func (a *Assignment) IsEmpty() bool {
	return a.Vet == nil && a.Supervisor == nil
}

// Placement asks the matcher to put a candidate into a slot.
type Placement struct {
	Role        Role
	CandidateID string
	Name        string
	Phone       string
}

// ValidateFarmID rejects blank farm identifiers.
func ValidateFarmID(farmID string) error {
	if strings.TrimSpace(farmID) == "" {
		return ErrInvalidFarm
	}
	return nil
}
