// Package domain defines supervision requests and their lifecycle.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

// RequestedRole is what the applicant asks to become on the target farm.
type RequestedRole string

const (
	RequestedRoleSupervision   RequestedRole = "supervision"
	RequestedRoleVetAssignment RequestedRole = "vet_assignment"
	RequestedRoleBoth          RequestedRole = "both"
)

// Valid reports whether r is a known requested role.
func (r RequestedRole) Valid() bool {
	switch r {
	case RequestedRoleSupervision, RequestedRoleVetAssignment, RequestedRoleBoth:
		return true
	}
	return false
}

// Slots returns the assignment slots the request fills on approval, in lock order.
func (r RequestedRole) Slots() []assignmentDomain.Role {
	switch r {
	case RequestedRoleSupervision:
		return []assignmentDomain.Role{assignmentDomain.RoleSupervisor}
	case RequestedRoleVetAssignment:
		return []assignmentDomain.Role{assignmentDomain.RoleVet}
	case RequestedRoleBoth:
		return []assignmentDomain.Role{assignmentDomain.RoleVet, assignmentDomain.RoleSupervisor}
	}
	return nil
}

// ParseRequestedRole converts s into a RequestedRole.
func ParseRequestedRole(s string) (RequestedRole, error) {
	role := RequestedRole(strings.TrimSpace(s))
	if !role.Valid() {
		return "", ErrInvalidRequestedRole
	}
	return role, nil
}

// Status is the lifecycle state of a request. Approved and rejected are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus converts s into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.TrimSpace(s))
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return status, nil
	}
	return "", ErrInvalidStatus
}

// Applicant identifies the person asking to be placed. UserID is their candidate pool ID.
type Applicant struct {
	UserID string
	Name   string
	Email  string
	Phone  string
}

// TargetFarm references an existing farm by ID or describes one that is not registered yet.
type TargetFarm struct {
	FarmID   string
	Name     string
	Location string
}

// Request is a supervision request.
type Request struct {
	ID             uuid.UUID
	Applicant      Applicant
	TargetFarm     TargetFarm
	RequestedRole  RequestedRole
	Status         Status
	SubmittedAt    time.Time
	DecidedAt      *time.Time
	DecidedBy      string
	AssignedFarmID string
}

// IsPending reports whether the request still awaits a decision.
func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}

// Approve moves a pending request to approved and records the farm it was fulfilled on.
func (r *Request) Approve(decidedBy, farmID string, at time.Time) error {
	if err := r.decide(StatusApproved, decidedBy, at); err != nil {
		return err
	}
	r.AssignedFarmID = farmID
	return nil
}

// Reject moves a pending request to rejected.
func (r *Request) Reject(decidedBy string, at time.Time) error {
	return r.decide(StatusRejected, decidedBy, at)
}

func (r *Request) decide(status Status, decidedBy string, at time.Time) error {
	if !r.IsPending() {
		return apperrors.Wrapf(ErrNotPending, "request %s is %s", r.ID, r.Status)
	}
	r.Status = status
	r.DecidedAt = &at
	r.DecidedBy = decidedBy
	return nil
}

// SubmitInput carries what an applicant submits.
type SubmitInput struct {
	Applicant     Applicant
	TargetFarm    TargetFarm
	RequestedRole RequestedRole
}
