package dto

import (
	"time"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
)

// AssigneeResponse represents an occupied slot.
type AssigneeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	AssignedAt time.Time `json:"assigned_at"`
}

// AssignmentResponse represents the slots of a farm. Empty slots are null.
type AssignmentResponse struct {
	FarmID     string            `json:"farm_id"`
	Vet        *AssigneeResponse `json:"vet"`
	Supervisor *AssigneeResponse `json:"supervisor"`
	UpdatedAt  *time.Time        `json:"updated_at,omitempty"`
}

func mapAssignee(assignee *assignmentDomain.Assignee) *AssigneeResponse {
	if assignee == nil {
		return nil
	}
	return &AssigneeResponse{
		ID:         assignee.ID,
		Name:       assignee.Name,
		Phone:      assignee.Phone,
		AssignedAt: assignee.AssignedAt,
	}
}

// MapAssignmentToResponse converts a domain assignment to its API representation.
func MapAssignmentToResponse(assignment *assignmentDomain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		FarmID:     assignment.FarmID,
		Vet:        mapAssignee(assignment.Vet),
		Supervisor: mapAssignee(assignment.Supervisor),
		UpdatedAt:  assignment.UpdatedAt,
	}
}

// CandidateResponse represents a candidate pool entry.
type CandidateResponse struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ListCandidatesResponse represents a page of candidates.
type ListCandidatesResponse struct {
	Data []CandidateResponse `json:"data"`
}

// MapCandidatesToListResponse converts domain candidates to a list response.
func MapCandidatesToListResponse(candidates []*assignmentDomain.Candidate) ListCandidatesResponse {
	data := make([]CandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		data = append(data, CandidateResponse{
			ID:    candidate.ID,
			Role:  string(candidate.Role),
			Name:  candidate.Name,
			Phone: candidate.Phone,
		})
	}
	return ListCandidatesResponse{Data: data}
}

// FarmResponse represents a farm.
type FarmResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id,omitempty"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// MapFarmToResponse converts a domain farm to its API representation.
func MapFarmToResponse(farm *assignmentDomain.Farm) FarmResponse {
	return FarmResponse{
		ID:        farm.ID,
		OwnerID:   farm.OwnerID,
		Name:      farm.Name,
		Location:  farm.Location,
		CreatedAt: farm.CreatedAt,
	}
}

// ListFarmsResponse represents a page of farms.
type ListFarmsResponse struct {
	Data []FarmResponse `json:"data"`
}

// MapFarmsToListResponse converts domain farms to a list response.
func MapFarmsToListResponse(farms []*assignmentDomain.Farm) ListFarmsResponse {
	data := make([]FarmResponse, 0, len(farms))
	for _, farm := range farms {
		data = append(data, MapFarmToResponse(farm))
	}
	return ListFarmsResponse{Data: data}
}
