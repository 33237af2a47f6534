package dto

import (
	"time"

	supervisionDomain "github.com/allisson/vetdesk/internal/supervision/domain"
)

// RequestResponse represents a supervision request.
type RequestResponse struct {
	ID             string            `json:"id"`
	Applicant      ApplicantRequest  `json:"applicant"`
	TargetFarm     TargetFarmRequest `json:"target_farm"`
	RequestedRole  string            `json:"requested_role"`
	Status         string            `json:"status"`
	SubmittedAt    time.Time         `json:"submitted_at"`
	DecidedAt      *time.Time        `json:"decided_at,omitempty"`
	DecidedBy      string            `json:"decided_by,omitempty"`
	AssignedFarmID string            `json:"assigned_farm_id,omitempty"`
}

// SubmitResponse is returned to the public submitter. It leaves out decision details.
type SubmitResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// MapRequestToResponse converts a domain request to its API representation.
func MapRequestToResponse(request *supervisionDomain.Request) RequestResponse {
	return RequestResponse{
		ID: request.ID.String(),
		Applicant: ApplicantRequest{
			UserID: request.Applicant.UserID,
			Name:   request.Applicant.Name,
			Email:  request.Applicant.Email,
			Phone:  request.Applicant.Phone,
		},
		TargetFarm: TargetFarmRequest{
			FarmID:   request.TargetFarm.FarmID,
			Name:     request.TargetFarm.Name,
			Location: request.TargetFarm.Location,
		},
		RequestedRole:  string(request.RequestedRole),
		Status:         string(request.Status),
		SubmittedAt:    request.SubmittedAt,
		DecidedAt:      request.DecidedAt,
		DecidedBy:      request.DecidedBy,
		AssignedFarmID: request.AssignedFarmID,
	}
}

// MapRequestToSubmitResponse converts a freshly submitted request.
func MapRequestToSubmitResponse(request *supervisionDomain.Request) SubmitResponse {
	return SubmitResponse{
		ID:          request.ID.String(),
		Status:      string(request.Status),
		SubmittedAt: request.SubmittedAt,
	}
}

// ListRequestsResponse represents a page of supervision requests.
type ListRequestsResponse struct {
	Data []RequestResponse `json:"data"`
}

// MapRequestsToListResponse converts domain requests to a list response.
func MapRequestsToListResponse(requests []*supervisionDomain.Request) ListRequestsResponse {
	data := make([]RequestResponse, 0, len(requests))
	for _, request := range requests {
		data = append(data, MapRequestToResponse(request))
	}
	return ListRequestsResponse{Data: data}
}
