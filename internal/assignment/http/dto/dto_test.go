package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
)

func TestAssignSlotRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AssignSlotRequest
		wantErr bool
	}{
		{name: "candidate only", req: AssignSlotRequest{CandidateID: "v1"}},
		{name: "with contact", req: AssignSlotRequest{CandidateID: "v1", Name: "Dr. A", Phone: "+1 555-0100"}},
		{name: "missing candidate", req: AssignSlotRequest{Name: "Dr. A"}, wantErr: true},
		{name: "blank candidate", req: AssignSlotRequest{CandidateID: "   "}, wantErr: true},
		{name: "short phone", req: AssignSlotRequest{CandidateID: "v1", Name: "Dr. A", Phone: "+100"}},
		{name: "free-form phone", req: AssignSlotRequest{CandidateID: "v1", Phone: "(011) 9999-0000"}},
		{name: "phone too long", req: AssignSlotRequest{CandidateID: "v1", Phone: strings.Repeat("9", 256)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssignSlotRequest_Normalize(t *testing.T) {
	req := AssignSlotRequest{CandidateID: " v1 ", Name: " Dr. A", Phone: "+100 "}
	req.Normalize()
	assert.Equal(t, AssignSlotRequest{CandidateID: "v1", Name: "Dr. A", Phone: "+100"}, req)
}

func TestMapAssignmentToResponse(t *testing.T) {
	assignedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	assignment := assignmentDomain.NewAssignment("f-1")
	assignment.Vet = &assignmentDomain.Assignee{ID: "v1", Name: "Dr. A", Phone: "+100", AssignedAt: assignedAt}

	response := MapAssignmentToResponse(assignment)

	assert.Equal(t, "f-1", response.FarmID)
	require.NotNil(t, response.Vet)
	assert.Equal(t, "v1", response.Vet.ID)
	assert.Equal(t, assignedAt, response.Vet.AssignedAt)
	assert.Nil(t, response.Supervisor)
}

func TestMapCandidatesToListResponse_Empty(t *testing.T) {
	response := MapCandidatesToListResponse(nil)
	assert.NotNil(t, response.Data)
	assert.Empty(t, response.Data)
}
