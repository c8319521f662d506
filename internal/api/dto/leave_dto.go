package dto

import (
	"time"

	"github.com/spec-kit/leave-service/internal/domain"
)

// DateFormat is the wire format for leave dates.
const DateFormat = "2006-01-02"

// CreateLeaveRequest payload.
type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// SetLeaveStatusRequest payload for the decision endpoint.
type SetLeaveStatusRequest struct {
	Status string `json:"status"`
}

// LeaveOwnerResponse is the owner identity nested in admin listings.
type LeaveOwnerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LeaveResponse represents a leave request.
type LeaveResponse struct {
	ID        string              `json:"id"`
	OwnerID   string              `json:"owner_id"`
	LeaveType string              `json:"leave_type"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Reason    string              `json:"reason"`
	Status    domain.LeaveStatus  `json:"status"`
	DecidedBy *string             `json:"decided_by,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	Owner     *LeaveOwnerResponse `json:"owner,omitempty"`
}

// LeaveHistoryResponse is one audit entry on the detail view.
type LeaveHistoryResponse struct {
	ID        string             `json:"id"`
	ChangedBy string             `json:"changed_by"`
	OldStatus domain.LeaveStatus `json:"old_status"`
	NewStatus domain.LeaveStatus `json:"new_status"`
	CreatedAt time.Time          `json:"created_at"`
}

// LeaveDetailResponse is a leave request with its decision history.
type LeaveDetailResponse struct {
	LeaveResponse
	History []LeaveHistoryResponse `json:"history"`
}
