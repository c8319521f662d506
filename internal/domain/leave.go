package domain

import (
	"fmt"
	"strings"
	"time"
)

// LeaveStatus enumerates lifecycle states for leave requests.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// ParseDecision accepts only the two terminal target states.
func ParseDecision(raw string) (LeaveStatus, error) {
	switch LeaveStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case LeaveStatusApproved:
		return LeaveStatusApproved, nil
	case LeaveStatusRejected:
		return LeaveStatusRejected, nil
	default:
		return "", fmt.Errorf("invalid target status %q", raw)
	}
}

// IsTerminal reports whether no further transition is permitted.
func (s LeaveStatus) IsTerminal() bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected
}

// LeaveOwner carries the owner identity joined onto a leave request.
// It is a lookup relation, not a live reference to the User aggregate.
type LeaveOwner struct {
	ID       string
	Username string
}

// LeaveRequest is the aggregate for the leave approval workflow.
// LeaveType, StartDate, EndDate and Reason are immutable after creation;
// Status moves pending -> approved|rejected exactly once.
type LeaveRequest struct {
	ID        string
	OwnerID   string
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Status    LeaveStatus
	DecidedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Owner is populated by owner-joining queries only.
	Owner *LeaveOwner
}
