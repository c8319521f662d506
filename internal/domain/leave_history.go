package domain

import "time"

// LeaveHistory is an immutable audit entry for a status decision.
type LeaveHistory struct {
	ID        string
	LeaveID   string
	ChangedBy string
	OldStatus LeaveStatus
	NewStatus LeaveStatus
	CreatedAt time.Time
}
