package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/leave-service/internal/auth"
	"github.com/spec-kit/leave-service/internal/domain"
	"github.com/spec-kit/leave-service/internal/events"
	"github.com/spec-kit/leave-service/internal/repository"
	apperrors "github.com/spec-kit/leave-service/pkg/util"
)

// LeaveService governs the leave request lifecycle.
type LeaveService struct {
	leaves     repository.LeaveRepository
	history    repository.LeaveHistoryRepository
	dispatcher events.Dispatcher
}

// LeaveDependencies bundles repositories for the leave service.
type LeaveDependencies struct {
	LeaveRepo   repository.LeaveRepository
	HistoryRepo repository.LeaveHistoryRepository
	Dispatcher  events.Dispatcher
}

// LeaveCreateInput describes leave creation payload.
type LeaveCreateInput struct {
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// NewLeaveService constructs the service.
func NewLeaveService(deps LeaveDependencies) *LeaveService {
	return &LeaveService{
		leaves:     deps.LeaveRepo,
		history:    deps.HistoryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create files a new leave request owned by the caller, always pending.
// Date ordering is not validated; the stored record reflects caller input.
func (s *LeaveService) Create(ctx context.Context, actor *domain.User, input LeaveCreateInput) (*domain.LeaveRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if strings.TrimSpace(input.LeaveType) == "" || strings.TrimSpace(input.Reason) == "" {
		return nil, apperrors.NewValidationError("leave_type and reason required", nil)
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, apperrors.NewValidationError("start_date and end_date required", nil)
	}

	leave := &domain.LeaveRequest{
		OwnerID:   actor.ID,
		LeaveType: strings.TrimSpace(input.LeaveType),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Reason:    strings.TrimSpace(input.Reason),
		Status:    domain.LeaveStatusPending,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventLeaveRequested,
		LeaveID: leave.ID,
		ActorID: actor.ID,
		Payload: events.LeaveRequestedPayload{
			OwnerID:   leave.OwnerID,
			LeaveType: leave.LeaveType,
			StartDate: leave.StartDate,
			EndDate:   leave.EndDate,
		},
	})
	return leave, nil
}

// ListAll returns every leave request with owner identity. Admin only; the
// role check runs before any storage access.
func (s *LeaveService) ListAll(ctx context.Context, actor *domain.User) ([]domain.LeaveRequest, error) {
	if err := auth.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	leaves, err := s.leaves.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leaves, nil
}

// ListMine returns the caller's own leave requests.
func (s *LeaveService) ListMine(ctx context.Context, actor *domain.User) ([]domain.LeaveRequest, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	leaves, err := s.leaves.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leaves, nil
}

// Get fetches one leave request; readable by the owner or an admin.
func (s *LeaveService) Get(ctx context.Context, actor *domain.User, leaveID string) (*domain.LeaveRequest, []domain.LeaveHistory, error) {
	if actor == nil {
		return nil, nil, apperrors.NewUnauthorized("authentication required")
	}
	leave, err := s.leaves.GetByID(ctx, leaveID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("leave request", map[string]any{"id": leaveID})
		}
		return nil, nil, apperrors.MapError(err)
	}
	if leave.OwnerID != actor.ID && !actor.IsAdmin() {
		return nil, nil, apperrors.NewForbidden("access denied")
	}
	if s.history == nil {
		return leave, []domain.LeaveHistory{}, nil
	}
	history, err := s.history.ListByLeave(ctx, leave.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return leave, history, nil
}

// Decide moves a pending request to approved or rejected. Admin only. The
// status check and write are a single conditional update at the repository,
// so of two concurrent decisions on one record exactly one succeeds.
func (s *LeaveService) Decide(ctx context.Context, actor *domain.User, leaveID string, target domain.LeaveStatus) (*domain.LeaveRequest, error) {
	if err := auth.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if !target.IsTerminal() {
		return nil, apperrors.NewValidationError("target status must be approved or rejected", map[string]any{"status": target})
	}

	leave, err := s.leaves.UpdateStatusIfPending(ctx, leaveID, target, actor.ID)
	if err != nil {
		if err != pgx.ErrNoRows {
			return nil, apperrors.MapError(err)
		}
		// Zero rows: absent record or a decision already landed.
		existing, lookupErr := s.leaves.GetByID(ctx, leaveID)
		if lookupErr != nil {
			if lookupErr == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("leave request", map[string]any{"id": leaveID})
			}
			return nil, apperrors.MapError(lookupErr)
		}
		return nil, apperrors.NewInvalidTransition("leave request already decided", map[string]any{
			"id":     leaveID,
			"status": existing.Status,
		})
	}

	if s.history != nil {
		entry := &domain.LeaveHistory{
			LeaveID:   leave.ID,
			ChangedBy: actor.ID,
			OldStatus: domain.LeaveStatusPending,
			NewStatus: leave.Status,
		}
		if err := s.history.Create(ctx, entry); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventLeaveDecided,
		LeaveID: leave.ID,
		ActorID: actor.ID,
		Payload: events.LeaveDecidedPayload{
			OwnerID:   leave.OwnerID,
			OldStatus: domain.LeaveStatusPending,
			NewStatus: leave.Status,
		},
	})
	return leave, nil
}

func (s *LeaveService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
