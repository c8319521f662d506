package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/leave-service/internal/domain"
)

// LeaveRepository encapsulates leave request persistence.
//
// UpdateStatusIfPending is the compare-and-set primitive for the decision
// step: the write applies only while the stored status is still pending, so
// two concurrent deciders cannot both succeed on the same record.
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	ListAll(ctx context.Context) ([]domain.LeaveRequest, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.LeaveRequest, error)
	UpdateStatusIfPending(ctx context.Context, id string, target domain.LeaveStatus, decidedBy string) (*domain.LeaveRequest, error)
}

type leaveRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveRepository instantiates the repository.
func NewLeaveRepository(pool *pgxpool.Pool) LeaveRepository {
	return &leaveRepository{pool: pool}
}

func (r *leaveRepository) Create(ctx context.Context, leave *domain.LeaveRequest) error {
	const query = `
        INSERT INTO leave_requests (owner_id, leave_type, start_date, end_date, reason, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		leave.OwnerID,
		leave.LeaveType,
		leave.StartDate,
		leave.EndDate,
		leave.Reason,
		leave.Status,
	).Scan(&leave.ID, &leave.CreatedAt, &leave.UpdatedAt)
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	const query = `
        SELECT id, owner_id, leave_type, start_date, end_date, reason, status, decided_by, created_at, updated_at
        FROM leave_requests WHERE id=$1`

	var leave domain.LeaveRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&leave.ID,
		&leave.OwnerID,
		&leave.LeaveType,
		&leave.StartDate,
		&leave.EndDate,
		&leave.Reason,
		&leave.Status,
		&leave.DecidedBy,
		&leave.CreatedAt,
		&leave.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &leave, nil
}

// ListAll returns every leave request with the owner identity joined in,
// in insertion order.
func (r *leaveRepository) ListAll(ctx context.Context) ([]domain.LeaveRequest, error) {
	const query = `
        SELECT l.id, l.owner_id, l.leave_type, l.start_date, l.end_date, l.reason, l.status, l.decided_by,
               l.created_at, l.updated_at, u.id, u.username
        FROM leave_requests l
        JOIN users u ON u.id = l.owner_id
        ORDER BY l.created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LeaveRequest
	for rows.Next() {
		var leave domain.LeaveRequest
		var owner domain.LeaveOwner
		if err := rows.Scan(
			&leave.ID,
			&leave.OwnerID,
			&leave.LeaveType,
			&leave.StartDate,
			&leave.EndDate,
			&leave.Reason,
			&leave.Status,
			&leave.DecidedBy,
			&leave.CreatedAt,
			&leave.UpdatedAt,
			&owner.ID,
			&owner.Username,
		); err != nil {
			return nil, err
		}
		leave.Owner = &owner
		result = append(result, leave)
	}
	return result, rows.Err()
}

func (r *leaveRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.LeaveRequest, error) {
	const query = `
        SELECT id, owner_id, leave_type, start_date, end_date, reason, status, decided_by, created_at, updated_at
        FROM leave_requests WHERE owner_id=$1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

// UpdateStatusIfPending applies the decision only if the record is still
// pending. Returns pgx.ErrNoRows when the record is absent or already
// decided; the caller disambiguates.
func (r *leaveRepository) UpdateStatusIfPending(ctx context.Context, id string, target domain.LeaveStatus, decidedBy string) (*domain.LeaveRequest, error) {
	const query = `
        UPDATE leave_requests SET status=$1, decided_by=$2, updated_at=NOW()
        WHERE id=$3 AND status=$4
        RETURNING id, owner_id, leave_type, start_date, end_date, reason, status, decided_by, created_at, updated_at`

	var leave domain.LeaveRequest
	if err := r.pool.QueryRow(ctx, query, target, decidedBy, id, domain.LeaveStatusPending).Scan(
		&leave.ID,
		&leave.OwnerID,
		&leave.LeaveType,
		&leave.StartDate,
		&leave.EndDate,
		&leave.Reason,
		&leave.Status,
		&leave.DecidedBy,
		&leave.CreatedAt,
		&leave.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &leave, nil
}

func scanLeaves(rows pgx.Rows) ([]domain.LeaveRequest, error) {
	var result []domain.LeaveRequest
	for rows.Next() {
		var leave domain.LeaveRequest
		if err := rows.Scan(
			&leave.ID,
			&leave.OwnerID,
			&leave.LeaveType,
			&leave.StartDate,
			&leave.EndDate,
			&leave.Reason,
			&leave.Status,
			&leave.DecidedBy,
			&leave.CreatedAt,
			&leave.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, leave)
	}
	return result, rows.Err()
}
