package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/leave-service/internal/domain"
)

// LeaveHistoryRepository stores decision audit entries.
type LeaveHistoryRepository interface {
	Create(ctx context.Context, entry *domain.LeaveHistory) error
	ListByLeave(ctx context.Context, leaveID string) ([]domain.LeaveHistory, error)
}

type leaveHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveHistoryRepository builds repository.
func NewLeaveHistoryRepository(pool *pgxpool.Pool) LeaveHistoryRepository {
	return &leaveHistoryRepository{pool: pool}
}

func (r *leaveHistoryRepository) Create(ctx context.Context, entry *domain.LeaveHistory) error {
	const query = `
        INSERT INTO leave_history (leave_id, changed_by, old_status, new_status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.LeaveID,
		entry.ChangedBy,
		entry.OldStatus,
		entry.NewStatus,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *leaveHistoryRepository) ListByLeave(ctx context.Context, leaveID string) ([]domain.LeaveHistory, error) {
	const query = `
        SELECT id, leave_id, changed_by, old_status, new_status, created_at
        FROM leave_history WHERE leave_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, leaveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LeaveHistory
	for rows.Next() {
		var entry domain.LeaveHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.LeaveID,
			&entry.ChangedBy,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
