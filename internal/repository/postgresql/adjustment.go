package postgresql

import (
	"context"
	"fmt"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
)

type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) timesheet.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

// Insert implements timesheet.AdjustmentRepository. The audit log is
// append-only; there is no update or delete statement in this repository.
func (r *adjustmentRepository) Insert(ctx context.Context, adj timesheet.HourAdjustment) (timesheet.HourAdjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO hour_adjustments (
			timesheet_id, actor_id, adjustment_type, hours, reason,
			previous_hours_worked, new_hours_worked
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		adj.TimesheetID,
		adj.ActorID,
		adj.Type,
		adj.Hours,
		adj.Reason,
		adj.PreviousHoursWorked,
		adj.NewHoursWorked,
	).Scan(&adj.ID, &adj.CreatedAt)

	if err != nil {
		return timesheet.HourAdjustment{}, fmt.Errorf("failed to insert hour adjustment: %w", err)
	}

	return adj, nil
}

const adjustmentSelectColumns = `
	a.id, a.timesheet_id, a.actor_id, a.adjustment_type, a.hours, a.reason,
	a.previous_hours_worked, a.new_hours_worked, a.created_at
`

// ListByTimesheet implements timesheet.AdjustmentRepository.
func (r *adjustmentRepository) ListByTimesheet(ctx context.Context, timesheetID string, limit int) ([]timesheet.HourAdjustment, error) {
	query := `
		SELECT ` + adjustmentSelectColumns + `
		FROM hour_adjustments a
		WHERE a.timesheet_id = $1
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $2
	`
	return r.list(ctx, query, timesheetID, limit)
}

// ListByEmployee implements timesheet.AdjustmentRepository.
func (r *adjustmentRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]timesheet.HourAdjustment, error) {
	query := `
		SELECT ` + adjustmentSelectColumns + `
		FROM hour_adjustments a
		JOIN timesheets t ON t.id = a.timesheet_id
		WHERE t.employee_id = $1
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $2
	`
	return r.list(ctx, query, employeeID, limit)
}

func (r *adjustmentRepository) list(ctx context.Context, query string, id string, limit int) ([]timesheet.HourAdjustment, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 {
		limit = 50
	}

	var adjustments []timesheet.HourAdjustment
	err := retryRead(ctx, func() error {
		rows, err := q.Query(ctx, query, id, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		adjustments = adjustments[:0]
		for rows.Next() {
			var adj timesheet.HourAdjustment
			if err := rows.Scan(
				&adj.ID, &adj.TimesheetID, &adj.ActorID, &adj.Type, &adj.Hours, &adj.Reason,
				&adj.PreviousHoursWorked, &adj.NewHoursWorked, &adj.CreatedAt,
			); err != nil {
				return err
			}
			adjustments = append(adjustments, adj)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list hour adjustments: %w", err)
	}

	return adjustments, nil
}
