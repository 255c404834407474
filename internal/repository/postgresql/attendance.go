package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepository{db: db}
}

// ListClosedSessions implements attendance.SessionRepository. Open sessions
// (clock_out IS NULL) are not yet a complete day and are excluded here, not
// filtered later.
func (r *sessionRepository) ListClosedSessions(ctx context.Context, periodStart, periodEnd time.Time) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	// periodEnd is an inclusive calendar date; the upper bound covers the
	// whole final day.
	query := `
		SELECT id, employee_id, clock_in, clock_out, created_at
		FROM attendance_sessions
		WHERE clock_out IS NOT NULL
		  AND clock_in >= $1
		  AND clock_in < $2
		ORDER BY employee_id, clock_in
	`

	var sessions []attendance.Session
	err := retryRead(ctx, func() error {
		rows, err := q.Query(ctx, query, periodStart, periodEnd.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		defer rows.Close()

		sessions = sessions[:0]
		for rows.Next() {
			var s attendance.Session
			if err := rows.Scan(&s.ID, &s.EmployeeID, &s.ClockIn, &s.ClockOut, &s.CreatedAt); err != nil {
				return err
			}
			sessions = append(sessions, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list closed sessions: %w", err)
	}

	return sessions, nil
}

// ListBreaksForSessions implements attendance.SessionRepository.
func (r *sessionRepository) ListBreaksForSessions(ctx context.Context, sessionIDs []string) ([]attendance.BreakInterval, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, session_id, break_start, break_end, kind, created_at
		FROM break_intervals
		WHERE session_id = ANY($1)
		ORDER BY break_start
	`

	var breaks []attendance.BreakInterval
	err := retryRead(ctx, func() error {
		rows, err := q.Query(ctx, query, sessionIDs)
		if err != nil {
			return err
		}
		defer rows.Close()

		breaks = breaks[:0]
		for rows.Next() {
			var b attendance.BreakInterval
			if err := rows.Scan(&b.ID, &b.SessionID, &b.BreakStart, &b.BreakEnd, &b.Kind, &b.CreatedAt); err != nil {
				return err
			}
			breaks = append(breaks, b)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks for sessions: %w", err)
	}

	return breaks, nil
}
