package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/report"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

// TimesheetSummary implements report.ReportRepository.
func (r *reportRepository) TimesheetSummary(ctx context.Context, start, end time.Time, department *string) ([]report.EmployeeSummary, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "t.date >= $1 AND t.date <= $2"
	args := []interface{}{start, end}
	if department != nil && *department != "" {
		baseWhere += " AND e.department = $3"
		args = append(args, *department)
	}

	query := fmt.Sprintf(`
		SELECT
			t.employee_id,
			COALESCE(e.full_name, ''),
			COALESCE(e.department, ''),
			COALESCE(SUM(t.hours_worked), 0),
			COALESCE(SUM(t.regular_hours), 0),
			COALESCE(SUM(t.overtime_hours), 0),
			COALESCE(SUM(t.total_pay), 0),
			COUNT(*) FILTER (WHERE t.status = 'pending'),
			COUNT(*) FILTER (WHERE t.status = 'approved'),
			COUNT(*) FILTER (WHERE t.status = 'rejected')
		FROM timesheets t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE %s
		GROUP BY t.employee_id, e.full_name, e.department
		ORDER BY e.full_name
	`, baseWhere)

	var summaries []report.EmployeeSummary
	err := retryRead(ctx, func() error {
		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		summaries = summaries[:0]
		for rows.Next() {
			var s report.EmployeeSummary
			if err := rows.Scan(
				&s.EmployeeID, &s.EmployeeName, &s.Department,
				&s.TotalHours, &s.RegularHours, &s.OvertimeHours, &s.TotalPay,
				&s.PendingCount, &s.ApprovedCount, &s.RejectedCount,
			); err != nil {
				return err
			}
			summaries = append(summaries, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheet summary: %w", err)
	}

	return summaries, nil
}
