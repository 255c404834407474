package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepository{db: db}
}

// Create implements timesheet.TimesheetRepository.
func (r *timesheetRepository) Create(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheets (
			employee_id, date, hours_worked, regular_hours, overtime_hours,
			hourly_rate, regular_pay, overtime_pay, total_pay, status, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ts.EmployeeID,
		ts.Date,
		ts.HoursWorked,
		ts.RegularHours,
		ts.OvertimeHours,
		ts.HourlyRate,
		ts.RegularPay,
		ts.OvertimePay,
		ts.TotalPay,
		ts.Status,
		ts.Notes,
	).Scan(&ts.ID, &ts.CreatedAt, &ts.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return timesheet.Timesheet{}, timesheet.ErrTimesheetAlreadyExists
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return ts, nil
}

const timesheetSelectColumns = `
	t.id, t.employee_id, t.date, t.hours_worked, t.regular_hours, t.overtime_hours,
	t.hourly_rate, t.regular_pay, t.overtime_pay, t.total_pay,
	t.status, t.notes, t.approved_by, t.approved_at, t.created_at, t.updated_at,
	e.full_name AS employee_name,
	e.department AS department
`

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	err := row.Scan(
		&ts.ID, &ts.EmployeeID, &ts.Date, &ts.HoursWorked, &ts.RegularHours, &ts.OvertimeHours,
		&ts.HourlyRate, &ts.RegularPay, &ts.OvertimePay, &ts.TotalPay,
		&ts.Status, &ts.Notes, &ts.ApprovedBy, &ts.ApprovedAt, &ts.CreatedAt, &ts.UpdatedAt,
		&ts.EmployeeName, &ts.Department,
	)
	return ts, err
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetSelectColumns + `
		FROM timesheets t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE t.id = $1
	`

	var ts timesheet.Timesheet
	err := retryRead(ctx, func() error {
		var scanErr error
		ts, scanErr = scanTimesheet(q.QueryRow(ctx, query, id))
		return scanErr
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet by ID: %w", err)
	}

	return ts, nil
}

// GetByIDForUpdate implements timesheet.TimesheetRepository.
// Takes a row lock so concurrent adjust/approve on the same id serialize.
func (r *timesheetRepository) GetByIDForUpdate(ctx context.Context, id string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, hours_worked, regular_hours, overtime_hours,
			   hourly_rate, regular_pay, overtime_pay, total_pay,
			   status, notes, approved_by, approved_at, created_at, updated_at
		FROM timesheets
		WHERE id = $1
		FOR UPDATE
	`

	var ts timesheet.Timesheet
	err := q.QueryRow(ctx, query, id).Scan(
		&ts.ID, &ts.EmployeeID, &ts.Date, &ts.HoursWorked, &ts.RegularHours, &ts.OvertimeHours,
		&ts.HourlyRate, &ts.RegularPay, &ts.OvertimePay, &ts.TotalPay,
		&ts.Status, &ts.Notes, &ts.ApprovedBy, &ts.ApprovedAt, &ts.CreatedAt, &ts.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to lock timesheet: %w", err)
	}

	return ts, nil
}

// UpdateComputed implements timesheet.TimesheetRepository.
// Clears the approval stamp along with the demotion to pending.
func (r *timesheetRepository) UpdateComputed(ctx context.Context, ts timesheet.Timesheet) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET hours_worked = $1, regular_hours = $2, overtime_hours = $3,
			regular_pay = $4, overtime_pay = $5, total_pay = $6,
			status = $7, notes = $8, approved_by = NULL, approved_at = NULL,
			updated_at = $9
		WHERE id = $10
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		ts.HoursWorked, ts.RegularHours, ts.OvertimeHours,
		ts.RegularPay, ts.OvertimePay, ts.TotalPay,
		ts.Status, ts.Notes,
		time.Now(),
		ts.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.ErrTimesheetNotFound
		}
		return fmt.Errorf("failed to update timesheet: %w", err)
	}

	return nil
}

// UpdateStatus implements timesheet.TimesheetRepository.
func (r *timesheetRepository) UpdateStatus(ctx context.Context, ids []string, status timesheet.Status, approvedBy string, approvedAt time.Time, notes *string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	args := []interface{}{status, approvedBy, approvedAt}
	setClause := "status = $1, approved_by = $2, approved_at = $3, updated_at = NOW()"
	argIdx := 4

	if notes != nil {
		setClause += fmt.Sprintf(", notes = $%d", argIdx)
		args = append(args, *notes)
		argIdx++
	}

	query := fmt.Sprintf("UPDATE timesheets SET %s WHERE id = ANY($%d)", setClause, argIdx)
	args = append(args, ids)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update timesheet status: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

// List implements timesheet.TimesheetRepository.
func (r *timesheetRepository) List(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND t.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND t.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	// Department lives on the employee directory, joined at read time.
	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND e.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}

	// Count total
	countQuery := `
		SELECT COUNT(*)
		FROM timesheets t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE ` + baseWhere
	var total int64
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, countQuery, args...).Scan(&total)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheets: %w", err)
	}

	// Build ORDER BY
	orderByField := "t.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "status":
		orderByField = "t.status"
	case "total_pay":
		orderByField = "t.total_pay"
	case "hours_worked":
		orderByField = "t.hours_worked"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	// Build query with pagination
	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM timesheets t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, timesheetSelectColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query timesheets: %w", err)
	}
	defer rows.Close()

	var timesheets []timesheet.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		timesheets = append(timesheets, ts)
	}

	return timesheets, total, nil
}
