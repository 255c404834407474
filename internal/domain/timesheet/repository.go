package timesheet

import (
	"context"
	"time"
)

// TimesheetRepository defines data access methods for timesheets.
type TimesheetRepository interface {
	// Create inserts a new timesheet. Returns ErrTimesheetAlreadyExists when
	// a row for (employee_id, date) is already present; the unique constraint
	// in the store is what closes the concurrent check-then-insert race.
	Create(ctx context.Context, ts Timesheet) (Timesheet, error)

	// GetByID retrieves a timesheet with the employee name and department
	// joined in from the directory.
	GetByID(ctx context.Context, id string) (Timesheet, error)

	// GetByIDForUpdate retrieves a timesheet holding a row lock. Must be
	// called inside a transaction; mutations to a single timesheet are
	// serialized on this lock.
	GetByIDForUpdate(ctx context.Context, id string) (Timesheet, error)

	// UpdateComputed writes the recomputed hour/pay fields, status and notes
	// after an adjustment.
	UpdateComputed(ctx context.Context, ts Timesheet) error

	// UpdateStatus moves the given ids to status, stamping the approver.
	// updateMany semantics: rows already in the target status still count.
	// A non-nil note overwrites the notes field.
	UpdateStatus(ctx context.Context, ids []string, status Status, approvedBy string, approvedAt time.Time, notes *string) (int64, error)

	// List retrieves timesheets with filters and pagination.
	List(ctx context.Context, filter TimesheetFilter) ([]Timesheet, int64, error)
}

// AdjustmentRepository defines data access for the hour adjustment audit log.
// Insert is the only mutation; the log is append-only.
type AdjustmentRepository interface {
	Insert(ctx context.Context, adj HourAdjustment) (HourAdjustment, error)

	// ListByTimesheet returns adjustments newest-first, at most limit rows.
	ListByTimesheet(ctx context.Context, timesheetID string, limit int) ([]HourAdjustment, error)

	// ListByEmployee returns adjustments across an employee's timesheets,
	// newest-first, at most limit rows.
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]HourAdjustment, error)
}
