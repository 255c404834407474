package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetHourlyRate returns the employee's current hourly rate. Called at
	// generation time only; the returned value is snapshotted onto the
	// timesheet and never re-fetched.
	GetHourlyRate(ctx context.Context, id string) (decimal.Decimal, error)
}
