package report

import (
	"context"
	"time"
)

// ReportRepository is a read-only projection over the timesheet store.
type ReportRepository interface {
	TimesheetSummary(ctx context.Context, start, end time.Time, department *string) ([]EmployeeSummary, error)
}
