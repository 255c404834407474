package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// AdjustmentType enum
type AdjustmentType string

const (
	AdjustmentAdd      AdjustmentType = "add"
	AdjustmentSubtract AdjustmentType = "subtract"
)

// Timesheet - canonical per-employee-per-day record of worked time and
// derived pay. One row per (EmployeeID, Date); the store enforces the
// uniqueness, not the application.
type Timesheet struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	HoursWorked   decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	// HourlyRate is the rate snapshot taken at generation time. Pay is never
	// re-derived from the employee's current rate.
	HourlyRate  decimal.Decimal
	RegularPay  decimal.Decimal
	OvertimePay decimal.Decimal
	TotalPay    decimal.Decimal
	Status      Status
	Notes       string
	ApprovedBy  *string
	ApprovedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
	Department   *string
}

// HourAdjustment - append-only audit record of a manual hour correction.
// Rows are never updated or deleted.
type HourAdjustment struct {
	ID                  int64
	TimesheetID         string
	ActorID             string
	Type                AdjustmentType
	Hours               decimal.Decimal
	Reason              string
	PreviousHoursWorked decimal.Decimal
	NewHoursWorked      decimal.Decimal
	CreatedAt           time.Time
}
