package timesheet

import (
	"errors"

	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATION DTOs ==========

type GenerateRequest struct {
	PeriodStart string `json:"period_start"` // "YYYY-MM-DD"
	PeriodEnd   string `json:"period_end"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateResponse struct {
	CreatedCount int                 `json:"created_count"`
	Created      []TimesheetResponse `json:"created"`
}

// ========== ADJUSTMENT DTOs ==========

type AdjustRequest struct {
	TimesheetID string          `json:"-"`
	Type        string          `json:"type"` // "add" or "subtract"
	Hours       decimal.Decimal `json:"hours"`
	Reason      string          `json:"reason"`
}

func (r *AdjustRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, []string{string(AdjustmentAdd), string(AdjustmentSubtract)}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'add' or 'subtract'"})
	}
	if !r.Hours.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "hours", Message: "must be greater than zero"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkAdjustRequest struct {
	TimesheetIDs []string        `json:"timesheet_ids"`
	Type         string          `json:"type"`
	Hours        decimal.Decimal `json:"hours"`
	Reason       string          `json:"reason"`
}

func (r *BulkAdjustRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.TimesheetIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "timesheet_ids", Message: "at least one timesheet is required"})
	}
	single := AdjustRequest{Type: r.Type, Hours: r.Hours, Reason: r.Reason}
	if err := single.Validate(); err != nil {
		var singleErrs validator.ValidationErrors
		if errors.As(err, &singleErrs) {
			errs = append(errs, singleErrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkAdjustFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type BulkAdjustResponse struct {
	Succeeded []string            `json:"succeeded"`
	Failed    []BulkAdjustFailure `json:"failed"`
}

// ========== APPROVAL DTOs ==========

type ApprovalRequest struct {
	TimesheetIDs []string `json:"timesheet_ids"`
	Notes        *string  `json:"notes,omitempty"`
}

func (r *ApprovalRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.TimesheetIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "timesheet_ids", Message: "at least one timesheet is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApprovalResponse struct {
	Count int64 `json:"count"`
}

// ========== READ DTOs ==========

type TimesheetResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	Department    *string         `json:"department,omitempty"`
	Date          string          `json:"date"`
	HoursWorked   decimal.Decimal `json:"hours_worked"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	RegularPay    decimal.Decimal `json:"regular_pay"`
	OvertimePay   decimal.Decimal `json:"overtime_pay"`
	TotalPay      decimal.Decimal `json:"total_pay"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	ApprovedBy    *string         `json:"approved_by,omitempty"`
	ApprovedAt    *string         `json:"approved_at,omitempty"`
}

type AdjustmentResponse struct {
	ID                  int64           `json:"id"`
	TimesheetID         string          `json:"timesheet_id"`
	ActorID             string          `json:"actor_id"`
	Type                string          `json:"type"`
	Hours               decimal.Decimal `json:"hours"`
	Reason              string          `json:"reason"`
	PreviousHoursWorked decimal.Decimal `json:"previous_hours_worked"`
	NewHoursWorked      decimal.Decimal `json:"new_hours_worked"`
	CreatedAt           string          `json:"created_at"`
}

type TimesheetFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Department *string `json:"department,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	SortBy     string  `json:"sort_by"`
	SortOrder  string  `json:"sort_order"`
}

type ListTimesheetResponse struct {
	Data       []TimesheetResponse `json:"data"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}
