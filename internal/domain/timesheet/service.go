package timesheet

import "context"

// TimesheetService is the mutation and read surface for the engine.
// Generate, Adjust, BulkAdjust, Approve and Reject require an administrator
// actor; reads require any authenticated actor.
type TimesheetService interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Get(ctx context.Context, id string) (TimesheetResponse, error)
	List(ctx context.Context, filter TimesheetFilter) (ListTimesheetResponse, error)

	Adjust(ctx context.Context, req AdjustRequest) (TimesheetResponse, error)
	BulkAdjust(ctx context.Context, req BulkAdjustRequest) (BulkAdjustResponse, error)

	Approve(ctx context.Context, req ApprovalRequest) (ApprovalResponse, error)
	Reject(ctx context.Context, req ApprovalRequest) (ApprovalResponse, error)

	ListAdjustments(ctx context.Context, timesheetID string, limit int) ([]AdjustmentResponse, error)
	ListAdjustmentsByEmployee(ctx context.Context, employeeID string, limit int) ([]AdjustmentResponse, error)
}
