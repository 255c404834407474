package timesheet

import "errors"

var (
	ErrTimesheetNotFound      = errors.New("timesheet not found")
	ErrTimesheetAlreadyExists = errors.New("timesheet already exists for this employee and date")
)
