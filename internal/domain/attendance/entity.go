package attendance

import (
	"time"
)

// BreakKind enum
type BreakKind string

const (
	BreakKindStandard BreakKind = "standard"
	BreakKindShort    BreakKind = "short"
)

// Session is a clock-in/out record produced by the attendance capture
// surface. Read-only to the timesheet engine; a session with a nil ClockOut
// is still open and not yet part of any timesheet.
type Session struct {
	ID         string
	EmployeeID string
	ClockIn    time.Time
	ClockOut   *time.Time
	CreatedAt  time.Time
}

// BreakInterval is a break taken inside a session. A nil BreakEnd means the
// break is still open and contributes no deduction.
type BreakInterval struct {
	ID         string
	SessionID  string
	BreakStart time.Time
	BreakEnd   *time.Time
	Kind       BreakKind
	CreatedAt  time.Time
}

// Minutes returns the closed duration of the break in whole minutes, zero
// while the break is open.
func (b BreakInterval) Minutes() int {
	if b.BreakEnd == nil {
		return 0
	}
	return int(b.BreakEnd.Sub(b.BreakStart).Minutes())
}
