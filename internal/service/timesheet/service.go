package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/timesheet"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/user"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// bulkWorkers bounds the fan-out of bulk operations. Each id is an
// independent unit of work; there is no ordering guarantee across ids.
const bulkWorkers = 4

type TimesheetServiceImpl struct {
	tx             database.TxRunner
	timesheetRepo  timesheet.TimesheetRepository
	adjustmentRepo timesheet.AdjustmentRepository
	sessionRepo    attendance.SessionRepository
	employeeRepo   employee.EmployeeRepository
	calc           *Calculator
	now            func() time.Time
}

func NewTimesheetService(
	tx database.TxRunner,
	timesheetRepo timesheet.TimesheetRepository,
	adjustmentRepo timesheet.AdjustmentRepository,
	sessionRepo attendance.SessionRepository,
	employeeRepo employee.EmployeeRepository,
	calc *Calculator,
) *TimesheetServiceImpl {
	return &TimesheetServiceImpl{
		tx:             tx,
		timesheetRepo:  timesheetRepo,
		adjustmentRepo: adjustmentRepo,
		sessionRepo:    sessionRepo,
		employeeRepo:   employeeRepo,
		calc:           calc,
		now:            time.Now,
	}
}

// Helper to get the acting user from the JWT context
func getActorFromContext(ctx context.Context) (actorID string, isAdmin bool, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	actorID, ok := claims["user_id"].(string)
	if !ok || actorID == "" {
		return "", false, fmt.Errorf("user_id claim is missing or invalid")
	}

	isAdmin, _ = claims["is_admin"].(bool)

	return actorID, isAdmin, nil
}

// requireAdmin returns the acting admin's id, or a permission error before
// any target resource is touched or revealed.
func requireAdmin(ctx context.Context) (string, error) {
	actorID, isAdmin, err := getActorFromContext(ctx)
	if err != nil {
		return "", err
	}
	if !isAdmin {
		return "", user.ErrAdminPrivilegeRequired
	}
	return actorID, nil
}

// ========== GENERATION ==========

// dayGroup is one (employee, calendar day) worth of closed sessions.
type dayGroup struct {
	employeeID     string
	date           time.Time
	sessionMinutes int
	breakMinutes   int
}

func (s *TimesheetServiceImpl) Generate(ctx context.Context, req timesheet.GenerateRequest) (timesheet.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.GenerateResponse{}, err
	}

	if _, err := requireAdmin(ctx); err != nil {
		return timesheet.GenerateResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	return s.generateRange(ctx, periodStart, periodEnd)
}

// GenerateForDate runs generation for a single day without an acting user.
// Used by the background job.
func (s *TimesheetServiceImpl) GenerateForDate(ctx context.Context, date time.Time) (int, error) {
	resp, err := s.generateRange(ctx, date, date)
	if err != nil {
		return 0, err
	}
	return resp.CreatedCount, nil
}

func (s *TimesheetServiceImpl) generateRange(ctx context.Context, periodStart, periodEnd time.Time) (timesheet.GenerateResponse, error) {
	sessions, err := s.sessionRepo.ListClosedSessions(ctx, periodStart, periodEnd)
	if err != nil {
		return timesheet.GenerateResponse{}, fmt.Errorf("failed to fetch closed sessions: %w", err)
	}
	if len(sessions) == 0 {
		return timesheet.GenerateResponse{Created: []timesheet.TimesheetResponse{}}, nil
	}

	sessionIDs := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		sessionIDs = append(sessionIDs, sess.ID)
	}
	breaks, err := s.sessionRepo.ListBreaksForSessions(ctx, sessionIDs)
	if err != nil {
		return timesheet.GenerateResponse{}, fmt.Errorf("failed to fetch break intervals: %w", err)
	}
	breaksBySession := make(map[string][]attendance.BreakInterval)
	for _, b := range breaks {
		breaksBySession[b.SessionID] = append(breaksBySession[b.SessionID], b)
	}

	// Group sessions by (employee, calendar day of clock-in). Split shifts
	// land in the same group and contribute to the same entry.
	groups := make(map[string]*dayGroup)
	order := make([]string, 0)
	for _, sess := range sessions {
		// Calendar days are UTC; the driver may hand timestamps back in the
		// server's local zone.
		clockIn := sess.ClockIn.UTC()
		day := time.Date(clockIn.Year(), clockIn.Month(), clockIn.Day(), 0, 0, 0, 0, time.UTC)
		key := sess.EmployeeID + "|" + day.Format("2006-01-02")

		g, ok := groups[key]
		if !ok {
			g = &dayGroup{employeeID: sess.EmployeeID, date: day}
			groups[key] = g
			order = append(order, key)
		}
		g.sessionMinutes += int(sess.ClockOut.Sub(sess.ClockIn).Minutes())
		for _, b := range breaksBySession[sess.ID] {
			g.breakMinutes += b.Minutes()
		}
	}

	// Rate snapshots, one directory lookup per employee per run.
	rates := make(map[string]rateLookup)

	created := make([]timesheet.TimesheetResponse, 0, len(groups))
	for _, key := range order {
		g := groups[key]

		rate, ok := rates[g.employeeID]
		if !ok {
			r, err := s.employeeRepo.GetHourlyRate(ctx, g.employeeID)
			rate = rateLookup{rate: r, err: err}
			rates[g.employeeID] = rate
		}
		if rate.err != nil {
			// A failure on one group must not abort the run.
			slog.Warn("timesheet generation: skipping group",
				"employee_id", g.employeeID, "date", g.date.Format("2006-01-02"), "error", rate.err)
			continue
		}

		netMinutes := g.sessionMinutes - g.breakMinutes
		if netMinutes < 0 {
			netMinutes = 0
		}
		breakdown := s.calc.FromMinutes(netMinutes, rate.rate)

		ts := timesheet.Timesheet{
			EmployeeID:    g.employeeID,
			Date:          g.date,
			HoursWorked:   breakdown.HoursWorked,
			RegularHours:  breakdown.RegularHours,
			OvertimeHours: breakdown.OvertimeHours,
			HourlyRate:    rate.rate,
			RegularPay:    breakdown.RegularPay,
			OvertimePay:   breakdown.OvertimePay,
			TotalPay:      breakdown.TotalPay,
			Status:        timesheet.StatusPending,
		}

		inserted, err := s.timesheetRepo.Create(ctx, ts)
		if err != nil {
			if errors.Is(err, timesheet.ErrTimesheetAlreadyExists) {
				// Already generated, possibly by a concurrent run. The store's
				// uniqueness constraint is the arbiter; skip without error.
				continue
			}
			slog.Warn("timesheet generation: failed to create entry",
				"employee_id", g.employeeID, "date", g.date.Format("2006-01-02"), "error", err)
			continue
		}
		created = append(created, mapToResponse(inserted))
	}

	return timesheet.GenerateResponse{
		CreatedCount: len(created),
		Created:      created,
	}, nil
}

type rateLookup struct {
	rate decimal.Decimal
	err  error
}

// ========== ADJUSTMENT ==========

func (s *TimesheetServiceImpl) Adjust(ctx context.Context, req timesheet.AdjustRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	actorID, err := requireAdmin(ctx)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	if err := s.adjustOne(ctx, req.TimesheetID, req, actorID); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	return s.Get(ctx, req.TimesheetID)
}

// adjustOne applies a single adjustment atomically: the row lock serializes
// concurrent mutations of the same timesheet, and the audit insert commits
// together with the timesheet update or not at all.
func (s *TimesheetServiceImpl) adjustOne(ctx context.Context, id string, req timesheet.AdjustRequest, actorID string) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ts, err := s.timesheetRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		previousHours := ts.HoursWorked
		delta := req.Hours
		if req.Type == string(timesheet.AdjustmentSubtract) {
			delta = delta.Neg()
		}

		// Recompute from the stored rate snapshot. Hours never go negative.
		breakdown := s.calc.FromHours(previousHours.Add(delta), ts.HourlyRate)

		ts.HoursWorked = breakdown.HoursWorked
		ts.RegularHours = breakdown.RegularHours
		ts.OvertimeHours = breakdown.OvertimeHours
		ts.RegularPay = breakdown.RegularPay
		ts.OvertimePay = breakdown.OvertimePay
		ts.TotalPay = breakdown.TotalPay
		// Any manual change invalidates a prior approval and re-enters review.
		ts.Status = timesheet.StatusPending
		ts.ApprovedBy = nil
		ts.ApprovedAt = nil
		ts.Notes = appendNote(ts.Notes, req.Reason, actorID, s.now())

		adj := timesheet.HourAdjustment{
			TimesheetID:         ts.ID,
			ActorID:             actorID,
			Type:                timesheet.AdjustmentType(req.Type),
			Hours:               req.Hours,
			Reason:              req.Reason,
			PreviousHoursWorked: previousHours,
			NewHoursWorked:      breakdown.HoursWorked,
		}
		if _, err := s.adjustmentRepo.Insert(txCtx, adj); err != nil {
			return fmt.Errorf("failed to write adjustment audit record: %w", err)
		}

		return s.timesheetRepo.UpdateComputed(txCtx, ts)
	})
}

func (s *TimesheetServiceImpl) BulkAdjust(ctx context.Context, req timesheet.BulkAdjustRequest) (timesheet.BulkAdjustResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.BulkAdjustResponse{}, err
	}

	actorID, err := requireAdmin(ctx)
	if err != nil {
		return timesheet.BulkAdjustResponse{}, err
	}

	single := timesheet.AdjustRequest{Type: req.Type, Hours: req.Hours, Reason: req.Reason}

	// Each id is its own saga: validate, mutate, audit. A failure on one id
	// is reported and does not stop the rest.
	var mu sync.Mutex
	result := timesheet.BulkAdjustResponse{
		Succeeded: []string{},
		Failed:    []timesheet.BulkAdjustFailure{},
	}

	g := new(errgroup.Group)
	g.SetLimit(bulkWorkers)
	for _, id := range req.TimesheetIDs {
		g.Go(func() error {
			err := s.adjustOne(ctx, id, single, actorID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, timesheet.BulkAdjustFailure{ID: id, Error: err.Error()})
			} else {
				result.Succeeded = append(result.Succeeded, id)
			}
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

// appendNote appends a timestamped marker to the notes log. Prior text is
// preserved, never overwritten.
func appendNote(notes, reason, actorID string, at time.Time) string {
	entry := fmt.Sprintf("[%s] adjusted by %s: %s", at.UTC().Format("2006-01-02 15:04"), actorID, reason)
	if notes == "" {
		return entry
	}
	return notes + "\n" + entry
}

// ========== APPROVAL ==========

func (s *TimesheetServiceImpl) Approve(ctx context.Context, req timesheet.ApprovalRequest) (timesheet.ApprovalResponse, error) {
	return s.setStatus(ctx, req, timesheet.StatusApproved)
}

func (s *TimesheetServiceImpl) Reject(ctx context.Context, req timesheet.ApprovalRequest) (timesheet.ApprovalResponse, error) {
	return s.setStatus(ctx, req, timesheet.StatusRejected)
}

func (s *TimesheetServiceImpl) setStatus(ctx context.Context, req timesheet.ApprovalRequest, status timesheet.Status) (timesheet.ApprovalResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ApprovalResponse{}, err
	}

	actorID, err := requireAdmin(ctx)
	if err != nil {
		return timesheet.ApprovalResponse{}, err
	}

	// updateMany semantics: ids already in the target status still count,
	// redundant transitions are not errors.
	count, err := s.timesheetRepo.UpdateStatus(ctx, req.TimesheetIDs, status, actorID, s.now(), req.Notes)
	if err != nil {
		return timesheet.ApprovalResponse{}, err
	}

	return timesheet.ApprovalResponse{Count: count}, nil
}

// ========== READS ==========

func (s *TimesheetServiceImpl) Get(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	ts, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return mapToResponse(ts), nil
}

func (s *TimesheetServiceImpl) List(ctx context.Context, filter timesheet.TimesheetFilter) (timesheet.ListTimesheetResponse, error) {
	timesheets, totalCount, err := s.timesheetRepo.List(ctx, filter)
	if err != nil {
		return timesheet.ListTimesheetResponse{}, err
	}

	data := make([]timesheet.TimesheetResponse, 0, len(timesheets))
	for _, ts := range timesheets {
		data = append(data, mapToResponse(ts))
	}

	return timesheet.ListTimesheetResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *TimesheetServiceImpl) ListAdjustments(ctx context.Context, timesheetID string, limit int) ([]timesheet.AdjustmentResponse, error) {
	// Confirm the timesheet exists so an unknown id is a 404, not an empty
	// list.
	if _, err := s.timesheetRepo.GetByID(ctx, timesheetID); err != nil {
		return nil, err
	}

	adjustments, err := s.adjustmentRepo.ListByTimesheet(ctx, timesheetID, limit)
	if err != nil {
		return nil, err
	}

	return mapAdjustments(adjustments), nil
}

// ListAdjustmentsByEmployee returns the adjustment history across all of an
// employee's timesheets, newest-first.
func (s *TimesheetServiceImpl) ListAdjustmentsByEmployee(ctx context.Context, employeeID string, limit int) ([]timesheet.AdjustmentResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	adjustments, err := s.adjustmentRepo.ListByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, err
	}

	return mapAdjustments(adjustments), nil
}

func mapAdjustments(adjustments []timesheet.HourAdjustment) []timesheet.AdjustmentResponse {
	result := make([]timesheet.AdjustmentResponse, 0, len(adjustments))
	for _, adj := range adjustments {
		result = append(result, timesheet.AdjustmentResponse{
			ID:                  adj.ID,
			TimesheetID:         adj.TimesheetID,
			ActorID:             adj.ActorID,
			Type:                string(adj.Type),
			Hours:               adj.Hours,
			Reason:              adj.Reason,
			PreviousHoursWorked: adj.PreviousHoursWorked,
			NewHoursWorked:      adj.NewHoursWorked,
			CreatedAt:           adj.CreatedAt.Format(time.RFC3339),
		})
	}
	return result
}

// ========== HELPERS ==========

func mapToResponse(ts timesheet.Timesheet) timesheet.TimesheetResponse {
	var approvedAtStr *string
	if ts.ApprovedAt != nil {
		str := ts.ApprovedAt.Format(time.RFC3339)
		approvedAtStr = &str
	}

	return timesheet.TimesheetResponse{
		ID:            ts.ID,
		EmployeeID:    ts.EmployeeID,
		EmployeeName:  ts.EmployeeName,
		Department:    ts.Department,
		Date:          ts.Date.Format("2006-01-02"),
		HoursWorked:   ts.HoursWorked,
		RegularHours:  ts.RegularHours,
		OvertimeHours: ts.OvertimeHours,
		HourlyRate:    ts.HourlyRate,
		RegularPay:    ts.RegularPay,
		OvertimePay:   ts.OvertimePay,
		TotalPay:      ts.TotalPay,
		Status:        string(ts.Status),
		Notes:         ts.Notes,
		ApprovedBy:    ts.ApprovedBy,
		ApprovedAt:    approvedAtStr,
	}
}
