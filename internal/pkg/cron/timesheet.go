package cron

import (
	"context"
	"log/slog"
	"time"
)

// TimesheetGenerator is the slice of the timesheet service the background
// job needs.
type TimesheetGenerator interface {
	GenerateForDate(ctx context.Context, date time.Time) (int, error)
}

type TimesheetJobs struct {
	generator TimesheetGenerator
}

func NewTimesheetJobs(generator TimesheetGenerator) *TimesheetJobs {
	return &TimesheetJobs{generator: generator}
}

func (j *TimesheetJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("generate_daily_timesheets", 1*time.Hour, j.GenerateDailyTimesheets)
}

// GenerateDailyTimesheets creates timesheets for yesterday's closed sessions.
// Re-running is harmless; days already generated are skipped by the store's
// uniqueness constraint.
func (j *TimesheetJobs) GenerateDailyTimesheets(ctx context.Context) error {
	// Only run in the 01:00-01:59 UTC window, after the day has fully closed
	if time.Now().UTC().Hour() != 1 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	yesterday = time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	slog.Info("Cron: Starting daily timesheet generation", "date", yesterday.Format("2006-01-02"))

	count, err := j.generator.GenerateForDate(ctx, yesterday)
	if err != nil {
		return err
	}

	slog.Info("Cron: Daily timesheet generation finished",
		"date", yesterday.Format("2006-01-02"), "created", count)
	return nil
}
