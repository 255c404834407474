package attendance

import (
	"context"
	"time"
)

// SessionRepository is the read boundary to the attendance source.
type SessionRepository interface {
	// ListClosedSessions returns sessions with a non-null clock-out whose
	// clock-in falls on a calendar day within [periodStart, periodEnd].
	ListClosedSessions(ctx context.Context, periodStart, periodEnd time.Time) ([]Session, error)

	// ListBreaksForSessions returns all break intervals belonging to the
	// given sessions, open breaks included.
	ListBreaksForSessions(ctx context.Context, sessionIDs []string) ([]BreakInterval, error)
}
