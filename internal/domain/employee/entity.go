package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the hosted slice of the employee directory: the fields the
// engine needs at generation time (current hourly rate) and at the read
// boundary (name, department).
type Employee struct {
	ID         string
	FullName   string
	Email      string
	Department string
	HourlyRate decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
