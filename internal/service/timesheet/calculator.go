package timesheet

import (
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// Calculator derives the regular/overtime split and the pay fields from net
// worked time and an hourly rate. All outputs are rounded half-up to two
// decimal places once, at the end of the chain, never at intermediate steps.
type Calculator struct {
	dailyThreshold     decimal.Decimal // hours per day before overtime starts
	overtimeMultiplier decimal.Decimal
}

func NewCalculator(dailyThresholdHours int, overtimeMultiplier decimal.Decimal) *Calculator {
	return &Calculator{
		dailyThreshold:     decimal.NewFromInt(int64(dailyThresholdHours)),
		overtimeMultiplier: overtimeMultiplier,
	}
}

// PayBreakdown is the full set of derived hour and money fields for one day.
type PayBreakdown struct {
	HoursWorked   decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	RegularPay    decimal.Decimal
	OvertimePay   decimal.Decimal
	TotalPay      decimal.Decimal
}

// FromMinutes computes the breakdown for a day of workedMinutes at rate.
// Negative input is clamped to zero.
func (c *Calculator) FromMinutes(workedMinutes int, rate decimal.Decimal) PayBreakdown {
	if workedMinutes < 0 {
		workedMinutes = 0
	}
	hours := decimal.NewFromInt(int64(workedMinutes)).Div(sixty)
	return c.fromHours(hours, rate)
}

// FromHours recomputes the breakdown for a known hours-worked value, clamping
// negatives to zero. Adjustments use this with the rate snapshot stored on
// the timesheet, never with the employee's current rate.
func (c *Calculator) FromHours(hours decimal.Decimal, rate decimal.Decimal) PayBreakdown {
	if hours.IsNegative() {
		hours = decimal.Zero
	}
	return c.fromHours(hours, rate)
}

func (c *Calculator) fromHours(hours, rate decimal.Decimal) PayBreakdown {
	regular := decimal.Min(hours, c.dailyThreshold)
	overtime := hours.Sub(regular)

	regularPay := regular.Mul(rate)
	overtimePay := overtime.Mul(rate).Mul(c.overtimeMultiplier)

	b := PayBreakdown{
		HoursWorked:   hours.Round(2),
		RegularHours:  regular.Round(2),
		OvertimeHours: overtime.Round(2),
		RegularPay:    regularPay.Round(2),
		OvertimePay:   overtimePay.Round(2),
	}
	// Summing the rounded components keeps total_pay = regular_pay +
	// overtime_pay exact, not just within tolerance.
	b.TotalPay = b.RegularPay.Add(b.OvertimePay)
	return b
}
