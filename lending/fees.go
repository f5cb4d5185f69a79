package lending

import (
	"math"
	"strings"
	"time"

	"github.com/openshelf/biblio/catalog"
)

// Fee schedule for overdue returns. The first week is billed at the reduced
// rate, every day after that at the full rate, and no single return can be
// billed more than catalog.MaxLateFee.
const (
	LoanPeriodDays = 14
	FirstWeekRate  = 0.50
	LateRate       = 1.00

	firstTierDays = 7
)

// LateFee computes the overdue fee and whole-day overdue count for a due date
// compared against now. Both sides are reduced to their calendar date first,
// so a book returned any time on or before its due date costs nothing and
// time zones cannot shift the day count.
func LateFee(dueDate, now time.Time) (float64, int) {
	daysOverdue := int(midnightOf(now).Sub(midnightOf(dueDate)).Hours() / 24)
	if daysOverdue <= 0 {
		return 0, 0
	}

	var fee float64
	if daysOverdue <= firstTierDays {
		fee = float64(daysOverdue) * FirstWeekRate
	} else {
		fee = firstTierDays*FirstWeekRate + float64(daysOverdue-firstTierDays)*LateRate
	}
	fee = math.Min(fee, catalog.MaxLateFee)

	return roundCents(fee), daysOverdue
}

// ParseDueDate reads a stored due date. Stored values may carry a time
// component; only the date portion counts, midnight of that day is the
// reference the fee schedule measures from.
func ParseDueDate(stored string) (time.Time, error) {
	datePart := stored
	if i := strings.IndexByte(stored, 'T'); i >= 0 {
		datePart = stored[:i]
	}
	return time.Parse(catalog.DateFormat, datePart)
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// midnightOf drops the time-of-day and zone, keeping the calendar date.
func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
