package report

import (
	"time"

	"focolog/service"
)

const (
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

// Since returns the start of a rolling period ending at now. An empty
// period means month.
func Since(period string, now time.Time) (time.Time, error) {
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonth, "":
		return now.AddDate(0, -1, 0), nil
	case PeriodQuarter:
		return now.AddDate(0, -3, 0), nil
	case PeriodYear:
		return now.AddDate(-1, 0, 0), nil
	}
	return time.Time{}, service.Invalid("period", "must be one of week, month, quarter, year")
}
