package enums

import (
	"fmt"
	"strings"
)

// Period selects the dashboard aggregation window.
type Period string

const (
	// PeriodToday starts at local midnight.
	PeriodToday Period = "today"
	// PeriodWeek starts on the most recent Monday.
	PeriodWeek Period = "week"
	// PeriodMonth starts on the first of the current month.
	PeriodMonth Period = "month"
)

func (p Period) IsValid() bool {
	switch p {
	case PeriodToday, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

func ParsePeriod(value string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(value)))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid period %q", value)
	}
	return p, nil
}
