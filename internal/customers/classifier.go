package customers

import (
	"time"

	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

const (
	activeMaxDays  = 14
	warmingMaxDays = 30
)

// Classify derives the lifecycle status from the last purchase date. Day
// counting is calendar based: a purchase late yesterday is one day old no
// matter the current hour. A customer with no purchases is inactive.
func Classify(lastOrderAt *time.Time, now time.Time) enums.CustomerStatus {
	if lastOrderAt == nil {
		return enums.CustomerStatusInactive
	}

	days := daysBetween(*lastOrderAt, now)
	if days < 0 {
		days = 0
	}

	switch {
	case days <= activeMaxDays:
		return enums.CustomerStatusActive
	case days <= warmingMaxDays:
		return enums.CustomerStatusWarming
	default:
		return enums.CustomerStatusInactive
	}
}

func daysBetween(from, to time.Time) int {
	a := startOfDay(from.In(to.Location()))
	b := startOfDay(to)
	return int(b.Sub(a).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
