package followups

import (
	"time"

	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

const (
	upsellDelayDays = 3
	rebuyDelayDays  = 6
)

// Decide maps an order type to the follow-up it should produce. Single meals
// get an upsell nudge toward the packs, packs get a repurchase reminder, and
// custom orders get nothing.
func Decide(orderType enums.OrderType) (enums.FollowupType, int, bool) {
	switch orderType {
	case enums.OrderTypeSingle:
		return enums.FollowupTypeReventaPack, upsellDelayDays, true
	case enums.OrderTypePack5, enums.OrderTypePack10:
		return enums.FollowupTypeRecompra, rebuyDelayDays, true
	default:
		return "", 0, false
	}
}

// DueDate returns the calendar date the task becomes due, ignoring the hour
// the order was placed.
func DueDate(now time.Time, delayDays int) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, delayDays)
}
