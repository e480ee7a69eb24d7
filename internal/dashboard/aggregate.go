package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

// MealCount is one row of the top-meals ranking. Rows are keyed by the
// resolved meal name, so two catalog entries sharing a name merge.
type MealCount struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// OrderStats is the pure fold over a window of orders.
type OrderStats struct {
	Revenue     decimal.Decimal         `json:"revenue"`
	OrdersCount int                     `json:"orders_count"`
	AvgTicket   decimal.Decimal         `json:"avg_ticket"`
	ByType      map[enums.OrderType]int `json:"by_type"`
	PackRatio   int                     `json:"pack_ratio"`
	TopMeals    []MealCount             `json:"top_meals"`
}

const topMealsLimit = 5

// Aggregate folds a slice of orders into the dashboard numbers. It never
// touches the database: callers pass the window they already fetched.
func Aggregate(orders []models.Order) OrderStats {
	stats := OrderStats{
		Revenue:   decimal.Zero,
		AvgTicket: decimal.Zero,
		ByType:    map[enums.OrderType]int{},
	}

	packCount := 0
	var mealOrder []string
	mealTotals := map[string]int{}

	for _, order := range orders {
		stats.OrdersCount++
		stats.Revenue = stats.Revenue.Add(order.Total)
		stats.ByType[order.OrderType]++
		if order.OrderType.IsPack() {
			packCount++
		}

		for _, item := range order.Items {
			if item.Meal == nil {
				// meal deleted after the fact, nothing to rank
				continue
			}
			name := item.Meal.Name
			if _, ok := mealTotals[name]; !ok {
				mealOrder = append(mealOrder, name)
			}
			mealTotals[name] += item.Qty
		}
	}

	if stats.OrdersCount > 0 {
		count := decimal.NewFromInt(int64(stats.OrdersCount))
		stats.AvgTicket = stats.Revenue.Div(count).Round(2)
		stats.PackRatio = roundedPercent(packCount, stats.OrdersCount)
	}

	// first-seen order breaks qty ties, so the ranking is deterministic
	ranked := make([]MealCount, 0, len(mealOrder))
	for _, name := range mealOrder {
		ranked = append(ranked, MealCount{Name: name, Qty: mealTotals[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Qty > ranked[j].Qty
	})
	if len(ranked) > topMealsLimit {
		ranked = ranked[:topMealsLimit]
	}
	stats.TopMeals = ranked

	return stats
}

func roundedPercent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(part * 100)).
		Div(decimal.NewFromInt(int64(whole))).
		Round(0).IntPart())
}

// WindowStart returns the inclusive lower bound for the requested period in
// the location of now: midnight today, the most recent Monday, or the first
// of the month.
func WindowStart(period enums.Period, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case enums.PeriodWeek:
		offset := (int(today.Weekday()) + 6) % 7
		return today.AddDate(0, 0, -offset)
	case enums.PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return today
	}
}
