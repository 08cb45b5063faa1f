package planner

import (
	"context"
	"sort"
	"time"
)

// PersonTotals is one rounded per-person row of a summary.
type PersonTotals struct {
	Person  string  `json:"person"`
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// WeekSummary is the full report the automation layer reads.
type WeekSummary struct {
	TodayCost   float64        `json:"today_cost"`
	TodayTotals []PersonTotals `json:"today_totals"`
	WeekCost    float64        `json:"week_cost"`
	WeekTotals  []PersonTotals `json:"week_totals"`
	WedShopping []ShoppingItem `json:"wed_shopping"`
	SunShopping []ShoppingItem `json:"sun_shopping"`
	WeekStart   string         `json:"week_start"`
	LastUpdated string         `json:"last_updated"`
}

const dateLayout = "2006-01-02"

// WeekSummary assembles the complete report for the week starting at
// weekStart. "Today" is always the calendar date at call time, even
// when it lies outside the summarized week: the report answers "what's
// due today" alongside "what does this week look like".
func (e *Engine) WeekSummary(ctx context.Context, weekStart time.Time) (*WeekSummary, error) {
	weekStart = DateOf(weekStart)
	today := DateOf(e.now())

	todayTotals, err := e.DailyTotals(ctx, today)
	if err != nil {
		return nil, err
	}
	weekTotals, err := e.WeeklyTotals(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	todayCost, err := e.DailyCost(ctx, today)
	if err != nil {
		return nil, err
	}
	weekCost, err := e.WeeklyCost(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	wedShopping, err := e.ShoppingList(ctx, weekStart, WindowWed)
	if err != nil {
		return nil, err
	}
	sunShopping, err := e.ShoppingList(ctx, weekStart, WindowSun)
	if err != nil {
		return nil, err
	}

	return &WeekSummary{
		TodayCost:   todayCost,
		TodayTotals: roundTotals(todayTotals),
		WeekCost:    weekCost,
		WeekTotals:  roundTotals(weekTotals),
		WedShopping: wedShopping,
		SunShopping: sunShopping,
		WeekStart:   weekStart.Format(dateLayout),
		LastUpdated: today.Format(dateLayout),
	}, nil
}

// CurrentWeekSummary summarizes the week containing today.
func (e *Engine) CurrentWeekSummary(ctx context.Context) (*WeekSummary, error) {
	return e.WeekSummary(ctx, WeekStart(e.now()))
}

// roundTotals converts the accumulator map to sorted presentation rows:
// kcal to whole units, macros to 1 decimal place.
func roundTotals(totals map[string]Totals) []PersonTotals {
	rows := make([]PersonTotals, 0, len(totals))
	for name, t := range totals {
		rows = append(rows, PersonTotals{
			Person:  name,
			Kcal:    round0(t.Kcal),
			Protein: round1(t.Protein),
			Carbs:   round1(t.Carbs),
			Fat:     round1(t.Fat),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Person < rows[j].Person
	})
	return rows
}
