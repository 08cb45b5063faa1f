package planner

import "time"

// Window selects one of the two batch-cook spans of the week. The
// household shops and batch-cooks twice a week; every (day, meal type)
// slot belongs to exactly one window.
type Window string

const (
	// WindowWed covers Wednesday dinner through Sunday lunch.
	WindowWed Window = "wed"
	// WindowSun covers Sunday dinner through Wednesday lunch.
	WindowSun Window = "sun"
)

// WeekStart returns the Monday of the week containing t, truncated to a
// date in t's location.
func WeekStart(t time.Time) time.Time {
	d := DateOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// DateOf strips the time-of-day component.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isWedBatch reports whether a (date, meal type) slot belongs to the
// Wednesday batch cook: Wednesday dinner through Sunday lunch
// inclusive. Everything else belongs to the Sunday batch.
func isWedBatch(date time.Time, mealType string) bool {
	switch date.Weekday() {
	case time.Wednesday:
		return mealType == "dinner"
	case time.Thursday, time.Friday, time.Saturday:
		return true
	case time.Sunday:
		return mealType == "breakfast" || mealType == "lunch"
	}
	return false
}

// InWindow reports whether the (date, meal type) slot falls inside the
// given window. The two windows are complements, so for every slot
// exactly one window matches.
func InWindow(date time.Time, mealType string, window Window) bool {
	if window == WindowWed {
		return isWedBatch(date, mealType)
	}
	return !isWedBatch(date, mealType)
}
