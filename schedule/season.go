/*
season.go - Season policy calendar

PURPOSE:
  The charter season runs May 25 through September 30, every year.
  Off-season weekends are the only days whose scheduling requires manager
  approval, so the whole weekend-approval workflow hangs off these two
  predicates.

SEE ALSO:
  - approval.go: NeedsWeekendApproval combines both predicates
  - engine.go:   Off-season gating of weekend weekly schedules
*/
package schedule

import "time"

// Season window boundaries (month/day, year-independent).
const (
	seasonStartMonth = time.May
	seasonStartDay   = 25
	seasonEndMonth   = time.September
	seasonEndDay     = 30
)

// InSeason reports whether the date falls inside the charter season,
// May 25 - September 30 inclusive. Pure function of month and day.
func InSeason(d Date) bool {
	switch m := d.Month(); {
	case m == seasonStartMonth:
		return d.Day() >= seasonStartDay
	case m > seasonStartMonth && m < seasonEndMonth:
		return true
	case m == seasonEndMonth:
		return d.Day() <= seasonEndDay
	default:
		return false
	}
}

// IsWeekend reports whether the weekday is Saturday or Sunday.
func IsWeekend(w time.Weekday) bool {
	return w == time.Saturday || w == time.Sunday
}

// SeasonStatus is the banner shown above the calendar grid.
type SeasonStatus struct {
	InSeason  bool   `json:"in_season"`
	Label     string `json:"label"`
	DateRange string `json:"date_range"`
	ClassName string `json:"class_name"`
}

// CurrentSeasonStatus derives the banner from the evaluation moment.
func CurrentSeasonStatus(now Date) SeasonStatus {
	if InSeason(now) {
		return SeasonStatus{
			InSeason:  true,
			Label:     "ON SEASON",
			DateRange: "May 25 - September 30",
			ClassName: "season-on",
		}
	}
	return SeasonStatus{
		InSeason:  false,
		Label:     "OFF SEASON",
		DateRange: "October 1 - May 24",
		ClassName: "season-off",
	}
}
