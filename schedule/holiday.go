/*
holiday.go - US federal holiday table

PURPOSE:
  Computes the 11 US federal holidays for a given year from three rule
  shapes: fixed dates, Nth-weekday-of-month, and last-weekday-of-month.

  Holidays that land on a weekend are NOT shifted to an observed weekday;
  the calendar displays them on their actual date.

SEE ALSO:
  - engine.go: Holiday is the highest-priority day color
*/
package schedule

import "time"

// Holiday is a named federal holiday on a specific date.
type Holiday struct {
	Date Date
	Name string
}

// FederalHolidays returns the 11 US federal holidays for a year, in
// calendar order.
func FederalHolidays(year int) []Holiday {
	return []Holiday{
		{NewDate(year, time.January, 1), "New Year's Day"},
		{nthWeekday(year, time.January, time.Monday, 3), "Martin Luther King Jr. Day"},
		{nthWeekday(year, time.February, time.Monday, 3), "Presidents' Day"},
		{lastWeekday(year, time.May, time.Monday), "Memorial Day"},
		{NewDate(year, time.June, 19), "Juneteenth"},
		{NewDate(year, time.July, 4), "Independence Day"},
		{nthWeekday(year, time.September, time.Monday, 1), "Labor Day"},
		{nthWeekday(year, time.October, time.Monday, 2), "Columbus Day"},
		{NewDate(year, time.November, 11), "Veterans Day"},
		{nthWeekday(year, time.November, time.Thursday, 4), "Thanksgiving Day"},
		{NewDate(year, time.December, 25), "Christmas Day"},
	}
}

// HolidayOn returns the holiday falling on d, if any.
func HolidayOn(d Date) (Holiday, bool) {
	for _, h := range FederalHolidays(d.Year()) {
		if h.Date.Equal(d) {
			return h, true
		}
	}
	return Holiday{}, false
}

// nthWeekday finds the Nth occurrence of a weekday in a month: locate the
// first occurrence, then add (n-1) weeks.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) Date {
	d := NewDate(year, month, 1)
	for d.Weekday() != weekday {
		d = d.AddDays(1)
	}
	return d.AddDays((n - 1) * 7)
}

// lastWeekday finds the last occurrence of a weekday in a month: start at
// the last day and walk back.
func lastWeekday(year int, month time.Month, weekday time.Weekday) Date {
	_, d := MonthRange(year, month)
	for d.Weekday() != weekday {
		d = d.AddDays(-1)
	}
	return d
}
