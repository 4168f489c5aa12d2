/*
stats.go - Per-employee annual time-off aggregation

PURPOSE:
  Replays a year's time-off requests and overrides into per-employee
  totals for reporting:

    approved:  day-equivalents of approved requests, +1 per
               approved_day_off override
    sick:      count of sick_leave overrides, unit days
    requested: day-equivalents of still-pending requests

  Day-equivalent unit: 1.0 per full inclusive day, hours/8 for
  partial-day requests. decimal keeps the fractions exact.

SEE ALSO:
  - snapshot.go: The replayed inputs
*/
package schedule

import "github.com/shopspring/decimal"

var hoursPerDay = decimal.NewFromInt(8)

// StaffStats are one employee's totals for a year.
type StaffStats struct {
	ApprovedDays    decimal.Decimal
	SickDays        int
	RequestedDays   decimal.Decimal
	ApprovedByType  map[TimeOffType]decimal.Decimal
	RequestedByType map[TimeOffType]decimal.Decimal
}

// CalculateDaysBetween returns the inclusive calendar-day count of a
// full-day span: Mar 1 - Mar 3 counts 3 days.
func CalculateDaysBetween(start, end Date) int {
	return DaysBetween(start, end) + 1
}

// DayEquivalent is the reporting unit for one request: the inclusive
// day count for full-day spans, hours/8 for partial-day requests.
func DayEquivalent(r *TimeOffRequest) decimal.Decimal {
	if r.IsPartialDay {
		return r.HoursTaken.Div(hoursPerDay)
	}
	return decimal.NewFromInt(int64(CalculateDaysBetween(r.StartDate, r.EndDate)))
}

// ComputeStaffStats aggregates a year's snapshot for the roster.
// Requests are attributed to the year their span starts in; overrides to
// the year of their date.
func ComputeStaffStats(year int, roster []StaffProfile, snap *Snapshot) map[string]StaffStats {
	stats := make(map[string]StaffStats, len(roster))
	for _, staff := range roster {
		s := StaffStats{
			ApprovedDays:    decimal.Zero,
			RequestedDays:   decimal.Zero,
			ApprovedByType:  make(map[TimeOffType]decimal.Decimal),
			RequestedByType: make(map[TimeOffType]decimal.Decimal),
		}

		for _, r := range snap.TimeOffFor(staff.ID) {
			if r.StartDate.Year() != year {
				continue
			}
			eq := DayEquivalent(r)
			switch r.Status {
			case TimeOffApproved:
				s.ApprovedDays = s.ApprovedDays.Add(eq)
				s.ApprovedByType[r.Type] = s.ApprovedByType[r.Type].Add(eq)
			case TimeOffPending:
				s.RequestedDays = s.RequestedDays.Add(eq)
				s.RequestedByType[r.Type] = s.RequestedByType[r.Type].Add(eq)
			}
		}

		for _, ov := range snap.Overrides() {
			if ov.UserID != staff.ID || ov.Date.Year() != year {
				continue
			}
			switch ov.Status {
			case OverrideApprovedDayOff:
				s.ApprovedDays = s.ApprovedDays.Add(decimal.NewFromInt(1))
			case OverrideSickLeave:
				s.SickDays++
			}
		}

		stats[staff.ID] = s
	}
	return stats
}
