/*
engine.go - Per-day reconciliation engine

PURPOSE:
  For a given date and staff roster, decides which staff are working,
  which are off, attaches partial-day annotations, and classifies the
  calendar cell with a color. The precedence order is fixed:

    1. Approved full-day time off      -> not working (always wins)
    2. Override: sick / approved off   -> not working
    3. Override: working               -> working (beats weekly schedule)
    4. Weekly schedule fallthrough:
       - no row / not a working day    -> not working
       - date before row creation      -> not working (not retroactive)
       - date outside evaluation year  -> not working (year-scoping rule)
       - off-season weekend            -> gated on approval status
       - otherwise                     -> working

  "Off" is a separate, looser predicate than "not working": a staff
  member with no schedule at all is neither working nor off, while one
  with an approved day-off override is off even on an unscheduled day.

EVALUATION CONTEXT:
  EvaluationYear, Now, and ViewerID are explicit engine fields rather
  than ambient state. Two consequences worth knowing:
  - A weekly row only projects into the calendar's displayed year. The
    same row viewed in another year's calendar shows as not working.
  - The off-season gate for weekend work uses Now (the viewing moment),
    not the evaluated date.

SEE ALSO:
  - snapshot.go: The indexed inputs
  - approval.go: How weekend approval status gets onto the rows
*/
package schedule

import "time"

// DayColor classifies a calendar cell. Priority order is fixed; the
// first matching rule wins.
type DayColor string

const (
	ColorHoliday         DayColor = "blue"    // federal holiday
	ColorApprovedOff     DayColor = "green"   // approved time off that day
	ColorPendingRequest  DayColor = "amber"   // pending time-off request
	ColorRejectedRequest DayColor = "red"     // rejected time-off request
	ColorWeekendPending  DayColor = "purple"  // off-season weekend shift awaiting approval
	ColorWeekendApproved DayColor = "emerald" // off-season weekend shift approved
	ColorWorking         DayColor = "teal"    // staff scheduled working
	ColorNone            DayColor = "gray"
)

// Engine evaluates a snapshot. Zero-cost to construct per request.
type Engine struct {
	// EvaluationYear is the calendar's currently displayed year. Weekly
	// schedules do not project outside it.
	EvaluationYear int

	// Now is the evaluation moment, used for the season gate.
	Now Date

	// ViewerID is the authenticated user; a denied weekend shift is
	// still shown as working to its own requester.
	ViewerID string
}

// PartialDayInfo annotates a working staff member whose approved
// time off covers only part of the day.
type PartialDayInfo struct {
	UserID string
	Note   string // e.g. "Off 9:00 AM-12:00 PM"
}

// DayClassification is the engine's per-day output for the calendar grid.
type DayClassification struct {
	Date         Date
	Color        DayColor
	Holiday      *Holiday
	WorkingStaff []string
	OffStaff     []string
	PartialDay   []PartialDayInfo
}

// IsWorking decides whether one staff member works on one date.
// Rules are evaluated in precedence order; first match wins.
func (e Engine) IsWorking(userID string, d Date, snap *Snapshot) bool {
	if _, ok := snap.ApprovedFullDayOff(userID, d); ok {
		return false
	}

	if ov, ok := snap.OverrideFor(userID, d); ok {
		switch ov.Status {
		case OverrideSickLeave, OverrideApprovedDayOff:
			return false
		case OverrideWorking:
			return true
		}
	}

	ws, ok := snap.WeeklyFor(userID, d.Weekday())
	if !ok || !ws.IsWorkingDay {
		return false
	}
	// Schedules are not retroactive: creation timestamp normalized to
	// midnight bounds the first effective date.
	if d.Before(DateOf(ws.CreatedAt)) {
		return false
	}
	// A schedule only projects into the displayed year.
	if d.Year() != e.EvaluationYear {
		return false
	}

	if IsWeekend(d.Weekday()) && !InSeason(e.Now) {
		switch ws.ApprovalStatus {
		case ApprovalApproved:
			return true
		case ApprovalDenied:
			// The requester still sees their own denied shift.
			return e.ViewerID == ws.UserID
		default:
			return false
		}
	}

	return true
}

// IsOff reports whether the staff member is explicitly off that day:
// an approved full-day request covers it, or an off/sick override
// exists. Independent of the weekly-schedule fallthrough, so "off"
// badges appear even on days with no regular schedule.
func (e Engine) IsOff(userID string, d Date, snap *Snapshot) bool {
	if _, ok := snap.ApprovedFullDayOff(userID, d); ok {
		return true
	}
	if ov, ok := snap.OverrideFor(userID, d); ok {
		return ov.Status == OverrideSickLeave || ov.Status == OverrideApprovedDayOff
	}
	return false
}

// PartialDayNote returns the "Off {start}-{end}" annotation when an
// approved partial-day request covers (user, date). Partial-day time
// off never flips the full-day working determination.
func (e Engine) PartialDayNote(userID string, d Date, snap *Snapshot) (string, bool) {
	r, ok := snap.ApprovedPartialDayOff(userID, d)
	if !ok || r.StartTime == "" || r.EndTime == "" {
		return "", false
	}
	return "Off " + FormatClock12(r.StartTime) + "-" + FormatClock12(r.EndTime), true
}

// ClassifyDate produces the full per-day output for the roster.
func (e Engine) ClassifyDate(d Date, roster []StaffProfile, snap *Snapshot) DayClassification {
	out := DayClassification{Date: d, Color: ColorNone}

	if h, ok := HolidayOn(d); ok {
		hh := h
		out.Holiday = &hh
	}

	for _, staff := range roster {
		if e.IsWorking(staff.ID, d, snap) {
			out.WorkingStaff = append(out.WorkingStaff, staff.ID)
			if note, ok := e.PartialDayNote(staff.ID, d, snap); ok {
				out.PartialDay = append(out.PartialDay, PartialDayInfo{UserID: staff.ID, Note: note})
			}
		}
		if e.IsOff(staff.ID, d, snap) {
			out.OffStaff = append(out.OffStaff, staff.ID)
		}
	}

	out.Color = e.colorFor(d, snap, len(out.WorkingStaff) > 0)
	return out
}

// colorFor applies the cell color priority list.
func (e Engine) colorFor(d Date, snap *Snapshot, anyWorking bool) DayColor {
	if _, ok := HolidayOn(d); ok {
		return ColorHoliday
	}

	var hasPending, hasRejected bool
	for _, r := range snap.RequestsOn(d) {
		switch r.Status {
		case TimeOffApproved:
			return ColorApprovedOff
		case TimeOffPending:
			hasPending = true
		case TimeOffRejected:
			hasRejected = true
		}
	}
	if hasPending {
		return ColorPendingRequest
	}
	if hasRejected {
		return ColorRejectedRequest
	}

	if IsWeekend(d.Weekday()) && !InSeason(e.Now) {
		var hasApproved bool
		for _, ws := range snap.WeeklyOnWeekday(d.Weekday()) {
			if !ws.IsWorkingDay {
				continue
			}
			switch ws.ApprovalStatus {
			case ApprovalPending:
				return ColorWeekendPending
			case ApprovalApproved:
				hasApproved = true
			}
		}
		if hasApproved {
			return ColorWeekendApproved
		}
	}

	if anyWorking {
		return ColorWorking
	}
	return ColorNone
}

// ClassifyMonth evaluates every day of a month. The month grid is the
// presentation shell's main consumer.
func (e Engine) ClassifyMonth(year int, month int, roster []StaffProfile, snap *Snapshot) []DayClassification {
	start, end := MonthRange(year, time.Month(month))
	var days []DayClassification
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		days = append(days, e.ClassifyDate(d, roster, snap))
	}
	return days
}
