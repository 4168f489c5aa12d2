/*
approval.go - Weekend-work approval derivation

PURPOSE:
  A weekly schedule row needs manager approval when it schedules work on
  a weekend while the current moment is off-season. The approval status
  is recomputed wholesale every time the schedule is saved, per
  day-of-week, as an explicit rule table.

  KNOWN BEHAVIOR: because the recomputation does not distinguish
  re-save from first-save, saving a schedule again while the
  needs-approval condition still holds resets a previously approved (or
  denied) day back to pending. That reversion is preserved here on
  purpose; DeriveApprovalState makes it a visible, tested transition
  instead of an emergent side effect.

SEE ALSO:
  - service.go: SaveWeeklySchedule applies this on every upsert
  - engine.go:  How the resulting status gates the working determination
*/
package schedule

import "time"

// NeedsWeekendApproval reports whether saving (day, isWorkingDay) right
// now requires manager approval: the day is a weekend AND the current
// moment is off-season AND the day is marked working.
func NeedsWeekendApproval(day time.Weekday, isWorkingDay bool, now Date) bool {
	return IsWeekend(day) && !InSeason(now) && isWorkingDay
}

// DeriveApprovalState recomputes the approval status on save.
//
// Rule table:
//
//	needsApproval == false -> not_required   (any prior state)
//	needsApproval == true  -> pending        (any prior state)
//
// The previous state is accepted so the reversion is explicit at every
// call site, but it never influences the result: prior approvals and
// denials are overwritten.
func DeriveApprovalState(_ ApprovalStatus, needsApproval bool) ApprovalStatus {
	if !needsApproval {
		return ApprovalNotRequired
	}
	return ApprovalPending
}
