/*
snapshot.go - Keyed snapshot of the schedule data set

PURPOSE:
  The engine always evaluates against a full snapshot fetched from the
  store, never against live queries. This file indexes the three row sets
  by their natural composite keys so the reconciliation loop - which runs
  once per staff member per visible day - does O(1) lookups instead of
  linear scans:

    weekly:    (user_id, day_of_week) -> row
    overrides: (user_id, date)        -> row
    time off:  user_id                -> rows

  The maps mirror the store's unique constraints: at most one weekly row
  per (user, weekday) and one override per (user, date).

SEE ALSO:
  - engine.go: Consumes these lookups
  - store.go:  Where the row sets come from
*/
package schedule

import "time"

type weeklyKey struct {
	UserID string
	Day    time.Weekday
}

type overrideKey struct {
	UserID string
	Day    string // Date.String(), comparable
}

// Snapshot holds one fetched, immutable view of the schedule data set.
type Snapshot struct {
	weekly      map[weeklyKey]*WeeklySchedule
	weeklyByDay map[time.Weekday][]*WeeklySchedule
	overrides   map[overrideKey]*ScheduleOverride
	timeOff     map[string][]*TimeOffRequest
	allTimeOff  []*TimeOffRequest
	allOverride []*ScheduleOverride
}

// NewSnapshot indexes the row sets. Later duplicates on a composite key
// replace earlier ones, matching the store's last-writer-wins upserts.
func NewSnapshot(weekly []WeeklySchedule, overrides []ScheduleOverride, requests []TimeOffRequest) *Snapshot {
	s := &Snapshot{
		weekly:      make(map[weeklyKey]*WeeklySchedule, len(weekly)),
		weeklyByDay: make(map[time.Weekday][]*WeeklySchedule),
		overrides:   make(map[overrideKey]*ScheduleOverride, len(overrides)),
		timeOff:     make(map[string][]*TimeOffRequest),
	}
	for i := range weekly {
		row := &weekly[i]
		s.weekly[weeklyKey{row.UserID, row.DayOfWeek}] = row
		s.weeklyByDay[row.DayOfWeek] = append(s.weeklyByDay[row.DayOfWeek], row)
	}
	for i := range overrides {
		row := &overrides[i]
		s.overrides[overrideKey{row.UserID, row.Date.String()}] = row
		s.allOverride = append(s.allOverride, row)
	}
	for i := range requests {
		row := &requests[i]
		s.timeOff[row.UserID] = append(s.timeOff[row.UserID], row)
		s.allTimeOff = append(s.allTimeOff, row)
	}
	return s
}

// WeeklyFor returns the weekly schedule row for (user, weekday).
func (s *Snapshot) WeeklyFor(userID string, day time.Weekday) (*WeeklySchedule, bool) {
	row, ok := s.weekly[weeklyKey{userID, day}]
	return row, ok
}

// WeeklyOnWeekday returns every staff member's row for a weekday.
func (s *Snapshot) WeeklyOnWeekday(day time.Weekday) []*WeeklySchedule {
	return s.weeklyByDay[day]
}

// OverrideFor returns the override row for (user, date).
func (s *Snapshot) OverrideFor(userID string, d Date) (*ScheduleOverride, bool) {
	row, ok := s.overrides[overrideKey{userID, d.String()}]
	return row, ok
}

// Overrides returns every override in the snapshot.
func (s *Snapshot) Overrides() []*ScheduleOverride { return s.allOverride }

// TimeOffFor returns all of a user's requests, any status.
func (s *Snapshot) TimeOffFor(userID string) []*TimeOffRequest {
	return s.timeOff[userID]
}

// TimeOffRequests returns every request in the snapshot.
func (s *Snapshot) TimeOffRequests() []*TimeOffRequest { return s.allTimeOff }

// ApprovedFullDayOff returns the approved full-day request covering
// (user, date), if one exists.
func (s *Snapshot) ApprovedFullDayOff(userID string, d Date) (*TimeOffRequest, bool) {
	for _, r := range s.timeOff[userID] {
		if r.Status == TimeOffApproved && !r.IsPartialDay && r.Covers(d) {
			return r, true
		}
	}
	return nil, false
}

// ApprovedPartialDayOff returns the approved partial-day request covering
// (user, date), if one exists. Partial requests are single-day by
// construction, so Covers reduces to an equality check.
func (s *Snapshot) ApprovedPartialDayOff(userID string, d Date) (*TimeOffRequest, bool) {
	for _, r := range s.timeOff[userID] {
		if r.Status == TimeOffApproved && r.IsPartialDay && r.Covers(d) {
			return r, true
		}
	}
	return nil, false
}

// RequestsOn returns every request, any user and status, covering d.
func (s *Snapshot) RequestsOn(d Date) []*TimeOffRequest {
	var out []*TimeOffRequest
	for _, r := range s.allTimeOff {
		if r.Covers(d) {
			out = append(out, r)
		}
	}
	return out
}
