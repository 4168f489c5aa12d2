package schedule_test

import (
	"testing"
	"time"

	"github.com/harborline/crew-scheduler/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// Reference dates: January 2024 is off season, July 2024 in season.
// 2024-01-10 and 2024-01-13 are a Wednesday and a Saturday.
var (
	offSeasonNow = schedule.NewDate(2024, time.January, 10)
	onSeasonNow  = schedule.NewDate(2024, time.July, 10)
)

func engine2024(viewerID string) schedule.Engine {
	return schedule.Engine{EvaluationYear: 2024, Now: offSeasonNow, ViewerID: viewerID}
}

func weeklyRow(userID string, day time.Weekday, working bool, createdAt schedule.Date, status schedule.ApprovalStatus) schedule.WeeklySchedule {
	return schedule.WeeklySchedule{
		ID:             userID + "-" + day.String(),
		UserID:         userID,
		DayOfWeek:      day,
		IsWorkingDay:   working,
		ApprovalStatus: status,
		CreatedAt:      createdAt.Time(),
	}
}

func approvedTimeOff(t *testing.T, userID, start, end string) schedule.TimeOffRequest {
	t.Helper()
	return schedule.TimeOffRequest{
		ID:        userID + "-" + start,
		UserID:    userID,
		StartDate: mustDate(t, start),
		EndDate:   mustDate(t, end),
		Type:      schedule.TimeOffVacation,
		Status:    schedule.TimeOffApproved,
	}
}

// =============================================================================
// WORKING DETERMINATION PRECEDENCE
// =============================================================================

func TestIsWorking_ApprovedTimeOffBeatsWorkingOverride(t *testing.T) {
	// GIVEN: A working override AND an approved full-day request on the date
	// WHEN: Determining working status
	// THEN: Time off wins; the override never reaches evaluation

	d := mustDate(t, "2024-01-10")
	snap := schedule.NewSnapshot(
		nil,
		[]schedule.ScheduleOverride{{ID: "o1", UserID: "u1", Date: d, Status: schedule.OverrideWorking}},
		[]schedule.TimeOffRequest{approvedTimeOff(t, "u1", "2024-01-10", "2024-01-10")},
	)
	e := engine2024("u1")

	if e.IsWorking("u1", d, snap) {
		t.Error("approved full-day time off must override a working override")
	}
	if !e.IsOff("u1", d, snap) {
		t.Error("the day should read as off")
	}
}

func TestIsWorking_OverrideBeatsWeeklySchedule(t *testing.T) {
	d := mustDate(t, "2024-01-10") // Wednesday
	created := mustDate(t, "2024-01-01")
	e := engine2024("u1")

	// Sick override on a scheduled working day.
	snap := schedule.NewSnapshot(
		[]schedule.WeeklySchedule{weeklyRow("u1", time.Wednesday, true, created, schedule.ApprovalNotRequired)},
		[]schedule.ScheduleOverride{{ID: "o1", UserID: "u1", Date: d, Status: schedule.OverrideSickLeave}},
		nil,
	)
	if e.IsWorking("u1", d, snap) {
		t.Error("sick_leave override must beat the weekly working day")
	}
	if !e.IsOff("u1", d, snap) {
		t.Error("sick_leave override should read as off")
	}

	// Working override on an unscheduled day.
	snap = schedule.NewSnapshot(
		[]schedule.WeeklySchedule{weeklyRow("u1", time.Wednesday, false, created, schedule.ApprovalNotRequired)},
		[]schedule.ScheduleOverride{{ID: "o2", UserID: "u1", Date: d, Status: schedule.OverrideWorking}},
		nil,
	)
	if !e.IsWorking("u1", d, snap) {
		t.Error("working override must beat the weekly off day")
	}
}

func TestIsWorking_WeeklyScheduleFallthrough(t *testing.T) {
	created := mustDate(t, "2024-01-01")
	e := engine2024("u1")

	snap := schedule.NewSnapshot(
		[]schedule.WeeklySchedule{weeklyRow("u1", time.Wednesday, true, created, schedule.ApprovalNotRequired)},
		nil, nil,
	)

	if !e.IsWorking("u1", mustDate(t, "2024-01-10"), snap) {
		t.Error("scheduled Wednesday should be working")
	}
	if e.IsWorking("u1", mustDate(t, "2024-01-11"), snap) {
		t.Error("Thursday has no schedule")
	}
	if e.IsWorking("u2", mustDate(t, "2024-01-10"), snap) {
		t.Error("another user has no schedule")
	}
}

func TestIsWorking_ScheduleNotRetroactive(t *testing.T) {
	// GIVEN: A Wednesday schedule created January 15
	// WHEN: Evaluating the Wednesday before and after creation
	// THEN: Only dates on or after the creation date apply

	created := mustDate(t, "2024-01-15")
	snap := schedule.NewSnapshot(
		[]schedule.WeeklySchedule{weeklyRow("u1", time.Wednesday, true, created, schedule.ApprovalNotRequired)},
		nil, nil,
	)
	e := engine2024("u1")

	if e.IsWorking("u1", mustDate(t, "2024-01-10"), snap) {
		t.Error("schedule must not apply before its creation date")
	}
	if !e.IsWorking("u1", mustDate(t, "2024-01-17"), snap) {
		t.Error("schedule applies from its creation date forward")
	}
}

func TestIsWorking_ScheduleScopedToEvaluationYear(t *testing.T) {
	// A weekly schedule does not project outside the displayed year.
	created := mustDate(t, "2024-01-01")
	snap := schedule.NewSnapshot(
		[]schedule.WeeklySchedule{weeklyRow("u1", time.Wednesday, true, created, schedule.ApprovalNotRequired)},
		nil, nil,
	)
	nextYearWednesday := mustDate(t, "2025-01-08")

	e := engine2024("u1")
	if e.IsWorking("u1", nextYearWednesday, snap) {
		t.Error("2024 calendar must not project the schedule into 2025")
	}

	e2025 := schedule.Engine{EvaluationYear: 2025, Now: offSeasonNow, ViewerID: "u1"}
	if !e2025.IsWorking("u1", nextYearWednesday, snap) {
		t.Error("2025 calendar should apply the schedule")
	}
}

// =============================================================================
// OFF-SEASON WEEKEND GATING
// =============================================================================

func TestIsWorking_OffSeasonWeekendGate(t *testing.T) {
	saturday := mustDate(t, "2024-01-13")
	created := mustDate(t, "2024-01-01")

	mk := func(status schedule.ApprovalStatus) *schedule.Snapshot {
		row := weeklyRow("u1", time.Saturday, true, created, status)
		row.RequiresApproval = true
		return schedule.NewSnapshot([]schedule.WeeklySchedule{row}, nil, nil)
	}

	owner := engine2024("u1")
	other := engine2024("u2")

	// Pending: hidden from everyone.
	if owner.IsWorking("u1", saturday, mk(schedule.ApprovalPending)) {
		t.Error("pending weekend shift must not show as working")
	}
	// Approved: shows for everyone.
	if !other.IsWorking("u1", saturday, mk(schedule.ApprovalApproved)) {
		t.Error("approved weekend shift shows as working")
	}
	// Denied: only the requester still sees it.
	denied := mk(schedule.ApprovalDenied)
	if !owner.IsWorking("u1", saturday, denied) {
		t.Error("requester still sees their denied weekend shift")
	}
	if other.IsWorking("u1", saturday, denied) {
		t.Error("denied weekend shift is hidden from other viewers")
	}
}

func TestIsWorking_WeekendGateUsesViewingMoment(t *testing.T) {
	// GIVEN: A pending Saturday shift
	// WHEN: Viewed during the season
	// THEN: No gate applies, even though the shift was flagged while off
	//       season. The gate keys off when you look, not the date itself.

	saturday := mustDate(t, "2024-07-13")
	created := mustDate(t, "2024-01-01")
	row := weeklyRow("u1", time.Saturday, true, created, schedule.ApprovalPending)
	row.RequiresApproval = true
	snap := schedule.NewSnapshot([]schedule.WeeklySchedule{row}, nil, nil)

	inSeason := schedule.Engine{EvaluationYear: 2024, Now: onSeasonNow, ViewerID: "u2"}
	if !inSeason.IsWorking("u1", saturday, snap) {
		t.Error("in-season viewing applies no weekend gate")
	}

	offSeason := engine2024("u2")
	janSaturday := mustDate(t, "2024-01-13")
	if offSeason.IsWorking("u1", janSaturday, snap) {
		t.Error("off-season viewing gates the pending weekend shift")
	}
}

// =============================================================================
// PARTIAL-DAY ANNOTATION
// =============================================================================

func TestPartialDayNote(t *testing.T) {
	// GIVEN: A working Wednesday with an approved 09:00-12:00 partial request
	// WHEN: Classifying the date
	// THEN: Still working, annotated "Off 9:00 AM-12:00 PM"

	d := mustDate(t, "2024-01-10")
	created := mustDate(t, "2024-01-01")
	partial := approvedTimeOff(t, "u1", "2024-01-10", "2024-01-10")
	partial.IsPartialDay = true
	partial.StartTime = "09:00"
	partial.EndTime = "12:00"

	snap := schedule.NewSnapshot(
		[]schedule.WeeklySchedule{weeklyRow("u1", time.Wednesday, true, created, schedule.ApprovalNotRequired)},
		nil,
		[]schedule.TimeOffRequest{partial},
	)
	e := engine2024("u1")

	if !e.IsWorking("u1", d, snap) {
		t.Error("partial-day time off must not flip the working determination")
	}
	note, ok := e.PartialDayNote("u1", d, snap)
	if !ok {
		t.Fatal("expected a partial-day note")
	}
	if note != "Off 9:00 AM-12:00 PM" {
		t.Errorf("note = %q, want %q", note, "Off 9:00 AM-12:00 PM")
	}

	roster := []schedule.StaffProfile{{ID: "u1", Name: "Deckhand", Role: schedule.RoleStaff, Active: true}}
	day := e.ClassifyDate(d, roster, snap)
	if len(day.WorkingStaff) != 1 || day.WorkingStaff[0] != "u1" {
		t.Errorf("WorkingStaff = %v, want [u1]", day.WorkingStaff)
	}
	if len(day.PartialDay) != 1 || day.PartialDay[0].Note != "Off 9:00 AM-12:00 PM" {
		t.Errorf("PartialDay = %v, want the annotation", day.PartialDay)
	}
}

// =============================================================================
// DAY COLOR PRIORITY
// =============================================================================

func TestColorPriority(t *testing.T) {
	created := mustDate(t, "2024-01-01")
	roster := []schedule.StaffProfile{{ID: "u1", Name: "Deckhand", Role: schedule.RoleStaff, Active: true}}
	e := engine2024("u1")

	pendingReq := approvedTimeOff(t, "u1", "2024-01-10", "2024-01-10")
	pendingReq.Status = schedule.TimeOffPending
	rejectedReq := approvedTimeOff(t, "u1", "2024-01-10", "2024-01-10")
	rejectedReq.Status = schedule.TimeOffRejected

	weekendPending := weeklyRow("u1", time.Saturday, true, created, schedule.ApprovalPending)
	weekendPending.RequiresApproval = true
	weekendApproved := weeklyRow("u1", time.Saturday, true, created, schedule.ApprovalApproved)
	weekendApproved.RequiresApproval = true

	cases := []struct {
		name string
		date string
		snap *schedule.Snapshot
		want schedule.DayColor
	}{
		{
			"holiday wins over everything", "2024-01-01",
			schedule.NewSnapshot(nil, nil, []schedule.TimeOffRequest{approvedTimeOff(t, "u1", "2024-01-01", "2024-01-01")}),
			schedule.ColorHoliday,
		},
		{
			"approved time off", "2024-01-10",
			schedule.NewSnapshot(nil, nil, []schedule.TimeOffRequest{approvedTimeOff(t, "u1", "2024-01-10", "2024-01-10")}),
			schedule.ColorApprovedOff,
		},
		{
			"pending beats rejected", "2024-01-10",
			schedule.NewSnapshot(nil, nil, []schedule.TimeOffRequest{rejectedReq, pendingReq}),
			schedule.ColorPendingRequest,
		},
		{
			"rejected request", "2024-01-10",
			schedule.NewSnapshot(nil, nil, []schedule.TimeOffRequest{rejectedReq}),
			schedule.ColorRejectedRequest,
		},
		{
			"weekend pending approval", "2024-01-13",
			schedule.NewSnapshot([]schedule.WeeklySchedule{weekendPending}, nil, nil),
			schedule.ColorWeekendPending,
		},
		{
			"weekend approved", "2024-01-13",
			schedule.NewSnapshot([]schedule.WeeklySchedule{weekendApproved}, nil, nil),
			schedule.ColorWeekendApproved,
		},
		{
			"regular working day", "2024-01-10",
			schedule.NewSnapshot([]schedule.WeeklySchedule{weeklyRow("u1", time.Wednesday, true, created, schedule.ApprovalNotRequired)}, nil, nil),
			schedule.ColorWorking,
		},
		{
			"nothing scheduled", "2024-01-11",
			schedule.NewSnapshot(nil, nil, nil),
			schedule.ColorNone,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day := e.ClassifyDate(mustDate(t, tc.date), roster, tc.snap)
			if day.Color != tc.want {
				t.Errorf("color = %s, want %s", day.Color, tc.want)
			}
		})
	}
}

func TestClassifyMonth_CoversEveryDay(t *testing.T) {
	e := engine2024("u1")
	days := e.ClassifyMonth(2024, 2, nil, schedule.NewSnapshot(nil, nil, nil))
	if len(days) != 29 {
		t.Errorf("February 2024 yields %d days, want 29", len(days))
	}
	if days[0].Date.String() != "2024-02-01" || days[28].Date.String() != "2024-02-29" {
		t.Errorf("month spans %s..%s", days[0].Date, days[28].Date)
	}
}
