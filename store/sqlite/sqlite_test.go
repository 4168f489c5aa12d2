package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/crew-scheduler/schedule"
	"github.com/harborline/crew-scheduler/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func date(t *testing.T, s string) schedule.Date {
	t.Helper()
	d, err := schedule.ParseDate(s)
	require.NoError(t, err)
	return d
}

// =============================================================================
// STAFF
// =============================================================================

func TestStaff_SaveAndList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveStaff(ctx, schedule.StaffProfile{
		ID: "u1", Name: "Deckhand", Email: "deckhand@example.com", Role: schedule.RoleStaff, Active: true,
	}))
	require.NoError(t, store.SaveStaff(ctx, schedule.StaffProfile{
		ID: "u2", Name: "Former Mate", Role: schedule.RoleStaff, Active: false,
	}))

	active, err := store.ListStaff(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "u1", active[0].ID)
	assert.Equal(t, "deckhand@example.com", active[0].Email)

	all, err := store.ListStaff(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	p, err := store.GetStaff(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "Former Mate", p.Name)
	assert.False(t, p.Active)

	_, err = store.GetStaff(ctx, "nobody")
	assert.ErrorIs(t, err, schedule.ErrNotFound)
}

// =============================================================================
// WEEKLY SCHEDULES
// =============================================================================

func TestWeeklySchedule_UpsertKeyIsUserAndWeekday(t *testing.T) {
	// GIVEN: A stored Saturday row
	// WHEN: Upserting the same (user, weekday) again
	// THEN: Same row identity and creation timestamp, new content

	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.UpsertWeeklySchedule(ctx, schedule.WeeklySchedule{
		UserID:           "u1",
		DayOfWeek:        time.Saturday,
		IsWorkingDay:     true,
		StartTime:        "08:00",
		EndTime:          "17:00",
		RequiresApproval: true,
		ApprovalStatus:   schedule.ApprovalPending,
		CreatedAt:        time.Now(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := store.UpsertWeeklySchedule(ctx, schedule.WeeklySchedule{
		UserID:         "u1",
		DayOfWeek:      time.Saturday,
		IsWorkingDay:   false,
		ApprovalStatus: schedule.ApprovalNotRequired,
		CreatedAt:      time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
	assert.False(t, second.IsWorkingDay)
	assert.Equal(t, schedule.ApprovalNotRequired, second.ApprovalStatus)

	// Different weekday is a different row.
	other, err := store.UpsertWeeklySchedule(ctx, schedule.WeeklySchedule{
		UserID: "u1", DayOfWeek: time.Sunday, ApprovalStatus: schedule.ApprovalNotRequired, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	rows, err := store.ListWeeklySchedules(ctx, []string{"u1"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestWeeklySchedule_GetByID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Now()
	stored, err := store.UpsertWeeklySchedule(ctx, schedule.WeeklySchedule{
		UserID:         "u1",
		DayOfWeek:      time.Saturday,
		IsWorkingDay:   true,
		ApprovalStatus: schedule.ApprovalApproved,
		ApprovedBy:     "mgr-1",
		ApprovedAt:     &now,
		CreatedAt:      now,
	})
	require.NoError(t, err)

	got, err := store.GetWeeklySchedule(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.ApprovalApproved, got.ApprovalStatus)
	assert.Equal(t, "mgr-1", got.ApprovedBy)
	require.NotNil(t, got.ApprovedAt)

	_, err = store.GetWeeklySchedule(ctx, "missing")
	assert.ErrorIs(t, err, schedule.ErrNotFound)
}

func TestWeeklySchedule_ListFilter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, user := range []string{"u1", "u2"} {
		_, err := store.UpsertWeeklySchedule(ctx, schedule.WeeklySchedule{
			UserID: user, DayOfWeek: time.Monday, IsWorkingDay: true,
			ApprovalStatus: schedule.ApprovalNotRequired, CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	all, err := store.ListWeeklySchedules(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := store.ListWeeklySchedules(ctx, []string{"u2"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "u2", mine[0].UserID)
}

// =============================================================================
// OVERRIDES
// =============================================================================

func TestOverride_UpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	d := date(t, "2024-01-10")

	first, err := store.UpsertOverride(ctx, schedule.ScheduleOverride{
		UserID: "u1", Date: d, Status: schedule.OverrideSickLeave, CreatedBy: "mgr-1", CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	// Same (user, date): the row is replaced in place.
	second, err := store.UpsertOverride(ctx, schedule.ScheduleOverride{
		UserID: "u1", Date: d, Status: schedule.OverrideWorking, CreatedBy: "mgr-1", CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, schedule.OverrideWorking, second.Status)

	rows, err := store.ListOverrides(ctx, d, d, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, store.DeleteOverride(ctx, "u1", d))
	assert.ErrorIs(t, store.DeleteOverride(ctx, "u1", d), schedule.ErrNotFound)

	rows, err = store.ListOverrides(ctx, d, d, "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOverride_ListRange(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, day := range []string{"2024-01-05", "2024-01-15", "2024-02-01"} {
		_, err := store.UpsertOverride(ctx, schedule.ScheduleOverride{
			UserID: "u1", Date: date(t, day), Status: schedule.OverrideWorking, CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	january, err := store.ListOverrides(ctx, date(t, "2024-01-01"), date(t, "2024-01-31"), "u1")
	require.NoError(t, err)
	assert.Len(t, january, 2)
}

// =============================================================================
// TIME-OFF REQUESTS
// =============================================================================

func TestTimeOff_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	stored, err := store.InsertTimeOffRequest(ctx, schedule.TimeOffRequest{
		UserID:       "u1",
		StartDate:    date(t, "2024-03-01"),
		EndDate:      date(t, "2024-03-01"),
		StartTime:    "09:00",
		EndTime:      "12:00",
		IsPartialDay: true,
		HoursTaken:   decimal.NewFromInt(3),
		Type:         schedule.TimeOffVacation,
		Status:       schedule.TimeOffPending,
		Reason:       "dentist",
		SubmittedAt:  time.Now(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, stored.ID)

	got, err := store.GetTimeOffRequest(ctx, stored.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPartialDay)
	assert.True(t, got.HoursTaken.Equal(decimal.NewFromInt(3)), "HoursTaken = %s", got.HoursTaken)
	assert.Equal(t, "09:00", got.StartTime)
	assert.Equal(t, schedule.TimeOffPending, got.Status)

	now := time.Now()
	got.Status = schedule.TimeOffApproved
	got.ReviewedBy = "mgr-1"
	got.ReviewedAt = &now
	got.ReviewNotes = "ok"
	require.NoError(t, store.UpdateTimeOffRequest(ctx, *got))

	updated, err := store.GetTimeOffRequest(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.TimeOffApproved, updated.Status)
	assert.Equal(t, "mgr-1", updated.ReviewedBy)
	require.NotNil(t, updated.ReviewedAt)

	require.NoError(t, store.DeleteTimeOffRequest(ctx, stored.ID))
	_, err = store.GetTimeOffRequest(ctx, stored.ID)
	assert.ErrorIs(t, err, schedule.ErrNotFound)
}

func TestTimeOff_ListOverlapSemantics(t *testing.T) {
	// GIVEN: A request spanning March 1-5
	// WHEN: Listing windows that touch and miss the span
	// THEN: Any overlap includes it, disjoint windows exclude it

	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.InsertTimeOffRequest(ctx, schedule.TimeOffRequest{
		UserID:      "u1",
		StartDate:   date(t, "2024-03-01"),
		EndDate:     date(t, "2024-03-05"),
		Type:        schedule.TimeOffVacation,
		Status:      schedule.TimeOffPending,
		SubmittedAt: time.Now(),
	})
	require.NoError(t, err)

	cases := []struct {
		name     string
		from, to string
		want     int
	}{
		{"window touching the start", "2024-02-25", "2024-03-01", 1},
		{"window inside the span", "2024-03-02", "2024-03-03", 1},
		{"window touching the end", "2024-03-05", "2024-03-10", 1},
		{"window before", "2024-02-01", "2024-02-29", 0},
		{"window after", "2024-03-06", "2024-03-31", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := store.ListTimeOffRequests(ctx, date(t, tc.from), date(t, tc.to), "")
			require.NoError(t, err)
			assert.Len(t, rows, tc.want)
		})
	}

	// User filter.
	rows, err := store.ListTimeOffRequests(ctx, date(t, "2024-03-01"), date(t, "2024-03-31"), "u2")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func TestNotifications_AppendAndList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.AppendNotification(ctx, schedule.Notification{
		ID: "n1", UserID: "u1", Title: "Time off approved", Message: "Enjoy", CreatedAt: time.Now(),
	}))
	require.NoError(t, store.AppendNotification(ctx, schedule.Notification{
		ID: "n2", UserID: "u2", Title: "Weekend shift denied", Message: "Yard period", CreatedAt: time.Now(),
	}))

	mine, err := store.ListNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Time off approved", mine[0].Title)
}

// =============================================================================
// CHANGE FEED
// =============================================================================

func TestSubscribe_ReceivesMutations(t *testing.T) {
	// GIVEN: A subscriber on the change feed
	// WHEN: A row is inserted, rewritten on its composite key, and deleted
	// THEN: The three ops arrive in order, correctly labelled

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := newTestStore(t)

	changes := store.Subscribe(ctx)
	next := func() schedule.Change {
		t.Helper()
		select {
		case c := <-changes:
			return c
		case <-time.After(time.Second):
			t.Fatal("no change received")
			return schedule.Change{}
		}
	}

	d := date(t, "2024-01-10")
	_, err := store.UpsertOverride(ctx, schedule.ScheduleOverride{
		UserID: "u1", Date: d, Status: schedule.OverrideWorking, CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	c := next()
	assert.Equal(t, "schedule_overrides", c.Table)
	assert.Equal(t, schedule.ChangeInsert, c.Op, "first write on the key is an insert")
	assert.Equal(t, "u1", c.UserID)

	_, err = store.UpsertOverride(ctx, schedule.ScheduleOverride{
		UserID: "u1", Date: d, Status: schedule.OverrideSickLeave, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, schedule.ChangeUpdate, next().Op, "rewrite on the same key is an update")

	require.NoError(t, store.DeleteOverride(ctx, "u1", d))
	assert.Equal(t, schedule.ChangeDelete, next().Op)
}

func TestSubscribe_WeeklyUpsertOps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := newTestStore(t)

	changes := store.Subscribe(ctx)
	next := func() schedule.Change {
		t.Helper()
		select {
		case c := <-changes:
			return c
		case <-time.After(time.Second):
			t.Fatal("no change received")
			return schedule.Change{}
		}
	}

	row := schedule.WeeklySchedule{
		UserID: "u1", DayOfWeek: time.Monday, IsWorkingDay: true,
		ApprovalStatus: schedule.ApprovalNotRequired, CreatedAt: time.Now(),
	}
	_, err := store.UpsertWeeklySchedule(ctx, row)
	require.NoError(t, err)
	c := next()
	assert.Equal(t, "weekly_schedules", c.Table)
	assert.Equal(t, schedule.ChangeInsert, c.Op)

	row.IsWorkingDay = false
	_, err = store.UpsertWeeklySchedule(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, schedule.ChangeUpdate, next().Op)
}
