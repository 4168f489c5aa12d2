// Package store provides an in-memory Store implementation for testing
// and development.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/crew-scheduler/schedule"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type weeklyKey struct {
	UserID string
	Day    time.Weekday
}

type overrideKey struct {
	UserID string
	Day    string
}

type Memory struct {
	mu            sync.RWMutex
	staff         map[string]schedule.StaffProfile
	weekly        map[weeklyKey]schedule.WeeklySchedule
	overrides     map[overrideKey]schedule.ScheduleOverride
	timeOff       map[string]schedule.TimeOffRequest
	notifications []schedule.Notification

	subMu   sync.Mutex
	subs    map[int]chan schedule.Change
	nextSub int
}

func NewMemory() *Memory {
	return &Memory{
		staff:     make(map[string]schedule.StaffProfile),
		weekly:    make(map[weeklyKey]schedule.WeeklySchedule),
		overrides: make(map[overrideKey]schedule.ScheduleOverride),
		timeOff:   make(map[string]schedule.TimeOffRequest),
		subs:      make(map[int]chan schedule.Change),
	}
}

// SeedStaff loads roster rows; the staff table is read-only to the core.
func (m *Memory) SeedStaff(profiles ...schedule.StaffProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range profiles {
		m.staff[p.ID] = p
	}
}

func (m *Memory) ListStaff(_ context.Context, activeOnly bool) ([]schedule.StaffProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schedule.StaffProfile
	for _, p := range m.staff {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetStaff(_ context.Context, id string) (*schedule.StaffProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.staff[id]
	if !ok {
		return nil, schedule.ErrNotFound
	}
	return &p, nil
}

// =============================================================================
// WEEKLY SCHEDULES
// =============================================================================

func (m *Memory) ListWeeklySchedules(_ context.Context, userIDs []string) ([]schedule.WeeklySchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var filter map[string]bool
	if userIDs != nil {
		filter = make(map[string]bool, len(userIDs))
		for _, id := range userIDs {
			filter[id] = true
		}
	}

	var out []schedule.WeeklySchedule
	for _, row := range m.weekly {
		if filter != nil && !filter[row.UserID] {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].DayOfWeek < out[j].DayOfWeek
	})
	return out, nil
}

func (m *Memory) GetWeeklySchedule(_ context.Context, id string) (*schedule.WeeklySchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, row := range m.weekly {
		if row.ID == id {
			r := row
			return &r, nil
		}
	}
	return nil, schedule.ErrNotFound
}

func (m *Memory) UpsertWeeklySchedule(_ context.Context, row schedule.WeeklySchedule) (schedule.WeeklySchedule, error) {
	m.mu.Lock()
	k := weeklyKey{row.UserID, row.DayOfWeek}
	op := schedule.ChangeInsert
	if old, ok := m.weekly[k]; ok {
		op = schedule.ChangeUpdate
		row.ID = old.ID
		if row.CreatedAt.IsZero() {
			row.CreatedAt = old.CreatedAt
		}
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}
	m.weekly[k] = row
	m.mu.Unlock()

	m.emit(schedule.Change{Table: "weekly_schedules", Op: op, UserID: row.UserID})
	return row, nil
}

// =============================================================================
// OVERRIDES
// =============================================================================

func (m *Memory) ListOverrides(_ context.Context, from, to schedule.Date, userID string) ([]schedule.ScheduleOverride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schedule.ScheduleOverride
	for _, row := range m.overrides {
		if userID != "" && row.UserID != userID {
			continue
		}
		if row.Date.Before(from) || row.Date.After(to) {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (m *Memory) UpsertOverride(_ context.Context, row schedule.ScheduleOverride) (schedule.ScheduleOverride, error) {
	m.mu.Lock()
	k := overrideKey{row.UserID, row.Date.String()}
	op := schedule.ChangeInsert
	if old, ok := m.overrides[k]; ok {
		op = schedule.ChangeUpdate
		row.ID = old.ID
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}
	m.overrides[k] = row
	m.mu.Unlock()

	m.emit(schedule.Change{Table: "schedule_overrides", Op: op, UserID: row.UserID})
	return row, nil
}

func (m *Memory) DeleteOverride(_ context.Context, userID string, d schedule.Date) error {
	m.mu.Lock()
	k := overrideKey{userID, d.String()}
	if _, ok := m.overrides[k]; !ok {
		m.mu.Unlock()
		return schedule.ErrNotFound
	}
	delete(m.overrides, k)
	m.mu.Unlock()

	m.emit(schedule.Change{Table: "schedule_overrides", Op: schedule.ChangeDelete, UserID: userID})
	return nil
}

// =============================================================================
// TIME-OFF REQUESTS
// =============================================================================

func (m *Memory) ListTimeOffRequests(_ context.Context, from, to schedule.Date, userID string) ([]schedule.TimeOffRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schedule.TimeOffRequest
	for _, row := range m.timeOff {
		if userID != "" && row.UserID != userID {
			continue
		}
		// Overlap: [start, end] intersects [from, to].
		if row.EndDate.Before(from) || row.StartDate.After(to) {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) GetTimeOffRequest(_ context.Context, id string) (*schedule.TimeOffRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	row, ok := m.timeOff[id]
	if !ok {
		return nil, schedule.ErrNotFound
	}
	return &row, nil
}

func (m *Memory) InsertTimeOffRequest(_ context.Context, row schedule.TimeOffRequest) (schedule.TimeOffRequest, error) {
	m.mu.Lock()
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	m.timeOff[row.ID] = row
	m.mu.Unlock()

	m.emit(schedule.Change{Table: "time_off_requests", Op: schedule.ChangeInsert, UserID: row.UserID})
	return row, nil
}

func (m *Memory) UpdateTimeOffRequest(_ context.Context, row schedule.TimeOffRequest) error {
	m.mu.Lock()
	if _, ok := m.timeOff[row.ID]; !ok {
		m.mu.Unlock()
		return schedule.ErrNotFound
	}
	m.timeOff[row.ID] = row
	m.mu.Unlock()

	m.emit(schedule.Change{Table: "time_off_requests", Op: schedule.ChangeUpdate, UserID: row.UserID})
	return nil
}

func (m *Memory) DeleteTimeOffRequest(_ context.Context, id string) error {
	m.mu.Lock()
	row, ok := m.timeOff[id]
	if !ok {
		m.mu.Unlock()
		return schedule.ErrNotFound
	}
	delete(m.timeOff, id)
	m.mu.Unlock()

	m.emit(schedule.Change{Table: "time_off_requests", Op: schedule.ChangeDelete, UserID: row.UserID})
	return nil
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func (m *Memory) AppendNotification(_ context.Context, n schedule.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *Memory) ListNotifications(_ context.Context, userID string) ([]schedule.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schedule.Notification
	for _, n := range m.notifications {
		if userID == "" || n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

// =============================================================================
// CHANGE FEED
// =============================================================================

func (m *Memory) Subscribe(ctx context.Context) <-chan schedule.Change {
	ch := make(chan schedule.Change, 64)

	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.subMu.Unlock()

	go func() {
		<-ctx.Done()
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
		close(ch)
	}()

	return ch
}

// emit never blocks; a full subscriber simply misses the event and
// catches up on its next refetch.
func (m *Memory) emit(c schedule.Change) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- c:
		default:
		}
	}
}
