/*
store.go - Persistence and notification interfaces

PURPOSE:
  Defines the contract between the scheduling core and its relational
  store. The store owns the composite unique keys:

    weekly_schedules:   (user_id, day_of_week)
    schedule_overrides: (user_id, override_date)

  Upserts on those keys are last-writer-wins; no row is concurrently
  mutated by two actors in the same transaction scope.

CHANGE FEED:
  Every mutation to the four tables emits a Change. The presentation
  shell subscribes and re-fetches the full relevant dataset - there is
  no incremental update, which keeps the engine trivially safe under
  concurrent external writes.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - schedule/store/memory.go: In-memory for testing

SEE ALSO:
  - service.go: The only writer that goes through these interfaces
*/
package schedule

import "context"

// Store is the relational schedule store.
type Store interface {
	// ListStaff returns the roster, optionally only active members.
	// Deactivated staff stay queryable for historical reporting.
	ListStaff(ctx context.Context, activeOnly bool) ([]StaffProfile, error)

	// GetStaff returns one roster member by id, ErrNotFound if missing.
	GetStaff(ctx context.Context, id string) (*StaffProfile, error)

	// ListWeeklySchedules returns weekly rows; nil userIDs means all.
	ListWeeklySchedules(ctx context.Context, userIDs []string) ([]WeeklySchedule, error)

	// GetWeeklySchedule returns a row by id, ErrNotFound if missing.
	GetWeeklySchedule(ctx context.Context, id string) (*WeeklySchedule, error)

	// UpsertWeeklySchedule writes on (user_id, day_of_week),
	// last-writer-wins, and returns the stored row.
	UpsertWeeklySchedule(ctx context.Context, row WeeklySchedule) (WeeklySchedule, error)

	// ListOverrides returns overrides in [from, to]; empty userID means all.
	ListOverrides(ctx context.Context, from, to Date, userID string) ([]ScheduleOverride, error)

	// UpsertOverride writes on (user_id, override_date) and returns the
	// stored row.
	UpsertOverride(ctx context.Context, row ScheduleOverride) (ScheduleOverride, error)

	// DeleteOverride removes the row for (user_id, date); ErrNotFound if
	// no override exists.
	DeleteOverride(ctx context.Context, userID string, d Date) error

	// ListTimeOffRequests returns requests overlapping [from, to];
	// empty userID means all.
	ListTimeOffRequests(ctx context.Context, from, to Date, userID string) ([]TimeOffRequest, error)

	// GetTimeOffRequest returns a request by id, ErrNotFound if missing.
	GetTimeOffRequest(ctx context.Context, id string) (*TimeOffRequest, error)

	InsertTimeOffRequest(ctx context.Context, row TimeOffRequest) (TimeOffRequest, error)

	// UpdateTimeOffRequest rewrites the mutable fields (status, review_*).
	UpdateTimeOffRequest(ctx context.Context, row TimeOffRequest) error

	DeleteTimeOffRequest(ctx context.Context, id string) error
}

// NotificationStore persists the approval workflows' outbound messages.
type NotificationStore interface {
	AppendNotification(ctx context.Context, n Notification) error
	ListNotifications(ctx context.Context, userID string) ([]Notification, error)
}

// =============================================================================
// CHANGE FEED
// =============================================================================

type ChangeOp string

const (
	ChangeInsert ChangeOp = "insert"
	ChangeUpdate ChangeOp = "update"
	ChangeDelete ChangeOp = "delete"
)

// Change announces a mutation to one of the underlying tables. The
// payload is deliberately minimal: subscribers refetch snapshots rather
// than apply deltas.
type Change struct {
	Table  string   `json:"table"`
	Op     ChangeOp `json:"op"`
	UserID string   `json:"user_id,omitempty"`
}

// ChangeFeed is the live mutation feed. The channel closes when ctx is
// done. Slow subscribers may miss events; that is acceptable because a
// refetch always reads the latest snapshot.
type ChangeFeed interface {
	Subscribe(ctx context.Context) <-chan Change
}

// Notifier delivers a notification to its addressee. Implementations
// persist to an outbox and may additionally mirror to mail.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
