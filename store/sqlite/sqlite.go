/*
Package sqlite provides the SQLite-backed schedule store.

PURPOSE:
  Implements schedule.Store, schedule.NotificationStore, and
  schedule.ChangeFeed on SQLite. In production the same patterns apply
  to PostgreSQL - only minor SQL dialect differences.

UPSERT KEYS:
  The store owns the composite unique constraints the domain relies on:
  - weekly_schedules   UNIQUE(user_id, day_of_week)
  - schedule_overrides UNIQUE(user_id, override_date)
  Upserts on those keys are last-writer-wins via ON CONFLICT DO UPDATE;
  the existing row id and created_at are preserved across rewrites.

CHANGE FEED:
  Every committed mutation fans out a schedule.Change to in-process
  subscribers. Subscribers refetch full snapshots; the payload only says
  which table moved and for whom.

WAL MODE:
  SQLite is opened with WAL for better concurrency: readers don't block
  and a single writer proceeds at a time.

SEE ALSO:
  - schedule/store.go: Interface definitions
  - schedule/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/harborline/crew-scheduler/schedule"
)

// Store implements the schedule storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex

	subMu   sync.Mutex
	subs    map[int]chan schedule.Change
	nextSub int
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, subs: make(map[int]chan schedule.Change)}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS staff (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS weekly_schedules (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
		is_working_day INTEGER NOT NULL DEFAULT 0,
		start_time TEXT NOT NULL DEFAULT '',
		end_time TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		requires_approval INTEGER NOT NULL DEFAULT 0,
		approval_status TEXT NOT NULL DEFAULT 'not_required',
		denial_reason TEXT NOT NULL DEFAULT '',
		approved_by TEXT NOT NULL DEFAULT '',
		approved_at TEXT,
		created_at TEXT NOT NULL,
		UNIQUE(user_id, day_of_week)
	);

	CREATE TABLE IF NOT EXISTS schedule_overrides (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		override_date TEXT NOT NULL,
		status TEXT NOT NULL,
		start_time TEXT NOT NULL DEFAULT '',
		end_time TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE(user_id, override_date)
	);
	CREATE INDEX IF NOT EXISTS idx_overrides_date
		ON schedule_overrides(override_date);

	CREATE TABLE IF NOT EXISTS time_off_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		start_time TEXT NOT NULL DEFAULT '',
		end_time TEXT NOT NULL DEFAULT '',
		is_partial_day INTEGER NOT NULL DEFAULT 0,
		hours_taken TEXT NOT NULL DEFAULT '0',
		time_off_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		reason TEXT NOT NULL DEFAULT '',
		review_notes TEXT NOT NULL DEFAULT '',
		reviewed_by TEXT NOT NULL DEFAULT '',
		reviewed_at TEXT,
		submitted_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_time_off_user
		ON time_off_requests(user_id);
	CREATE INDEX IF NOT EXISTS idx_time_off_range
		ON time_off_requests(start_date, end_date);

	CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		ref_kind TEXT NOT NULL DEFAULT '',
		ref_id TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		read_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_notifications_user
		ON notifications(user_id, created_at DESC);
	`
	_, err := s.db.Exec(schemaSQL)
	return err
}

// =============================================================================
// STAFF
// =============================================================================

func (s *Store) ListStaff(ctx context.Context, activeOnly bool) ([]schedule.StaffProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, name, email, role, active FROM staff`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.StaffProfile
	for rows.Next() {
		var p schedule.StaffProfile
		var active int
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &active); err != nil {
			return nil, err
		}
		p.Active = active != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetStaff(ctx context.Context, id string) (*schedule.StaffProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p schedule.StaffProfile
	var active int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, role, active FROM staff WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Email, &p.Role, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, schedule.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Active = active != 0
	return &p, nil
}

// SaveStaff writes a roster row. The core treats staff as read-only;
// this exists for seeding and for the identity system's sync job.
func (s *Store) SaveStaff(ctx context.Context, p schedule.StaffProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO staff (id, name, email, role, active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			role = excluded.role,
			active = excluded.active`,
		p.ID, p.Name, p.Email, string(p.Role), boolInt(p.Active))
	return err
}

// =============================================================================
// WEEKLY SCHEDULES
// =============================================================================

const weeklyColumns = `id, user_id, day_of_week, is_working_day, start_time, end_time,
	notes, requires_approval, approval_status, denial_reason, approved_by, approved_at, created_at`

func (s *Store) ListWeeklySchedules(ctx context.Context, userIDs []string) ([]schedule.WeeklySchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + weeklyColumns + ` FROM weekly_schedules`
	var args []any
	if userIDs != nil {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(userIDs)), ",")
		query += ` WHERE user_id IN (` + placeholders + `)`
		for _, id := range userIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY user_id, day_of_week`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.WeeklySchedule
	for rows.Next() {
		ws, err := scanWeekly(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ws)
	}
	return out, rows.Err()
}

func (s *Store) GetWeeklySchedule(ctx context.Context, id string) (*schedule.WeeklySchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+weeklyColumns+` FROM weekly_schedules WHERE id = ?`, id)
	ws, err := scanWeekly(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, schedule.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (s *Store) UpsertWeeklySchedule(ctx context.Context, row schedule.WeeklySchedule) (schedule.WeeklySchedule, error) {
	s.mu.Lock()

	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	op := schedule.ChangeInsert
	var existing int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM weekly_schedules WHERE user_id = ? AND day_of_week = ?`,
		row.UserID, int(row.DayOfWeek)).Scan(&existing); err != nil {
		s.mu.Unlock()
		return schedule.WeeklySchedule{}, err
	}
	if existing > 0 {
		op = schedule.ChangeUpdate
	}

	// Existing rows keep their id and created_at; everything else is
	// last-writer-wins.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO weekly_schedules
			(id, user_id, day_of_week, is_working_day, start_time, end_time,
			 notes, requires_approval, approval_status, denial_reason,
			 approved_by, approved_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, day_of_week) DO UPDATE SET
			is_working_day = excluded.is_working_day,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			notes = excluded.notes,
			requires_approval = excluded.requires_approval,
			approval_status = excluded.approval_status,
			denial_reason = excluded.denial_reason,
			approved_by = excluded.approved_by,
			approved_at = excluded.approved_at`,
		row.ID, row.UserID, int(row.DayOfWeek), boolInt(row.IsWorkingDay),
		row.StartTime, row.EndTime, row.Notes, boolInt(row.RequiresApproval),
		string(row.ApprovalStatus), row.DenialReason, row.ApprovedBy,
		nullTime(row.ApprovedAt), row.CreatedAt.Format(time.RFC3339))
	if err != nil {
		s.mu.Unlock()
		return schedule.WeeklySchedule{}, err
	}

	// Re-read so the caller sees the stored id/created_at after a
	// conflict kept the existing row's.
	stored := s.db.QueryRowContext(ctx,
		`SELECT `+weeklyColumns+` FROM weekly_schedules WHERE user_id = ? AND day_of_week = ?`,
		row.UserID, int(row.DayOfWeek))
	ws, err := scanWeekly(stored)
	s.mu.Unlock()
	if err != nil {
		return schedule.WeeklySchedule{}, err
	}

	s.emit(schedule.Change{Table: "weekly_schedules", Op: op, UserID: ws.UserID})
	return ws, nil
}

// =============================================================================
// OVERRIDES
// =============================================================================

const overrideColumns = `id, user_id, override_date, status, start_time, end_time, notes, created_by, created_at`

func (s *Store) ListOverrides(ctx context.Context, from, to schedule.Date, userID string) ([]schedule.ScheduleOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + overrideColumns + ` FROM schedule_overrides
		WHERE override_date >= ? AND override_date <= ?`
	args := []any{from.String(), to.String()}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY override_date, user_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.ScheduleOverride
	for rows.Next() {
		ov, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ov)
	}
	return out, rows.Err()
}

func (s *Store) UpsertOverride(ctx context.Context, row schedule.ScheduleOverride) (schedule.ScheduleOverride, error) {
	s.mu.Lock()

	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	op := schedule.ChangeInsert
	var existing int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM schedule_overrides WHERE user_id = ? AND override_date = ?`,
		row.UserID, row.Date.String()).Scan(&existing); err != nil {
		s.mu.Unlock()
		return schedule.ScheduleOverride{}, err
	}
	if existing > 0 {
		op = schedule.ChangeUpdate
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule_overrides
			(id, user_id, override_date, status, start_time, end_time, notes, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, override_date) DO UPDATE SET
			status = excluded.status,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			notes = excluded.notes,
			created_by = excluded.created_by`,
		row.ID, row.UserID, row.Date.String(), string(row.Status),
		row.StartTime, row.EndTime, row.Notes, row.CreatedBy,
		row.CreatedAt.Format(time.RFC3339))
	if err != nil {
		s.mu.Unlock()
		return schedule.ScheduleOverride{}, err
	}

	stored := s.db.QueryRowContext(ctx,
		`SELECT `+overrideColumns+` FROM schedule_overrides WHERE user_id = ? AND override_date = ?`,
		row.UserID, row.Date.String())
	ov, err := scanOverride(stored)
	s.mu.Unlock()
	if err != nil {
		return schedule.ScheduleOverride{}, err
	}

	s.emit(schedule.Change{Table: "schedule_overrides", Op: op, UserID: ov.UserID})
	return ov, nil
}

func (s *Store) DeleteOverride(ctx context.Context, userID string, d schedule.Date) error {
	s.mu.Lock()
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM schedule_overrides WHERE user_id = ? AND override_date = ?`,
		userID, d.String())
	s.mu.Unlock()
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return schedule.ErrNotFound
	}

	s.emit(schedule.Change{Table: "schedule_overrides", Op: schedule.ChangeDelete, UserID: userID})
	return nil
}

// =============================================================================
// TIME-OFF REQUESTS
// =============================================================================

const timeOffColumns = `id, user_id, start_date, end_date, start_time, end_time,
	is_partial_day, hours_taken, time_off_type, status, reason, review_notes,
	reviewed_by, reviewed_at, submitted_at`

func (s *Store) ListTimeOffRequests(ctx context.Context, from, to schedule.Date, userID string) ([]schedule.TimeOffRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Overlap: the request's inclusive range intersects [from, to].
	query := `SELECT ` + timeOffColumns + ` FROM time_off_requests
		WHERE start_date <= ? AND end_date >= ?`
	args := []any{to.String(), from.String()}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY start_date, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.TimeOffRequest
	for rows.Next() {
		req, err := scanTimeOff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) GetTimeOffRequest(ctx context.Context, id string) (*schedule.TimeOffRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+timeOffColumns+` FROM time_off_requests WHERE id = ?`, id)
	req, err := scanTimeOff(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, schedule.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Store) InsertTimeOffRequest(ctx context.Context, row schedule.TimeOffRequest) (schedule.TimeOffRequest, error) {
	s.mu.Lock()

	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.SubmittedAt.IsZero() {
		row.SubmittedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO time_off_requests
			(id, user_id, start_date, end_date, start_time, end_time,
			 is_partial_day, hours_taken, time_off_type, status, reason,
			 review_notes, reviewed_by, reviewed_at, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.UserID, row.StartDate.String(), row.EndDate.String(),
		row.StartTime, row.EndTime, boolInt(row.IsPartialDay),
		row.HoursTaken.String(), string(row.Type), string(row.Status),
		row.Reason, row.ReviewNotes, row.ReviewedBy, nullTime(row.ReviewedAt),
		row.SubmittedAt.Format(time.RFC3339))
	s.mu.Unlock()
	if err != nil {
		return schedule.TimeOffRequest{}, err
	}

	s.emit(schedule.Change{Table: "time_off_requests", Op: schedule.ChangeInsert, UserID: row.UserID})
	return row, nil
}

func (s *Store) UpdateTimeOffRequest(ctx context.Context, row schedule.TimeOffRequest) error {
	s.mu.Lock()
	res, err := s.db.ExecContext(ctx, `
		UPDATE time_off_requests SET
			status = ?, review_notes = ?, reviewed_by = ?, reviewed_at = ?
		WHERE id = ?`,
		string(row.Status), row.ReviewNotes, row.ReviewedBy,
		nullTime(row.ReviewedAt), row.ID)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return schedule.ErrNotFound
	}

	s.emit(schedule.Change{Table: "time_off_requests", Op: schedule.ChangeUpdate, UserID: row.UserID})
	return nil
}

func (s *Store) DeleteTimeOffRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	var userID string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id FROM time_off_requests WHERE id = ?`, id).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		s.mu.Unlock()
		return schedule.ErrNotFound
	}
	if err != nil {
		s.mu.Unlock()
		return err
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM time_off_requests WHERE id = ?`, id)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.emit(schedule.Change{Table: "time_off_requests", Op: schedule.ChangeDelete, UserID: userID})
	return nil
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func (s *Store) AppendNotification(ctx context.Context, n schedule.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, title, message, ref_kind, ref_id, created_at, read_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Message, n.RefKind, n.RefID,
		n.CreatedAt.Format(time.RFC3339), nullTime(n.ReadAt))
	return err
}

func (s *Store) ListNotifications(ctx context.Context, userID string) ([]schedule.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, user_id, title, message, ref_kind, ref_id, created_at, read_at
		FROM notifications`
	var args []any
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Notification
	for rows.Next() {
		var n schedule.Notification
		var createdAt string
		var readAt sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message,
			&n.RefKind, &n.RefID, &createdAt, &readAt); err != nil {
			return nil, err
		}
		n.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		n.ReadAt = parseNullTime(readAt)
		out = append(out, n)
	}
	return out, rows.Err()
}

// =============================================================================
// CHANGE FEED
// =============================================================================

func (s *Store) Subscribe(ctx context.Context) <-chan schedule.Change {
	ch := make(chan schedule.Change, 64)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
		close(ch)
	}()

	return ch
}

// emit never blocks; a full subscriber misses the event and catches up
// on its next refetch.
func (s *Store) emit(c schedule.Change) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWeekly(r rowScanner) (schedule.WeeklySchedule, error) {
	var ws schedule.WeeklySchedule
	var dayOfWeek, isWorking, requiresApproval int
	var approvedAt sql.NullString
	var createdAt string
	err := r.Scan(&ws.ID, &ws.UserID, &dayOfWeek, &isWorking, &ws.StartTime,
		&ws.EndTime, &ws.Notes, &requiresApproval, &ws.ApprovalStatus,
		&ws.DenialReason, &ws.ApprovedBy, &approvedAt, &createdAt)
	if err != nil {
		return schedule.WeeklySchedule{}, err
	}
	ws.DayOfWeek = time.Weekday(dayOfWeek)
	ws.IsWorkingDay = isWorking != 0
	ws.RequiresApproval = requiresApproval != 0
	ws.ApprovedAt = parseNullTime(approvedAt)
	ws.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return ws, nil
}

func scanOverride(r rowScanner) (schedule.ScheduleOverride, error) {
	var ov schedule.ScheduleOverride
	var date, createdAt string
	err := r.Scan(&ov.ID, &ov.UserID, &date, &ov.Status, &ov.StartTime,
		&ov.EndTime, &ov.Notes, &ov.CreatedBy, &createdAt)
	if err != nil {
		return schedule.ScheduleOverride{}, err
	}
	ov.Date, err = schedule.ParseDate(date)
	if err != nil {
		return schedule.ScheduleOverride{}, err
	}
	ov.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return ov, nil
}

func scanTimeOff(r rowScanner) (schedule.TimeOffRequest, error) {
	var req schedule.TimeOffRequest
	var startDate, endDate, hoursTaken, submittedAt string
	var isPartial int
	var reviewedAt sql.NullString
	err := r.Scan(&req.ID, &req.UserID, &startDate, &endDate, &req.StartTime,
		&req.EndTime, &isPartial, &hoursTaken, &req.Type, &req.Status,
		&req.Reason, &req.ReviewNotes, &req.ReviewedBy, &reviewedAt, &submittedAt)
	if err != nil {
		return schedule.TimeOffRequest{}, err
	}
	if req.StartDate, err = schedule.ParseDate(startDate); err != nil {
		return schedule.TimeOffRequest{}, err
	}
	if req.EndDate, err = schedule.ParseDate(endDate); err != nil {
		return schedule.TimeOffRequest{}, err
	}
	req.IsPartialDay = isPartial != 0
	if req.HoursTaken, err = decimal.NewFromString(hoursTaken); err != nil {
		return schedule.TimeOffRequest{}, err
	}
	req.ReviewedAt = parseNullTime(reviewedAt)
	req.SubmittedAt, _ = time.Parse(time.RFC3339, submittedAt)
	return req, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
