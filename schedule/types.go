/*
Package schedule implements the staff scheduling and time-off
reconciliation engine for the crew back office.

PURPOSE:
  This package reconciles several independently-mutable data sources into
  a single per-day, per-employee work/off determination:
  - Recurring weekly schedules (one row per staff member per weekday)
  - Per-date overrides (one-off replacements for a single calendar date)
  - Time-off requests (full-day ranges or partial-day time windows)
  - Season policy (off-season weekend work requires manager approval)

KEY CONCEPTS IN THIS FILE (types.go):
  - StaffProfile:     Identity + role, owned by the identity system
  - WeeklySchedule:   Recurring weekday assignment, upsert key (user, weekday)
  - ScheduleOverride: One-off status for a date, upsert key (user, date)
  - TimeOffRequest:   Inclusive date range with optional time window

DESIGN PRINCIPLES:
  1. Precedence: approved full-day time off > override > weekly schedule
  2. Pure evaluation: the engine computes from a fetched snapshot, never
     from live queries, so concurrent writes cannot race a computation
  3. Explicit context: evaluation year, "now", and viewer identity are
     inputs, never ambient globals

SEE ALSO:
  - engine.go:   Per-day reconciliation and color classification
  - approval.go: Weekend-work approval derivation
  - service.go:  Mutation lifecycle for all three record types
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STAFF
// =============================================================================

// Role is the effective capability resolved by the identity system.
type Role string

const (
	RoleStaff    Role = "staff"
	RoleMechanic Role = "mechanic"
	RoleMaster   Role = "master"
	RoleManager  Role = "manager"
	RoleOwner    Role = "owner"
)

// CanManage reports whether the role can approve, deny, and edit
// schedules for the whole roster.
func (r Role) CanManage() bool {
	return r == RoleManager || r == RoleOwner
}

// StaffProfile is read-only to this package; rows are owned by the
// identity system. Deactivated staff remain queryable for history.
type StaffProfile struct {
	ID     string
	Name   string
	Email  string
	Role   Role
	Active bool
}

// =============================================================================
// WEEKLY SCHEDULE - Recurring weekday assignment
// =============================================================================

// ApprovalStatus tracks the weekend-work approval workflow on a
// WeeklySchedule row. Recomputed wholesale on every save (see approval.go).
type ApprovalStatus string

const (
	ApprovalNotRequired ApprovalStatus = "not_required"
	ApprovalPending     ApprovalStatus = "pending"
	ApprovalApproved    ApprovalStatus = "approved"
	ApprovalDenied      ApprovalStatus = "denied"
)

// WeeklySchedule is one row per (user, weekday). At most one row exists
// per composite key; saves are last-writer-wins upserts.
type WeeklySchedule struct {
	ID           string
	UserID       string
	DayOfWeek    time.Weekday
	IsWorkingDay bool
	StartTime    string // "HH:MM", empty when unset
	EndTime      string
	Notes        string

	RequiresApproval bool
	ApprovalStatus   ApprovalStatus
	DenialReason     string
	ApprovedBy       string
	ApprovedAt       *time.Time

	CreatedAt time.Time
}

// =============================================================================
// SCHEDULE OVERRIDE - One-off replacement for a single date
// =============================================================================

type OverrideStatus string

const (
	OverrideWorking        OverrideStatus = "working"
	OverrideApprovedDayOff OverrideStatus = "approved_day_off"
	OverrideSickLeave      OverrideStatus = "sick_leave"

	// OverrideDefault is the sentinel meaning "revert to the weekly
	// schedule": setting it deletes the override row.
	OverrideDefault OverrideStatus = "default"
)

// Valid reports whether the status is one of the persistable values.
func (s OverrideStatus) Valid() bool {
	switch s {
	case OverrideWorking, OverrideApprovedDayOff, OverrideSickLeave:
		return true
	}
	return false
}

// ScheduleOverride is one row per (user, date). Absence of a row means
// "use the weekly schedule for that weekday."
type ScheduleOverride struct {
	ID        string
	UserID    string
	Date      Date
	Status    OverrideStatus
	StartTime string // optional partial-day window
	EndTime   string
	Notes     string
	CreatedBy string
	CreatedAt time.Time
}

// =============================================================================
// TIME-OFF REQUEST - Inclusive date range, optionally a time window
// =============================================================================

type TimeOffType string

const (
	TimeOffVacation    TimeOffType = "vacation"
	TimeOffSickLeave   TimeOffType = "sick_leave"
	TimeOffPersonalDay TimeOffType = "personal_day"
	TimeOffUnpaid      TimeOffType = "unpaid"
)

func (t TimeOffType) Valid() bool {
	switch t {
	case TimeOffVacation, TimeOffSickLeave, TimeOffPersonalDay, TimeOffUnpaid:
		return true
	}
	return false
}

type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "pending"
	TimeOffApproved TimeOffStatus = "approved"
	TimeOffRejected TimeOffStatus = "rejected"
)

// Terminal reports whether the status admits no further transition.
func (s TimeOffStatus) Terminal() bool {
	return s == TimeOffApproved || s == TimeOffRejected
}

// TimeOffRequest spans [StartDate, EndDate] inclusive. IsPartialDay and
// HoursTaken are derived on submission (see validate.go): partial only
// when the range is a single day and both times are present.
type TimeOffRequest struct {
	ID        string
	UserID    string
	StartDate Date
	EndDate   Date
	StartTime string // "HH:MM", set only for same-day partial requests
	EndTime   string

	IsPartialDay bool
	HoursTaken   decimal.Decimal

	Type   TimeOffType
	Status TimeOffStatus
	Reason string

	ReviewNotes string
	ReviewedBy  string
	ReviewedAt  *time.Time

	SubmittedAt time.Time
}

// Covers reports whether the request's inclusive range contains d.
func (r *TimeOffRequest) Covers(d Date) bool {
	return d.AfterOrEqual(r.StartDate) && d.BeforeOrEqual(r.EndDate)
}

// =============================================================================
// NOTIFICATION - Outbound message emitted by the approval workflows
// =============================================================================

// Notification is addressed to the affected staff member and carries a
// human-readable message plus a reference to the record that caused it.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	RefKind   string // "time_off_request" or "weekly_schedule"
	RefID     string
	CreatedAt time.Time
	ReadAt    *time.Time
}
