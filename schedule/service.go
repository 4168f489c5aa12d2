/*
service.go - Mutation lifecycle for schedules, overrides, and time off

PURPOSE:
  The single writer in front of the Store. Orchestrates:
  - Weekly schedule saves: 7 idempotent per-day upserts with the
    approval status recomputed on every save (approval.go)
  - Override set/clear: the "default" sentinel deletes the row
  - Time-off lifecycle: submit -> approve/reject (terminal) -> delete
  - Weekend-work approval: pending -> approve/deny (terminal)

ATOMICITY:
  A weekly save is NOT atomic across the 7 days: each day is its own
  upsert, and a failure on one day does not roll back the others.
  Results are reported per day so the caller can retry the rest; a
  retried save is safe because the upsert key is (user_id, day_of_week).

NOTIFICATIONS:
  Approvals and denials emit a Notification addressed to the affected
  staff member. Delivery is best-effort and happens after the write has
  committed; a failed delivery never fails the operation.

SEE ALSO:
  - approval.go: DeriveApprovalState rule table
  - validate.go: Request shape checks
*/
package schedule

import (
	"context"
	"fmt"
	"time"
)

// Service orchestrates all mutations. Reads for the calendar go straight
// to the Store; the engine never mutates.
type Service struct {
	Store    Store
	Notifier Notifier // optional

	// Clock is injectable for tests; defaults to time.Now.
	Clock func() time.Time
}

func NewService(store Store, notifier Notifier) *Service {
	return &Service{Store: store, Notifier: notifier, Clock: time.Now}
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// =============================================================================
// WEEKLY SCHEDULE SAVE
// =============================================================================

// DayInput is one weekday's desired state in a weekly save.
type DayInput struct {
	DayOfWeek    time.Weekday
	IsWorkingDay bool
	StartTime    string
	EndTime      string
	Notes        string
}

// DayResult reports one weekday's outcome. Err is set per day; other
// days proceed regardless.
type DayResult struct {
	DayOfWeek time.Weekday
	Schedule  *WeeklySchedule
	Err       error
}

// SaveWeeklySchedule upserts one row per provided weekday for the user.
// The approval status is recomputed wholesale for every day: an
// off-season weekend working day goes to pending even if it was
// previously approved (see approval.go).
func (s *Service) SaveWeeklySchedule(ctx context.Context, userID string, days []DayInput) ([]DayResult, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "user_id", Message: "required"}
	}

	existing, err := s.Store.ListWeeklySchedules(ctx, []string{userID})
	if err != nil {
		return nil, &StoreError{Op: "list weekly schedules", Cause: err}
	}
	prev := make(map[time.Weekday]WeeklySchedule, len(existing))
	for _, row := range existing {
		prev[row.DayOfWeek] = row
	}

	now := s.now()
	results := make([]DayResult, 0, len(days))
	for _, day := range days {
		res := DayResult{DayOfWeek: day.DayOfWeek}

		if day.DayOfWeek < time.Sunday || day.DayOfWeek > time.Saturday {
			res.Err = &ValidationError{Field: "day_of_week", Message: "must be 0-6"}
			results = append(results, res)
			continue
		}

		needs := NeedsWeekendApproval(day.DayOfWeek, day.IsWorkingDay, DateOf(now))
		row := WeeklySchedule{
			UserID:           userID,
			DayOfWeek:        day.DayOfWeek,
			IsWorkingDay:     day.IsWorkingDay,
			StartTime:        day.StartTime,
			EndTime:          day.EndTime,
			Notes:            day.Notes,
			RequiresApproval: needs,
			CreatedAt:        now,
		}
		if old, ok := prev[day.DayOfWeek]; ok {
			row.ID = old.ID
			row.CreatedAt = old.CreatedAt
			row.ApprovalStatus = DeriveApprovalState(old.ApprovalStatus, needs)
		} else {
			row.ApprovalStatus = DeriveApprovalState(ApprovalNotRequired, needs)
		}
		// The recompute discards any prior review outcome.
		row.DenialReason = ""
		row.ApprovedBy = ""
		row.ApprovedAt = nil

		stored, err := s.Store.UpsertWeeklySchedule(ctx, row)
		if err != nil {
			res.Err = &StoreError{Op: fmt.Sprintf("upsert weekly schedule %s", day.DayOfWeek), Cause: err}
		} else {
			res.Schedule = &stored
		}
		results = append(results, res)
	}
	return results, nil
}

// =============================================================================
// OVERRIDES
// =============================================================================

// SetOverride upserts a per-date override. Status "default" reverts the
// date to the weekly schedule by deleting the row.
func (s *Service) SetOverride(ctx context.Context, ov ScheduleOverride) (*ScheduleOverride, error) {
	if ov.UserID == "" {
		return nil, &ValidationError{Field: "user_id", Message: "required"}
	}
	if ov.Date.IsZero() {
		return nil, &ValidationError{Field: "override_date", Message: "required"}
	}

	if ov.Status == OverrideDefault {
		if err := s.Store.DeleteOverride(ctx, ov.UserID, ov.Date); err != nil && !IsNotFound(err) {
			return nil, &StoreError{Op: "delete override", Cause: err}
		}
		return nil, nil
	}

	if !ov.Status.Valid() {
		return nil, &ValidationError{Field: "status", Message: "unknown status"}
	}
	if (ov.StartTime == "") != (ov.EndTime == "") {
		return nil, &ValidationError{Field: "end_time", Message: "start_time and end_time must be set together"}
	}

	ov.CreatedAt = s.now()
	stored, err := s.Store.UpsertOverride(ctx, ov)
	if err != nil {
		return nil, &StoreError{Op: "upsert override", Cause: err}
	}
	return &stored, nil
}

// =============================================================================
// TIME-OFF LIFECYCLE
// =============================================================================

// SubmitTimeOff validates, derives the partial-day fields, and inserts
// the request as pending. Nothing is written on a validation failure.
func (s *Service) SubmitTimeOff(ctx context.Context, req TimeOffRequest) (*TimeOffRequest, error) {
	if err := ValidateTimeOffRequest(&req); err != nil {
		return nil, err
	}
	NormalizeTimeOff(&req)

	req.Status = TimeOffPending
	req.SubmittedAt = s.now()
	req.ReviewNotes = ""
	req.ReviewedBy = ""
	req.ReviewedAt = nil

	stored, err := s.Store.InsertTimeOffRequest(ctx, req)
	if err != nil {
		return nil, &StoreError{Op: "insert time off request", Cause: err}
	}
	return &stored, nil
}

// ApproveTimeOff moves a pending request to approved. Terminal states
// are immutable; a second review returns ErrInvalidState.
func (s *Service) ApproveTimeOff(ctx context.Context, id, reviewerID, notes string) (*TimeOffRequest, error) {
	req, err := s.getTimeOff(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != TimeOffPending {
		return nil, &InvalidStateError{Kind: "time_off_request", ID: id, Status: string(req.Status)}
	}

	now := s.now()
	req.Status = TimeOffApproved
	req.ReviewNotes = notes
	req.ReviewedBy = reviewerID
	req.ReviewedAt = &now

	if err := s.Store.UpdateTimeOffRequest(ctx, *req); err != nil {
		return nil, &StoreError{Op: "update time off request", Cause: err}
	}

	s.notify(ctx, req.UserID,
		"Time off approved",
		fmt.Sprintf("Your %s request for %s - %s was approved.", req.Type, req.StartDate, req.EndDate),
		"time_off_request", req.ID)
	return req, nil
}

// RejectTimeOff moves a pending request to rejected. Review notes are
// mandatory for rejections.
func (s *Service) RejectTimeOff(ctx context.Context, id, reviewerID, notes string) (*TimeOffRequest, error) {
	if notes == "" {
		return nil, &ValidationError{Field: "review_notes", Message: "required when rejecting"}
	}
	req, err := s.getTimeOff(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != TimeOffPending {
		return nil, &InvalidStateError{Kind: "time_off_request", ID: id, Status: string(req.Status)}
	}

	now := s.now()
	req.Status = TimeOffRejected
	req.ReviewNotes = notes
	req.ReviewedBy = reviewerID
	req.ReviewedAt = &now

	if err := s.Store.UpdateTimeOffRequest(ctx, *req); err != nil {
		return nil, &StoreError{Op: "update time off request", Cause: err}
	}

	s.notify(ctx, req.UserID,
		"Time off rejected",
		fmt.Sprintf("Your %s request for %s - %s was rejected: %s", req.Type, req.StartDate, req.EndDate, notes),
		"time_off_request", req.ID)
	return req, nil
}

// DeleteTimeOff removes a request. Managers may delete any request at
// any time; the requester only while it is still pending. A reviewed
// request must be deleted by a manager and resubmitted.
func (s *Service) DeleteTimeOff(ctx context.Context, id, actorID string, actorRole Role) error {
	req, err := s.getTimeOff(ctx, id)
	if err != nil {
		return err
	}

	if !actorRole.CanManage() {
		if req.UserID != actorID {
			return ErrForbidden
		}
		if req.Status != TimeOffPending {
			return &InvalidStateError{Kind: "time_off_request", ID: id, Status: string(req.Status)}
		}
	}

	if err := s.Store.DeleteTimeOffRequest(ctx, id); err != nil {
		if IsNotFound(err) {
			return err
		}
		return &StoreError{Op: "delete time off request", Cause: err}
	}
	return nil
}

// =============================================================================
// WEEKEND-WORK APPROVAL
// =============================================================================

// ApproveWeekendSchedule approves a pending off-season weekend shift.
func (s *Service) ApproveWeekendSchedule(ctx context.Context, scheduleID, approverID string) (*WeeklySchedule, error) {
	row, err := s.getWeekly(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if row.ApprovalStatus != ApprovalPending {
		return nil, &InvalidStateError{Kind: "weekly_schedule", ID: scheduleID, Status: string(row.ApprovalStatus)}
	}

	now := s.now()
	row.ApprovalStatus = ApprovalApproved
	row.ApprovedBy = approverID
	row.ApprovedAt = &now
	row.DenialReason = ""

	stored, err := s.Store.UpsertWeeklySchedule(ctx, *row)
	if err != nil {
		return nil, &StoreError{Op: "upsert weekly schedule", Cause: err}
	}

	s.notify(ctx, row.UserID,
		"Weekend shift approved",
		fmt.Sprintf("Your %s shift was approved for off-season work.", row.DayOfWeek),
		"weekly_schedule", stored.ID)
	return &stored, nil
}

// DenyWeekendSchedule denies a pending off-season weekend shift. A
// denial reason is mandatory.
func (s *Service) DenyWeekendSchedule(ctx context.Context, scheduleID, approverID, reason string) (*WeeklySchedule, error) {
	if reason == "" {
		return nil, &ValidationError{Field: "denial_reason", Message: "required when denying"}
	}
	row, err := s.getWeekly(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if row.ApprovalStatus != ApprovalPending {
		return nil, &InvalidStateError{Kind: "weekly_schedule", ID: scheduleID, Status: string(row.ApprovalStatus)}
	}

	now := s.now()
	row.ApprovalStatus = ApprovalDenied
	row.ApprovedBy = approverID
	row.ApprovedAt = &now
	row.DenialReason = reason

	stored, err := s.Store.UpsertWeeklySchedule(ctx, *row)
	if err != nil {
		return nil, &StoreError{Op: "upsert weekly schedule", Cause: err}
	}

	s.notify(ctx, row.UserID,
		"Weekend shift denied",
		fmt.Sprintf("Your %s shift was denied for off-season work: %s", row.DayOfWeek, reason),
		"weekly_schedule", stored.ID)
	return &stored, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Service) getTimeOff(ctx context.Context, id string) (*TimeOffRequest, error) {
	req, err := s.Store.GetTimeOffRequest(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, &StoreError{Op: "get time off request", Cause: err}
	}
	return req, nil
}

func (s *Service) getWeekly(ctx context.Context, id string) (*WeeklySchedule, error) {
	row, err := s.Store.GetWeeklySchedule(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, &StoreError{Op: "get weekly schedule", Cause: err}
	}
	return row, nil
}

// notify delivers best-effort; the triggering write has already
// committed, so a delivery failure is dropped.
func (s *Service) notify(ctx context.Context, userID, title, message, refKind, refID string) {
	if s.Notifier == nil {
		return
	}
	_ = s.Notifier.Notify(ctx, Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		RefKind:   refKind,
		RefID:     refID,
		CreatedAt: s.now(),
	})
}
