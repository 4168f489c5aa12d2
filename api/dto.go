/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model
  from the external contract. Dates travel as "YYYY-MM-DD", clock
  fields as "HH:MM", day-equivalents as floats.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Shape validation happens in the schedule package before any write;
  handlers only parse and translate.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/harborline/crew-scheduler/schedule"
)

// =============================================================================
// STAFF / CALENDAR
// =============================================================================

type StaffDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type PartialDayDTO struct {
	UserID string `json:"user_id"`
	Note   string `json:"note"`
}

// DayDTO is one calendar cell.
type DayDTO struct {
	Date         string          `json:"date"`
	Color        string          `json:"color"`
	Holiday      *HolidayDTO     `json:"holiday,omitempty"`
	WorkingStaff []string        `json:"working_staff"`
	OffStaff     []string        `json:"off_staff"`
	PartialDay   []PartialDayDTO `json:"partial_day,omitempty"`
}

type StatsDTO struct {
	UserID          string             `json:"user_id"`
	ApprovedDays    float64            `json:"approved_days"`
	SickDays        int                `json:"sick_days"`
	RequestedDays   float64            `json:"requested_days"`
	ApprovedByType  map[string]float64 `json:"approved_by_type"`
	RequestedByType map[string]float64 `json:"requested_by_type"`
}

// =============================================================================
// WEEKLY SCHEDULES
// =============================================================================

type WeeklyScheduleDTO struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	DayOfWeek        int    `json:"day_of_week"`
	IsWorkingDay     bool   `json:"is_working_day"`
	StartTime        string `json:"start_time,omitempty"`
	EndTime          string `json:"end_time,omitempty"`
	Notes            string `json:"notes,omitempty"`
	RequiresApproval bool   `json:"requires_approval"`
	ApprovalStatus   string `json:"approval_status"`
	DenialReason     string `json:"denial_reason,omitempty"`
	ApprovedBy       string `json:"approved_by,omitempty"`
	ApprovedAt       string `json:"approved_at,omitempty"`
	CreatedAt        string `json:"created_at"`
}

type SaveWeeklyScheduleRequest struct {
	Days []DayInputDTO `json:"days"`
}

type DayInputDTO struct {
	DayOfWeek    int    `json:"day_of_week"`
	IsWorkingDay bool   `json:"is_working_day"`
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// DayResultDTO reports one weekday's save outcome; failed days carry an
// error so the caller can retry just those.
type DayResultDTO struct {
	DayOfWeek int                `json:"day_of_week"`
	Schedule  *WeeklyScheduleDTO `json:"schedule,omitempty"`
	Error     string             `json:"error,omitempty"`
}

type DenyScheduleRequest struct {
	Reason string `json:"reason"`
}

// =============================================================================
// OVERRIDES
// =============================================================================

type OverrideDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedBy string `json:"created_by,omitempty"`
}

// SetOverrideRequest with status "default" clears the override.
type SetOverrideRequest struct {
	UserID    string `json:"user_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// =============================================================================
// TIME OFF
// =============================================================================

type TimeOffDTO struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	StartTime    string  `json:"start_time,omitempty"`
	EndTime      string  `json:"end_time,omitempty"`
	IsPartialDay bool    `json:"is_partial_day"`
	HoursTaken   float64 `json:"hours_taken"`
	Type         string  `json:"time_off_type"`
	Status       string  `json:"status"`
	Reason       string  `json:"reason,omitempty"`
	ReviewNotes  string  `json:"review_notes,omitempty"`
	ReviewedBy   string  `json:"reviewed_by,omitempty"`
	ReviewedAt   string  `json:"reviewed_at,omitempty"`
	SubmittedAt  string  `json:"submitted_at"`
}

type SubmitTimeOffRequest struct {
	UserID    string `json:"user_id,omitempty"` // managers may submit on behalf
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Type      string `json:"time_off_type"`
	Reason    string `json:"reason,omitempty"`
}

type ReviewTimeOffRequest struct {
	Notes string `json:"notes"`
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

type NotificationDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	RefKind   string `json:"ref_kind,omitempty"`
	RefID     string `json:"ref_id,omitempty"`
	CreatedAt string `json:"created_at"`
	Read      bool   `json:"read"`
}

// =============================================================================
// DOMAIN -> DTO CONVERSIONS
// =============================================================================

func toStaffDTO(p schedule.StaffProfile) StaffDTO {
	return StaffDTO{ID: p.ID, Name: p.Name, Email: p.Email, Role: string(p.Role), Active: p.Active}
}

func toDayDTO(d schedule.DayClassification) DayDTO {
	dto := DayDTO{
		Date:         d.Date.String(),
		Color:        string(d.Color),
		WorkingStaff: emptyIfNil(d.WorkingStaff),
		OffStaff:     emptyIfNil(d.OffStaff),
	}
	if d.Holiday != nil {
		dto.Holiday = &HolidayDTO{Date: d.Holiday.Date.String(), Name: d.Holiday.Name}
	}
	for _, p := range d.PartialDay {
		dto.PartialDay = append(dto.PartialDay, PartialDayDTO{UserID: p.UserID, Note: p.Note})
	}
	return dto
}

func toWeeklyScheduleDTO(ws schedule.WeeklySchedule) WeeklyScheduleDTO {
	return WeeklyScheduleDTO{
		ID:               ws.ID,
		UserID:           ws.UserID,
		DayOfWeek:        int(ws.DayOfWeek),
		IsWorkingDay:     ws.IsWorkingDay,
		StartTime:        ws.StartTime,
		EndTime:          ws.EndTime,
		Notes:            ws.Notes,
		RequiresApproval: ws.RequiresApproval,
		ApprovalStatus:   string(ws.ApprovalStatus),
		DenialReason:     ws.DenialReason,
		ApprovedBy:       ws.ApprovedBy,
		ApprovedAt:       formatTimePtr(ws.ApprovedAt),
		CreatedAt:        ws.CreatedAt.Format(time.RFC3339),
	}
}

func toOverrideDTO(ov schedule.ScheduleOverride) OverrideDTO {
	return OverrideDTO{
		ID:        ov.ID,
		UserID:    ov.UserID,
		Date:      ov.Date.String(),
		Status:    string(ov.Status),
		StartTime: ov.StartTime,
		EndTime:   ov.EndTime,
		Notes:     ov.Notes,
		CreatedBy: ov.CreatedBy,
	}
}

func toTimeOffDTO(r schedule.TimeOffRequest) TimeOffDTO {
	hours, _ := r.HoursTaken.Float64()
	return TimeOffDTO{
		ID:           r.ID,
		UserID:       r.UserID,
		StartDate:    r.StartDate.String(),
		EndDate:      r.EndDate.String(),
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		IsPartialDay: r.IsPartialDay,
		HoursTaken:   hours,
		Type:         string(r.Type),
		Status:       string(r.Status),
		Reason:       r.Reason,
		ReviewNotes:  r.ReviewNotes,
		ReviewedBy:   r.ReviewedBy,
		ReviewedAt:   formatTimePtr(r.ReviewedAt),
		SubmittedAt:  r.SubmittedAt.Format(time.RFC3339),
	}
}

func toStatsDTO(userID string, s schedule.StaffStats) StatsDTO {
	approved, _ := s.ApprovedDays.Float64()
	requested, _ := s.RequestedDays.Float64()
	dto := StatsDTO{
		UserID:          userID,
		ApprovedDays:    approved,
		SickDays:        s.SickDays,
		RequestedDays:   requested,
		ApprovedByType:  make(map[string]float64),
		RequestedByType: make(map[string]float64),
	}
	for t, v := range s.ApprovedByType {
		f, _ := v.Float64()
		dto.ApprovedByType[string(t)] = f
	}
	for t, v := range s.RequestedByType {
		f, _ := v.Float64()
		dto.RequestedByType[string(t)] = f
	}
	return dto
}

func toNotificationDTO(n schedule.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		RefKind:   n.RefKind,
		RefID:     n.RefID,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
		Read:      n.ReadAt != nil,
	}
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
