/*
handlers.go - HTTP handlers for the scheduling API

PURPOSE:
  Translates HTTP to domain calls. Reads assemble a snapshot from the
  store and hand it to the reconciliation engine; writes go through
  schedule.Service. Handlers never contain scheduling policy.

ACCESS SCOPING:
  Managers fetch the whole roster's rows; everyone else is scoped to
  their own user id at the query layer. The roster itself stays visible
  to all viewers so the calendar can render names.

ERROR MAPPING:
  ValidationError -> 400, ErrForbidden -> 403, ErrNotFound -> 404,
  ErrInvalidState -> 409, anything else -> 500.

SEE ALSO:
  - server.go: Route wiring
  - dto.go:    JSON shapes
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harborline/crew-scheduler/schedule"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store         schedule.Store
	Notifications schedule.NotificationStore
	Feed          schedule.ChangeFeed
	Service       *schedule.Service

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewHandler(store schedule.Store, notifications schedule.NotificationStore, feed schedule.ChangeFeed, service *schedule.Service) *Handler {
	return &Handler{
		Store:         store,
		Notifications: notifications,
		Feed:          feed,
		Service:       service,
		Now:           time.Now,
	}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// =============================================================================
// SEASON & HOLIDAYS
// =============================================================================

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, schedule.CurrentSeasonStatus(schedule.DateOf(h.now())))
}

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	holidays := schedule.FederalHolidays(year)
	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{Date: hol.Date.String(), Name: hol.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// CALENDAR
// =============================================================================

// GetCalendarMonth classifies every day of a month for the grid.
func (h *Handler) GetCalendarMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	claims := ClaimsFromContext(r.Context())
	from, to := schedule.MonthRange(year, time.Month(month))
	snap, roster, err := h.loadSnapshot(r, from, to, claims)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule data", err)
		return
	}

	engine := schedule.Engine{
		EvaluationYear: year,
		Now:            schedule.DateOf(h.now()),
		ViewerID:       claims.UserID,
	}
	days := engine.ClassifyMonth(year, month, roster, snap)
	dtos := make([]DayDTO, len(days))
	for i, d := range days {
		dtos[i] = toDayDTO(d)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCalendarDay classifies a single date.
func (h *Handler) GetCalendarDay(w http.ResponseWriter, r *http.Request) {
	d, err := schedule.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	claims := ClaimsFromContext(r.Context())
	snap, roster, err := h.loadSnapshot(r, d, d, claims)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule data", err)
		return
	}

	engine := schedule.Engine{
		EvaluationYear: d.Year(),
		Now:            schedule.DateOf(h.now()),
		ViewerID:       claims.UserID,
	}
	writeJSON(w, http.StatusOK, toDayDTO(engine.ClassifyDate(d, roster, snap)))
}

// =============================================================================
// STATS
// =============================================================================

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	from, to := schedule.YearRange(year)
	claims := ClaimsFromContext(r.Context())
	snap, _, err := h.loadSnapshot(r, from, to, claims)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load schedule data", err)
		return
	}

	// Deactivated staff stay in annual reports.
	roster, err := h.Store.ListStaff(r.Context(), false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list staff", err)
		return
	}

	stats := schedule.ComputeStaffStats(year, roster, snap)
	dtos := make([]StatsDTO, 0, len(stats))
	for _, p := range roster {
		dtos = append(dtos, toStatsDTO(p.ID, stats[p.ID]))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// STAFF
// =============================================================================

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") == ""
	roster, err := h.Store.ListStaff(r.Context(), activeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list staff", err)
		return
	}
	dtos := make([]StaffDTO, len(roster))
	for i, p := range roster {
		dtos[i] = toStaffDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// WEEKLY SCHEDULES
// =============================================================================

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	var userIDs []string
	if !claims.Role.CanManage() {
		userIDs = []string{claims.UserID}
	}
	rows, err := h.Store.ListWeeklySchedules(r.Context(), userIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list schedules", err)
		return
	}
	dtos := make([]WeeklyScheduleDTO, len(rows))
	for i, ws := range rows {
		dtos[i] = toWeeklyScheduleDTO(ws)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveWeeklySchedule upserts one row per submitted weekday. Results are
// reported per day; a failed day does not roll back the others.
func (h *Handler) SaveWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req SaveWeeklyScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	days := make([]schedule.DayInput, len(req.Days))
	for i, d := range req.Days {
		days[i] = schedule.DayInput{
			DayOfWeek:    time.Weekday(d.DayOfWeek),
			IsWorkingDay: d.IsWorkingDay,
			StartTime:    d.StartTime,
			EndTime:      d.EndTime,
			Notes:        d.Notes,
		}
	}

	results, err := h.Service.SaveWeeklySchedule(r.Context(), userID, days)
	if err != nil {
		writeDomainError(w, "Failed to save schedule", err)
		return
	}

	dtos := make([]DayResultDTO, len(results))
	for i, res := range results {
		dto := DayResultDTO{DayOfWeek: int(res.DayOfWeek)}
		if res.Schedule != nil {
			s := toWeeklyScheduleDTO(*res.Schedule)
			dto.Schedule = &s
		}
		if res.Err != nil {
			dto.Error = res.Err.Error()
		}
		dtos[i] = dto
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) ApproveSchedule(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	row, err := h.Service.ApproveWeekendSchedule(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		writeDomainError(w, "Failed to approve schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toWeeklyScheduleDTO(*row))
}

func (h *Handler) DenySchedule(w http.ResponseWriter, r *http.Request) {
	var req DenyScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	claims := ClaimsFromContext(r.Context())
	row, err := h.Service.DenyWeekendSchedule(r.Context(), chi.URLParam(r, "id"), claims.UserID, req.Reason)
	if err != nil {
		writeDomainError(w, "Failed to deny schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toWeeklyScheduleDTO(*row))
}

// =============================================================================
// OVERRIDES
// =============================================================================

func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.dateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}
	claims := ClaimsFromContext(r.Context())
	userFilter := ""
	if !claims.Role.CanManage() {
		userFilter = claims.UserID
	}
	rows, err := h.Store.ListOverrides(r.Context(), from, to, userFilter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list overrides", err)
		return
	}
	dtos := make([]OverrideDTO, len(rows))
	for i, ov := range rows {
		dtos[i] = toOverrideDTO(ov)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SetOverride upserts an override; status "default" clears it.
func (h *Handler) SetOverride(w http.ResponseWriter, r *http.Request) {
	var req SetOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	d, err := schedule.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	claims := ClaimsFromContext(r.Context())
	stored, err := h.Service.SetOverride(r.Context(), schedule.ScheduleOverride{
		UserID:    req.UserID,
		Date:      d,
		Status:    schedule.OverrideStatus(req.Status),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
		CreatedBy: claims.UserID,
	})
	if err != nil {
		writeDomainError(w, "Failed to set override", err)
		return
	}
	if stored == nil {
		// Reverted to the weekly schedule.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toOverrideDTO(*stored))
}

// =============================================================================
// TIME OFF
// =============================================================================

func (h *Handler) ListTimeOff(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.dateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}
	claims := ClaimsFromContext(r.Context())
	userFilter := ""
	if !claims.Role.CanManage() {
		userFilter = claims.UserID
	}
	rows, err := h.Store.ListTimeOffRequests(r.Context(), from, to, userFilter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list time off requests", err)
		return
	}
	dtos := make([]TimeOffDTO, len(rows))
	for i, req := range rows {
		dtos[i] = toTimeOffDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) SubmitTimeOff(w http.ResponseWriter, r *http.Request) {
	var req SubmitTimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	claims := ClaimsFromContext(r.Context())
	userID := claims.UserID
	if req.UserID != "" && req.UserID != claims.UserID {
		// Only managers submit on someone's behalf.
		if !claims.Role.CanManage() {
			writeError(w, http.StatusForbidden, "Cannot submit for another user", nil)
			return
		}
		userID = req.UserID
	}

	start, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	end, err := schedule.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}

	stored, err := h.Service.SubmitTimeOff(r.Context(), schedule.TimeOffRequest{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      schedule.TimeOffType(req.Type),
		Reason:    req.Reason,
	})
	if err != nil {
		writeDomainError(w, "Failed to submit time off request", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTimeOffDTO(*stored))
}

func (h *Handler) ApproveTimeOff(w http.ResponseWriter, r *http.Request) {
	var req ReviewTimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	claims := ClaimsFromContext(r.Context())
	stored, err := h.Service.ApproveTimeOff(r.Context(), chi.URLParam(r, "id"), claims.UserID, req.Notes)
	if err != nil {
		writeDomainError(w, "Failed to approve time off request", err)
		return
	}
	writeJSON(w, http.StatusOK, toTimeOffDTO(*stored))
}

func (h *Handler) RejectTimeOff(w http.ResponseWriter, r *http.Request) {
	var req ReviewTimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	claims := ClaimsFromContext(r.Context())
	stored, err := h.Service.RejectTimeOff(r.Context(), chi.URLParam(r, "id"), claims.UserID, req.Notes)
	if err != nil {
		writeDomainError(w, "Failed to reject time off request", err)
		return
	}
	writeJSON(w, http.StatusOK, toTimeOffDTO(*stored))
}

func (h *Handler) DeleteTimeOff(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	err := h.Service.DeleteTimeOff(r.Context(), chi.URLParam(r, "id"), claims.UserID, claims.Role)
	if err != nil {
		writeDomainError(w, "Failed to delete time off request", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	userID := claims.UserID
	if requested := r.URL.Query().Get("user_id"); requested != "" && claims.Role.CanManage() {
		userID = requested
	}
	rows, err := h.Notifications.ListNotifications(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list notifications", err)
		return
	}
	dtos := make([]NotificationDTO, len(rows))
	for i, n := range rows {
		dtos[i] = toNotificationDTO(n)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// CHANGE FEED (SSE)
// =============================================================================

// Events streams store mutations as server-sent events. The shell
// debounces and refetches; the payload only names the table that moved.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming unsupported", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	changes := h.Feed.Subscribe(r.Context())
	for change := range changes {
		payload, err := json.Marshal(change)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// loadSnapshot fetches the three row sets for [from, to], scoped to the
// caller's own rows unless they manage the roster, and the active
// roster for display.
func (h *Handler) loadSnapshot(r *http.Request, from, to schedule.Date, claims *Claims) (*schedule.Snapshot, []schedule.StaffProfile, error) {
	ctx := r.Context()

	var userIDs []string
	userFilter := ""
	if !claims.Role.CanManage() {
		userIDs = []string{claims.UserID}
		userFilter = claims.UserID
	}

	weekly, err := h.Store.ListWeeklySchedules(ctx, userIDs)
	if err != nil {
		return nil, nil, err
	}
	overrides, err := h.Store.ListOverrides(ctx, from, to, userFilter)
	if err != nil {
		return nil, nil, err
	}
	requests, err := h.Store.ListTimeOffRequests(ctx, from, to, userFilter)
	if err != nil {
		return nil, nil, err
	}
	roster, err := h.Store.ListStaff(ctx, true)
	if err != nil {
		return nil, nil, err
	}
	return schedule.NewSnapshot(weekly, overrides, requests), roster, nil
}

// dateRange reads from/to query params, defaulting to the current month.
func (h *Handler) dateRange(r *http.Request) (schedule.Date, schedule.Date, error) {
	now := h.now()
	from, to := schedule.MonthRange(now.Year(), now.Month())

	if s := r.URL.Query().Get("from"); s != "" {
		var err error
		if from, err = schedule.ParseDate(s); err != nil {
			return schedule.Date{}, schedule.Date{}, err
		}
	}
	if s := r.URL.Query().Get("to"); s != "" {
		var err error
		if to, err = schedule.ParseDate(s); err != nil {
			return schedule.Date{}, schedule.Date{}, err
		}
	}
	return from, to, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	payload := map[string]any{"error": message}
	if err != nil {
		payload["detail"] = err.Error()
	}
	writeJSON(w, status, payload)
}

// writeDomainError maps domain failures to HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	var ve *schedule.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  message,
			"field":  ve.Field,
			"detail": ve.Message,
		})
		return
	case errors.Is(err, schedule.ErrForbidden):
		status = http.StatusForbidden
	case schedule.IsNotFound(err):
		status = http.StatusNotFound
	case schedule.IsInvalidState(err):
		status = http.StatusConflict
	}
	writeError(w, status, message, err)
}
