package schedule_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/harborline/crew-scheduler/schedule"
)

func validRequest(t *testing.T) schedule.TimeOffRequest {
	t.Helper()
	return schedule.TimeOffRequest{
		UserID:    "staff-1",
		StartDate: mustDate(t, "2024-03-01"),
		EndDate:   mustDate(t, "2024-03-03"),
		Type:      schedule.TimeOffVacation,
	}
}

func TestValidateTimeOffRequest_Valid(t *testing.T) {
	r := validRequest(t)
	if err := schedule.ValidateTimeOffRequest(&r); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestValidateTimeOffRequest_FieldViolations(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*schedule.TimeOffRequest)
		wantField string
	}{
		{"missing user", func(r *schedule.TimeOffRequest) { r.UserID = "" }, "user_id"},
		{"missing start", func(r *schedule.TimeOffRequest) { r.StartDate = schedule.Date{} }, "start_date"},
		{"missing end", func(r *schedule.TimeOffRequest) { r.EndDate = schedule.Date{} }, "end_date"},
		{"end before start", func(r *schedule.TimeOffRequest) {
			r.EndDate = mustDate(t, "2024-02-28")
		}, "end_date"},
		{"unknown type", func(r *schedule.TimeOffRequest) { r.Type = "sabbatical" }, "time_off_type"},
		{"start time without end", func(r *schedule.TimeOffRequest) { r.StartTime = "09:00" }, "end_time"},
		{"end time without start", func(r *schedule.TimeOffRequest) { r.EndTime = "12:00" }, "end_time"},
		{"bad clock", func(r *schedule.TimeOffRequest) {
			r.StartTime = "nine"
			r.EndTime = "12:00"
		}, "start_time"},
		{"inverted window", func(r *schedule.TimeOffRequest) {
			r.StartTime = "12:00"
			r.EndTime = "09:00"
		}, "end_time"},
		{"zero-length window", func(r *schedule.TimeOffRequest) {
			r.StartTime = "09:00"
			r.EndTime = "09:00"
		}, "end_time"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRequest(t)
			tc.mutate(&r)
			err := schedule.ValidateTimeOffRequest(&r)
			var ve *schedule.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("got %v, want *ValidationError", err)
			}
			if ve.Field != tc.wantField {
				t.Errorf("field = %q, want %q", ve.Field, tc.wantField)
			}
		})
	}
}

func TestNormalizeTimeOff_PartialDay(t *testing.T) {
	// GIVEN: A same-day request with a 9:00-12:00 window
	// WHEN: Normalizing
	// THEN: Partial day, 3 hours taken

	r := validRequest(t)
	r.EndDate = r.StartDate
	r.StartTime = "09:00"
	r.EndTime = "12:00"

	schedule.NormalizeTimeOff(&r)

	if !r.IsPartialDay {
		t.Error("same-day request with a time window should be partial day")
	}
	if !r.HoursTaken.Equal(decimal.NewFromInt(3)) {
		t.Errorf("HoursTaken = %s, want 3", r.HoursTaken)
	}
}

func TestNormalizeTimeOff_MultiDayWithTimes_NotPartial(t *testing.T) {
	// A time window on a multi-day span does not make it partial day.
	r := validRequest(t)
	r.StartTime = "09:00"
	r.EndTime = "12:00"

	schedule.NormalizeTimeOff(&r)

	if r.IsPartialDay {
		t.Error("multi-day request should not be partial day")
	}
}

func TestNormalizeTimeOff_FullDay(t *testing.T) {
	r := validRequest(t)
	schedule.NormalizeTimeOff(&r)

	if r.IsPartialDay {
		t.Error("full-day request should not be partial day")
	}
	if !r.HoursTaken.IsZero() {
		t.Errorf("HoursTaken = %s, want 0", r.HoursTaken)
	}
}
