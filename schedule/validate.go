/*
validate.go - Time-off request shape validation and derivation

PURPOSE:
  Every time-off request is validated synchronously before any write; no
  partial record is ever persisted. NormalizeTimeOff then fills in the
  two derived fields:

    IsPartialDay: true only when start_date == end_date AND both times set
    HoursTaken:   minutes between the times / 60

SEE ALSO:
  - service.go: SubmitTimeOff validates, normalizes, then inserts
*/
package schedule

import "github.com/shopspring/decimal"

// ValidateTimeOffRequest checks the request shape. Returns a
// field-level *ValidationError on the first violation.
func ValidateTimeOffRequest(r *TimeOffRequest) error {
	if r.UserID == "" {
		return &ValidationError{Field: "user_id", Message: "required"}
	}
	if r.StartDate.IsZero() {
		return &ValidationError{Field: "start_date", Message: "required"}
	}
	if r.EndDate.IsZero() {
		return &ValidationError{Field: "end_date", Message: "required"}
	}
	if r.EndDate.Before(r.StartDate) {
		return &ValidationError{Field: "end_date", Message: "must not precede start_date"}
	}
	if !r.Type.Valid() {
		return &ValidationError{Field: "time_off_type", Message: "unknown type"}
	}

	// Time window: both or neither.
	if (r.StartTime == "") != (r.EndTime == "") {
		return &ValidationError{Field: "end_time", Message: "start_time and end_time must be set together"}
	}
	if r.StartTime != "" {
		start, err := ParseClock(r.StartTime)
		if err != nil {
			return &ValidationError{Field: "start_time", Message: "invalid time, use HH:MM"}
		}
		end, err := ParseClock(r.EndTime)
		if err != nil {
			return &ValidationError{Field: "end_time", Message: "invalid time, use HH:MM"}
		}
		if end <= start {
			return &ValidationError{Field: "end_time", Message: "must be after start_time"}
		}
	}
	return nil
}

// NormalizeTimeOff derives IsPartialDay and HoursTaken. Call after
// validation; assumes a well-formed time window.
func NormalizeTimeOff(r *TimeOffRequest) {
	r.IsPartialDay = r.StartDate.Equal(r.EndDate) && r.StartTime != "" && r.EndTime != ""
	if r.StartTime != "" && r.EndTime != "" {
		if minutes, err := MinutesBetween(r.StartTime, r.EndTime); err == nil {
			r.HoursTaken = decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
		}
	} else {
		r.HoursTaken = decimal.Zero
	}
}
