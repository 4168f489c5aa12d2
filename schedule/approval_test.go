package schedule_test

import (
	"testing"
	"time"

	"github.com/harborline/crew-scheduler/schedule"
)

func TestNeedsWeekendApproval(t *testing.T) {
	offSeason := schedule.NewDate(2024, time.January, 10)
	onSeason := schedule.NewDate(2024, time.July, 10)

	cases := []struct {
		name    string
		day     time.Weekday
		working bool
		now     schedule.Date
		want    bool
	}{
		{"off-season saturday working", time.Saturday, true, offSeason, true},
		{"off-season sunday working", time.Sunday, true, offSeason, true},
		{"off-season saturday not working", time.Saturday, false, offSeason, false},
		{"off-season weekday working", time.Wednesday, true, offSeason, false},
		{"in-season saturday working", time.Saturday, true, onSeason, false},
		{"in-season sunday working", time.Sunday, true, onSeason, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := schedule.NeedsWeekendApproval(tc.day, tc.working, tc.now); got != tc.want {
				t.Errorf("NeedsWeekendApproval(%s, %v, %s) = %v, want %v",
					tc.day, tc.working, tc.now, got, tc.want)
			}
		})
	}
}

func TestDeriveApprovalState_WholesaleRecompute(t *testing.T) {
	// GIVEN: Every prior approval state
	// WHEN: The save recomputes the state
	// THEN: Gated days always land on pending, ungated on not_required.
	//       A previously approved weekend day goes back to pending: the
	//       recompute discards the review outcome.

	prior := []schedule.ApprovalStatus{
		schedule.ApprovalNotRequired,
		schedule.ApprovalPending,
		schedule.ApprovalApproved,
		schedule.ApprovalDenied,
	}
	for _, prev := range prior {
		if got := schedule.DeriveApprovalState(prev, true); got != schedule.ApprovalPending {
			t.Errorf("DeriveApprovalState(%s, true) = %s, want pending", prev, got)
		}
		if got := schedule.DeriveApprovalState(prev, false); got != schedule.ApprovalNotRequired {
			t.Errorf("DeriveApprovalState(%s, false) = %s, want not_required", prev, got)
		}
	}
}
