package report

import "testing"

func TestCanMutate(t *testing.T) {
	cases := []struct {
		status Status
		want   bool
	}{
		{StatusDraft, true},
		{StatusSubmitted, false},
		{StatusUnderReview, false},
		{StatusApproved, false},
	}
	for _, tc := range cases {
		r := &Report{Status: tc.status}
		if got := r.CanMutate(); got != tc.want {
			t.Errorf("CanMutate(%s) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
