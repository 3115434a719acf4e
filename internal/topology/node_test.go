package topology

import "testing"

func TestWorstStatus_PicksMoreCritical(t *testing.T) {
	cases := []struct {
		a, b, want Status
	}{
		{StatusNormal, StatusNormal, StatusNormal},
		{StatusNormal, StatusCritical, StatusCritical},
		{StatusCritical, StatusNormal, StatusCritical},
		{StatusWarning, StatusUnknown, StatusWarning},
		{StatusCritical, StatusAlertFired, StatusAlertFired},
		{StatusNotInit, StatusNormal, StatusNotInit},
	}
	for _, tc := range cases {
		if got := WorstStatus(tc.a, tc.b); got != tc.want {
			t.Errorf("WorstStatus(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestWorstStatus_CommutativeAndIdempotent(t *testing.T) {
	all := []Status{StatusNormal, StatusNotInit, StatusUnknown, StatusWarning, StatusCritical, StatusAlertFired}
	for _, a := range all {
		if got := WorstStatus(a, a); got != a {
			t.Errorf("WorstStatus(%v, %v) = %v, want %v", a, a, got, a)
		}
		for _, b := range all {
			if WorstStatus(a, b) != WorstStatus(b, a) {
				t.Errorf("WorstStatus(%v, %v) != WorstStatus(%v, %v)", a, b, b, a)
			}
		}
	}
}

func TestStatusColor_CoversScale(t *testing.T) {
	seen := map[string]Status{}
	for _, s := range []Status{StatusNormal, StatusNotInit, StatusUnknown, StatusWarning, StatusCritical, StatusAlertFired} {
		c := s.Color()
		if c == "" {
			t.Fatalf("status %v has no color", s)
		}
		if prev, dup := seen[c]; dup {
			t.Fatalf("statuses %v and %v share color %s", prev, s, c)
		}
		seen[c] = s
	}
}
