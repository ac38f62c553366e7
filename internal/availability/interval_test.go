package availability

import (
	"testing"
	"time"
)

func utc(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{utc(10, 0), utc(10, 30)}, Interval{utc(11, 0), utc(11, 30)}, false},
		{"touching boundary", Interval{utc(10, 0), utc(10, 30)}, Interval{utc(10, 30), utc(11, 0)}, false},
		{"partial overlap", Interval{utc(10, 0), utc(10, 30)}, Interval{utc(10, 15), utc(10, 45)}, true},
		{"contained", Interval{utc(10, 0), utc(11, 0)}, Interval{utc(10, 15), utc(10, 30)}, true},
		{"identical", Interval{utc(10, 0), utc(10, 30)}, Interval{utc(10, 0), utc(10, 30)}, true},
	}
	for _, tc := range cases {
		if got := tc.a.Overlaps(tc.b); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		if got := tc.b.Overlaps(tc.a); got != tc.want {
			t.Errorf("%s: Overlaps not symmetric: reversed = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestContains(t *testing.T) {
	slot := Interval{utc(9, 0), utc(9, 30)}
	if !slot.Contains(slot) {
		t.Fatal("slot should contain itself")
	}
	if !slot.Contains(Interval{utc(9, 0), utc(9, 15)}) {
		t.Fatal("slot should contain a prefix of itself")
	}
	if slot.Contains(Interval{utc(9, 15), utc(9, 45)}) {
		t.Fatal("slot should not contain an interval extending past its end")
	}
}
