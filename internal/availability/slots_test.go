package availability

import (
	"testing"
	"time"
)

func collect(slots func(func(Interval) bool)) []Interval {
	var out []Interval
	slots(func(s Interval) bool {
		out = append(out, s)
		return true
	})
	return out
}

func TestSlots_BufferSpacing(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	window := Interval{day.Add(9 * time.Hour), day.Add(17 * time.Hour)}
	// 30 min meetings with a 10 min gap: 09:00, 09:40, 10:20, ...
	slots := collect(Slots(window, 30*time.Minute, 10*time.Minute, 0, day))

	if len(slots) != 12 {
		t.Fatalf("expected 12 slots, got %d", len(slots))
	}
	for i, want := range []time.Time{
		day.Add(9 * time.Hour),
		day.Add(9*time.Hour + 40*time.Minute),
		day.Add(10*time.Hour + 20*time.Minute),
	} {
		if !slots[i].Start.Equal(want) {
			t.Fatalf("slot %d starts at %s, want %s", i, slots[i].Start, want)
		}
	}
	last := slots[len(slots)-1]
	if last.End.After(window.End) {
		t.Fatalf("last slot %s extends past window end %s", last, window.End)
	}
}

func TestSlots_MinNoticeSkipsWithoutCompressing(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	window := Interval{day.Add(9 * time.Hour), day.Add(12 * time.Hour)}
	// now = 08:30, 60 min notice: the 09:00 slot is too soon, 09:40 is fine.
	now := day.Add(8*time.Hour + 30*time.Minute)
	slots := collect(Slots(window, 30*time.Minute, 10*time.Minute, time.Hour, now))

	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	if want := day.Add(9*time.Hour + 40*time.Minute); !slots[0].Start.Equal(want) {
		t.Fatalf("first eligible slot starts at %s, want %s (skip must not shift the grid)", slots[0].Start, want)
	}
}

func TestSlots_CrossMidnight(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	// 22:00-02:00 resolves to an end before the start; the window spans into
	// the next day.
	window := Interval{day.Add(22 * time.Hour), day.Add(2 * time.Hour)}
	slots := collect(Slots(window, 60*time.Minute, 0, 0, day))

	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	if want := day.Add(25 * time.Hour); !slots[3].Start.Equal(want) {
		t.Fatalf("last slot starts at %s, want %s", slots[3].Start, want)
	}
}

func TestSlots_EmptyWhenDurationTooLong(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	window := Interval{day.Add(9 * time.Hour), day.Add(9*time.Hour + 20*time.Minute)}
	slots := collect(Slots(window, 30*time.Minute, 0, 0, day))
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

func TestSlots_Restartable(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	window := Interval{day.Add(9 * time.Hour), day.Add(11 * time.Hour)}
	seq := Slots(window, 30*time.Minute, 10*time.Minute, 0, day)

	first := collect(seq)
	second := collect(seq)
	if len(first) != len(second) {
		t.Fatalf("second iteration yielded %d slots, first %d", len(second), len(first))
	}
}

func TestFitsSlot(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	window := Interval{day.Add(9 * time.Hour), day.Add(17 * time.Hour)}
	slots := func() func(func(Interval) bool) {
		return Slots(window, 30*time.Minute, 10*time.Minute, 0, day)
	}

	exact := Interval{day.Add(9 * time.Hour), day.Add(9*time.Hour + 30*time.Minute)}
	if !FitsSlot(slots(), exact) {
		t.Fatal("exact slot boundaries should fit")
	}
	shifted := Interval{day.Add(9*time.Hour + 15*time.Minute), day.Add(9*time.Hour + 45*time.Minute)}
	if FitsSlot(slots(), shifted) {
		t.Fatal("a shifted candidate inside working hours must not fit")
	}
	shorter := Interval{day.Add(9*time.Hour + 40*time.Minute), day.Add(9*time.Hour + 55*time.Minute)}
	if !FitsSlot(slots(), shorter) {
		t.Fatal("a candidate fully inside the 09:40 slot should fit")
	}
}
