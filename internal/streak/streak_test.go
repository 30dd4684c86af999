package streak

import (
	"testing"
	"time"
)

var today = time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)

func daysAgo(n int) string {
	return today.AddDate(0, 0, -n).Format(DayFormat)
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{name: "empty set", dates: nil, want: 0},
		{name: "today only", dates: []string{daysAgo(0)}, want: 1},
		{name: "three consecutive days ending today", dates: []string{daysAgo(0), daysAgo(1), daysAgo(2)}, want: 3},
		{name: "unordered input", dates: []string{daysAgo(2), daysAgo(0), daysAgo(1)}, want: 3},
		{name: "streak ended yesterday reads as zero", dates: []string{daysAgo(1), daysAgo(2)}, want: 0},
		{name: "gap at yesterday stops at one", dates: []string{daysAgo(0), daysAgo(2)}, want: 1},
		{name: "long run with old gap", dates: []string{daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(3), daysAgo(5)}, want: 4},
		{name: "duplicates collapse", dates: []string{daysAgo(0), daysAgo(0), daysAgo(1)}, want: 2},
		{name: "timestamps normalized to days", dates: []string{daysAgo(0) + "T08:30:00Z", daysAgo(1) + "T23:59:59Z"}, want: 2},
		{name: "invalid entries ignored", dates: []string{"not-a-date", daysAgo(0)}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Current(tt.dates, today); got != tt.want {
				t.Errorf("Current(%v) = %d, want %d", tt.dates, got, tt.want)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	t.Run("absent day is added", func(t *testing.T) {
		dates := []string{daysAgo(1)}
		got := Toggle(dates, today)
		if !Completed(got, today) {
			t.Error("expected today to be completed after toggle")
		}
		if len(got) != 2 {
			t.Errorf("expected 2 dates, got %d", len(got))
		}
	})

	t.Run("present day is removed", func(t *testing.T) {
		dates := []string{daysAgo(0), daysAgo(1)}
		got := Toggle(dates, today)
		if Completed(got, today) {
			t.Error("expected today to be removed after toggle")
		}
		if len(got) != 1 || got[0] != daysAgo(1) {
			t.Errorf("expected only yesterday to remain, got %v", got)
		}
	})

	t.Run("historical dates untouched", func(t *testing.T) {
		dates := []string{daysAgo(3), daysAgo(7), daysAgo(30)}
		got := Toggle(dates, today)
		for _, d := range dates {
			found := false
			for _, g := range got {
				if g == d {
					found = true
				}
			}
			if !found {
				t.Errorf("historical date %s lost during toggle", d)
			}
		}
	})
}

// Toggle is an involution: toggling twice restores the original completion set
// and therefore the original streak.
func TestToggle_Involution(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
	}{
		{name: "today absent", dates: []string{daysAgo(1), daysAgo(2)}},
		{name: "today present", dates: []string{daysAgo(0), daysAgo(1)}},
		{name: "empty set", dates: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := Current(tt.dates, today)
			twice := Toggle(Toggle(tt.dates, today), today)
			after := Current(twice, today)

			if before != after {
				t.Errorf("streak changed after double toggle: %d -> %d", before, after)
			}

			origSet := Normalize(tt.dates)
			twiceSet := Normalize(twice)
			if len(origSet) != len(twiceSet) {
				t.Fatalf("set size changed: %d -> %d", len(origSet), len(twiceSet))
			}
			for d := range origSet {
				if _, ok := twiceSet[d]; !ok {
					t.Errorf("date %s lost after double toggle", d)
				}
			}
		})
	}
}

func TestToggle_StreakEffect(t *testing.T) {
	dates := []string{daysAgo(1), daysAgo(2)}
	if got := Current(dates, today); got != 0 {
		t.Fatalf("precondition: streak = %d, want 0", got)
	}

	marked := Toggle(dates, today)
	if got := Current(marked, today); got != 3 {
		t.Errorf("streak after marking today = %d, want 3", got)
	}

	unmarked := Toggle(marked, today)
	if got := Current(unmarked, today); got != 0 {
		t.Errorf("streak after unmarking today = %d, want 0", got)
	}
}
