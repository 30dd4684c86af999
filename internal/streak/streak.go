// Package streak computes consecutive-day completion streaks for habits.
//
// Completion dates are calendar days in "2006-01-02" form. Time-of-day is
// stripped during normalization, so timestamps are tolerated on input.
package streak

import "time"

// DayFormat is the canonical calendar-day form.
const DayFormat = "2006-01-02"

// Day truncates a time to its calendar day string.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// Normalize parses completion dates into a calendar-day set, dropping
// duplicates and entries that are not valid dates. Longer timestamp strings
// are truncated to their day prefix.
func Normalize(dates []string) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		if len(d) > len(DayFormat) {
			d = d[:len(DayFormat)]
		}
		if _, err := time.Parse(DayFormat, d); err != nil {
			continue
		}
		set[d] = struct{}{}
	}
	return set
}

// Current returns the length of the unbroken run of completed days ending at
// today. If today itself is not completed the streak is 0, even when a run
// ended yesterday.
func Current(dates []string, today time.Time) int {
	set := Normalize(dates)
	count := 0
	for day := today; ; day = day.AddDate(0, 0, -1) {
		if _, ok := set[Day(day)]; !ok {
			break
		}
		count++
	}
	return count
}

// Toggle flips today's completion: present is removed, absent is added. It is
// an involution, so toggling twice restores the original set. Historical dates
// are never touched. The returned slice preserves the input order of retained
// dates, with a newly added day appended.
func Toggle(dates []string, today time.Time) []string {
	day := Day(today)
	set := Normalize(dates)

	if _, ok := set[day]; ok {
		out := make([]string, 0, len(dates))
		for _, d := range dates {
			norm := d
			if len(norm) > len(DayFormat) {
				norm = norm[:len(DayFormat)]
			}
			if norm == day {
				continue
			}
			out = append(out, d)
		}
		return out
	}

	out := make([]string, len(dates), len(dates)+1)
	copy(out, dates)
	return append(out, day)
}

// Completed reports whether the given day is in the completion set.
func Completed(dates []string, day time.Time) bool {
	_, ok := Normalize(dates)[Day(day)]
	return ok
}
