// Package schedule models the two time representations a schedule item can
// carry: an absolute instant, or a weekly recurring day/time slot interpreted
// in the app's operational timezone.
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// Window is the trailing interval a poll tick checks against, inclusive on
// both bounds.
type Window struct {
	From time.Time
	To   time.Time
}

// WindowEnding returns the window of the given width that ends at now.
func WindowEnding(now time.Time, width time.Duration) Window {
	return Window{From: now.Add(-width), To: now}
}

// Contains reports whether t lies in [w.From, w.To].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// Slot is a schedule item's end-time representation. EndsWithin reports
// whether the item ends inside the window; loc is the operational timezone
// used to resolve recurring slots.
type Slot interface {
	EndsWithin(w Window, loc *time.Location) bool
}

// AbsoluteInstant is a timezone-aware end instant (personal events, exams).
type AbsoluteInstant time.Time

func (a AbsoluteInstant) EndsWithin(w Window, _ *time.Location) bool {
	return w.Contains(time.Time(a))
}

// RecurringWeeklySlot is a class meeting that repeats every week: an ISO day
// of week (1=Monday..7=Sunday) and the local end-of-day time as "HH:MM".
type RecurringWeeklySlot struct {
	DayOfWeek int
	EndOfDay  string
}

// EndsWithin resolves the slot against the day of the window's upper bound in
// loc. A slot on another weekday, or with a malformed EndOfDay, never matches.
func (s RecurringWeeklySlot) EndsWithin(w Window, loc *time.Location) bool {
	today := w.To.In(loc)
	if isoWeekday(today) != s.DayOfWeek {
		return false
	}

	hour, minute, ok := parseClock(s.EndOfDay)
	if !ok {
		return false
	}

	end := time.Date(today.Year(), today.Month(), today.Day(), hour, minute, 0, 0, loc)
	return w.Contains(end)
}

// isoWeekday maps Go's Sunday-based weekday to ISO 1=Monday..7=Sunday.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// parseClock parses "HH:MM" (24h). Returns ok=false on anything else.
func parseClock(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}

	return hour, minute, true
}
