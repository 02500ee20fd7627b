package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quedadaNotification/internal/schedule"
)

// fakeSource serves one user's schedule tree from memory and counts the
// queries the classifier issues.
type fakeSource struct {
	personalEnded bool
	personalErr   error

	terms    []string
	subjects map[string][]string
	// examEnded is keyed by term+"/"+subject.
	examEnded map[string]bool
	// classes is keyed by term+"/"+subject.
	classes map[string][]schedule.RecurringWeeklySlot

	examQueries  int
	classQueries int
}

func (f *fakeSource) PersonalEventEndedIn(context.Context, string, schedule.Window) (bool, error) {
	return f.personalEnded, f.personalErr
}

func (f *fakeSource) Terms(context.Context, string) ([]string, error) {
	return f.terms, nil
}

func (f *fakeSource) Subjects(_ context.Context, _ string, termID string) ([]string, error) {
	return f.subjects[termID], nil
}

func (f *fakeSource) ExamEndedIn(_ context.Context, _ string, termID, subjectID string, _ schedule.Window) (bool, error) {
	f.examQueries++
	return f.examEnded[termID+"/"+subjectID], nil
}

func (f *fakeSource) Classes(_ context.Context, _ string, termID, subjectID string) ([]schedule.RecurringWeeklySlot, error) {
	f.classQueries++
	return f.classes[termID+"/"+subjectID], nil
}

func testWindow(t *testing.T) schedule.Window {
	t.Helper()
	// 2025-05-05 is a Monday.
	now := time.Date(2025, time.May, 5, 12, 0, 0, 0, time.UTC)
	return schedule.WindowEnding(now, 5*time.Minute)
}

func TestJustBecameFree_PersonalEventShortCircuits(t *testing.T) {
	src := &fakeSource{
		personalEnded: true,
		terms:         []string{"t1"},
		subjects:      map[string][]string{"t1": {"s1"}},
	}
	c := NewClassifier(src, time.UTC)

	free, err := c.JustBecameFree(context.Background(), "alice", testWindow(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !free {
		t.Fatal("expected free=true for a personal event ending in the window")
	}
	if src.examQueries != 0 || src.classQueries != 0 {
		t.Errorf("expected no academic queries after a personal match, got %d exam and %d class",
			src.examQueries, src.classQueries)
	}
}

func TestJustBecameFree_ExamMatchStopsScanning(t *testing.T) {
	src := &fakeSource{
		terms:    []string{"t1", "t2"},
		subjects: map[string][]string{"t1": {"s1", "s2"}, "t2": {"s3"}},
		examEnded: map[string]bool{
			"t1/s1": true,
		},
	}
	c := NewClassifier(src, time.UTC)

	free, err := c.JustBecameFree(context.Background(), "alice", testWindow(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !free {
		t.Fatal("expected free=true for an exam ending in the window")
	}
	if src.examQueries != 1 {
		t.Errorf("expected scanning to stop after the first exam match, got %d queries", src.examQueries)
	}
	if src.classQueries != 0 {
		t.Errorf("expected no class queries after an exam match, got %d", src.classQueries)
	}
}

func TestJustBecameFree_ClassEndingToday(t *testing.T) {
	src := &fakeSource{
		terms:    []string{"t1"},
		subjects: map[string][]string{"t1": {"s1"}},
		classes: map[string][]schedule.RecurringWeeklySlot{
			"t1/s1": {{DayOfWeek: 1, EndOfDay: "11:58"}},
		},
	}
	c := NewClassifier(src, time.UTC)

	free, err := c.JustBecameFree(context.Background(), "alice", testWindow(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !free {
		t.Fatal("expected free=true for a class ending in the window today")
	}
}

func TestJustBecameFree_ClassOnOtherWeekday(t *testing.T) {
	src := &fakeSource{
		terms:    []string{"t1"},
		subjects: map[string][]string{"t1": {"s1"}},
		classes: map[string][]schedule.RecurringWeeklySlot{
			"t1/s1": {{DayOfWeek: 3, EndOfDay: "11:58"}},
		},
	}
	c := NewClassifier(src, time.UTC)

	free, err := c.JustBecameFree(context.Background(), "alice", testWindow(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if free {
		t.Fatal("a class on another weekday must never free a member")
	}
}

func TestJustBecameFree_NothingEnded(t *testing.T) {
	src := &fakeSource{
		terms:    []string{"t1"},
		subjects: map[string][]string{"t1": {"s1"}},
	}
	c := NewClassifier(src, time.UTC)

	free, err := c.JustBecameFree(context.Background(), "alice", testWindow(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if free {
		t.Fatal("expected free=false with no item ending in the window")
	}
}

func TestJustBecameFree_QueryErrorPropagates(t *testing.T) {
	src := &fakeSource{personalErr: errors.New("store down")}
	c := NewClassifier(src, time.UTC)

	if _, err := c.JustBecameFree(context.Background(), "alice", testWindow(t)); err == nil {
		t.Fatal("expected the store error to propagate to the caller")
	}
}
