package watcher

import (
	"testing"
	"time"
)

func ts(t *testing.T, s string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return &parsed
}

func str(s string) *string { return &s }

func doc(name string, fields map[string]FieldValue) Document {
	return Document{Name: name, Fields: fields}
}

func TestWorthy_CreationAndDeletion(t *testing.T) {
	existing := doc("projects/p/databases/(default)/documents/users/x/events/e1", nil)

	if !Worthy(KindPersonalEvent, Document{}, existing) {
		t.Error("creation must be worthy")
	}
	if !Worthy(KindPersonalEvent, existing, Document{}) {
		t.Error("deletion must be worthy")
	}
}

func TestWorthy_WatchedTimestampChange(t *testing.T) {
	before := doc("d", map[string]FieldValue{
		"endTime": {TimestampValue: ts(t, "2025-05-05T12:00:00Z")},
	})
	after := doc("d", map[string]FieldValue{
		"endTime": {TimestampValue: ts(t, "2025-05-05T13:00:00Z")},
	})

	if !Worthy(KindExam, before, after) {
		t.Error("a changed watched timestamp must be worthy")
	}
}

func TestWorthy_EqualInstantsDifferentZones(t *testing.T) {
	before := doc("d", map[string]FieldValue{
		"endTime": {TimestampValue: ts(t, "2025-05-05T12:00:00Z")},
	})
	after := doc("d", map[string]FieldValue{
		"endTime": {TimestampValue: ts(t, "2025-05-05T14:00:00+02:00")},
	})

	if Worthy(KindExam, before, after) {
		t.Error("the same instant in another zone is not a change")
	}
}

func TestWorthy_UnwatchedFieldChangeIgnored(t *testing.T) {
	before := doc("d", map[string]FieldValue{
		"endTime": {TimestampValue: ts(t, "2025-05-05T12:00:00Z")},
		"title":   {StringValue: str("Algebra")},
	})
	after := doc("d", map[string]FieldValue{
		"endTime": {TimestampValue: ts(t, "2025-05-05T12:00:00Z")},
		"title":   {StringValue: str("Calculus")},
	})

	if Worthy(KindExam, before, after) {
		t.Error("a change outside the watched fields must not be worthy")
	}
}

func TestWorthy_FieldMissingFromOneSnapshotSkipped(t *testing.T) {
	before := doc("d", map[string]FieldValue{
		"startTime": {TimestampValue: ts(t, "2025-05-05T10:00:00Z")},
		"endTime":   {TimestampValue: ts(t, "2025-05-05T12:00:00Z")},
	})
	after := doc("d", map[string]FieldValue{
		"endTime": {TimestampValue: ts(t, "2025-05-05T12:00:00Z")},
	})

	if Worthy(KindExam, before, after) {
		t.Error("a field absent from one snapshot is skipped, not a change")
	}

	// ...unless another watched field differs.
	after.Fields["endTime"] = FieldValue{TimestampValue: ts(t, "2025-05-05T13:00:00Z")}
	if !Worthy(KindExam, before, after) {
		t.Error("the remaining watched field change must still be found")
	}
}

func TestWorthy_StringValuedTimeChange(t *testing.T) {
	// Class end times are stored as "HH:MM" strings.
	before := doc("d", map[string]FieldValue{
		"endTime": {StringValue: str("14:00")},
	})
	after := doc("d", map[string]FieldValue{
		"endTime": {StringValue: str("15:00")},
	})

	if !Worthy(KindClass, before, after) {
		t.Error("a changed string-valued time must be worthy")
	}
}

func TestWorthy_RepresentationSwitchIsChange(t *testing.T) {
	before := doc("d", map[string]FieldValue{
		"endTime": {StringValue: str("14:00")},
	})
	after := doc("d", map[string]FieldValue{
		"endTime": {TimestampValue: ts(t, "2025-05-05T14:00:00Z")},
	})

	if !Worthy(KindClass, before, after) {
		t.Error("a representation switch on a watched field is a change")
	}
}

func TestWorthy_AssignmentWatchesDueTimeOnly(t *testing.T) {
	before := doc("d", map[string]FieldValue{
		"dueTime": {TimestampValue: ts(t, "2025-05-09T23:59:00Z")},
		"endTime": {TimestampValue: ts(t, "2025-05-05T12:00:00Z")},
	})
	after := doc("d", map[string]FieldValue{
		"dueTime": {TimestampValue: ts(t, "2025-05-09T23:59:00Z")},
		"endTime": {TimestampValue: ts(t, "2025-05-05T13:00:00Z")},
	})

	if Worthy(KindAssignment, before, after) {
		t.Error("assignments watch dueTime only")
	}

	after.Fields["dueTime"] = FieldValue{TimestampValue: ts(t, "2025-05-10T23:59:00Z")}
	if !Worthy(KindAssignment, before, after) {
		t.Error("a due time change must be worthy")
	}
}

func TestOwnerFromPath(t *testing.T) {
	name := "projects/p/databases/(default)/documents/users/uid-123/terms/t1/subjects/s1/exams/e1"
	uid, err := OwnerFromPath(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uid != "uid-123" {
		t.Errorf("owner: got %q, want uid-123", uid)
	}

	if _, err := OwnerFromPath("projects/p/databases/(default)/documents/groups/g1"); err == nil {
		t.Error("expected an error for a path without a user segment")
	}
}
