// Package watcher reacts to schedule-item document writes: it decides which
// writes are worth a notification and fans out to the owner's groups.
package watcher

// Kind identifies the schedule-item type a trigger fired for.
type Kind string

const (
	KindPersonalEvent Kind = "event"
	KindExam          Kind = "exam"
	KindAssignment    Kind = "assignment"
	KindClass         Kind = "class"
)

// watchedFields lists, per kind, the time fields whose change means the
// owner's availability may have shifted.
var watchedFields = map[Kind][]string{
	KindPersonalEvent: {"startTime", "endTime"},
	KindExam:          {"startTime", "endTime"},
	KindAssignment:    {"dueTime"},
	KindClass:         {"startTime", "endTime"},
}

// Worthy reports whether a document write should trigger a notification:
// any creation or deletion, or a change to one of the kind's watched fields.
// A field missing from either snapshot is skipped, not treated as a change.
func Worthy(kind Kind, before, after Document) bool {
	if !before.Exists() || !after.Exists() {
		return true
	}

	for _, field := range watchedFields[kind] {
		oldValue, hadOld := before.Fields[field]
		newValue, hasNew := after.Fields[field]
		if !hadOld || !hasNew {
			continue
		}
		if changed(oldValue, newValue) {
			return true
		}
	}

	return false
}

// changed compares one watched field across snapshots. Timestamps compare by
// instant, strings by equality. A value that switched representation between
// snapshots counts as changed.
func changed(before, after FieldValue) bool {
	switch {
	case before.TimestampValue != nil && after.TimestampValue != nil:
		return !before.TimestampValue.Equal(*after.TimestampValue)
	case before.StringValue != nil && after.StringValue != nil:
		return *before.StringValue != *after.StringValue
	case before.IntegerValue != nil && after.IntegerValue != nil:
		return *before.IntegerValue != *after.IntegerValue
	case before == (FieldValue{}) && after == (FieldValue{}):
		return false
	default:
		return true
	}
}
