package watcher

import (
	"fmt"
	"strings"
	"time"
)

// FirestoreEvent is the payload a Firestore document trigger delivers. On
// creation OldValue is absent; on deletion Value is absent.
type FirestoreEvent struct {
	OldValue   Document   `json:"oldValue"`
	Value      Document   `json:"value"`
	UpdateMask UpdateMask `json:"updateMask"`
}

type UpdateMask struct {
	FieldPaths []string `json:"fieldPaths"`
}

// Document is one document snapshot in trigger wire format: every field value
// is wrapped in a type-tagged envelope.
type Document struct {
	CreateTime time.Time             `json:"createTime"`
	UpdateTime time.Time             `json:"updateTime"`
	Name       string                `json:"name"`
	Fields     map[string]FieldValue `json:"fields"`
}

// Exists reports whether the snapshot holds a document at all.
func (d Document) Exists() bool {
	return d.Name != ""
}

// FieldValue is the wire envelope for a single field. Only the variants the
// watched schedule fields can carry are decoded.
type FieldValue struct {
	TimestampValue *time.Time `json:"timestampValue,omitempty"`
	StringValue    *string    `json:"stringValue,omitempty"`
	IntegerValue   *string    `json:"integerValue,omitempty"`
}

// ResourceName returns the document path of the event, from whichever
// snapshot is present.
func (e FirestoreEvent) ResourceName() string {
	if e.Value.Exists() {
		return e.Value.Name
	}
	return e.OldValue.Name
}

// OwnerFromPath extracts the owning user id from a document resource name of
// the form ".../documents/users/{uid}/...".
func OwnerFromPath(name string) (string, error) {
	segments := strings.Split(name, "/")
	for i, segment := range segments {
		if segment == "users" && i+1 < len(segments) {
			return segments[i+1], nil
		}
	}
	return "", fmt.Errorf("no user segment in document path %q", name)
}
