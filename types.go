package quedadaNotification

import "github.com/quedadaNotification/internal/watcher"

// FirestoreEvent is the payload of a Firestore document-write trigger.
type FirestoreEvent = watcher.FirestoreEvent

// PubSubMessage is the payload of the scheduled trigger. The sweep derives
// everything from the invocation time, so the message body is unused.
type PubSubMessage struct {
	Data []byte `json:"data"`
}
