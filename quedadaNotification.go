// Package quedadaNotification holds the Cloud Functions entrypoints of the
// Quedada notification backend: a scheduled availability sweep and one
// Firestore write trigger per schedule-item kind.
package quedadaNotification

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/quedadaNotification/internal/app"
	"github.com/quedadaNotification/internal/config"
	"github.com/quedadaNotification/internal/watcher"
)

var (
	svc     *app.App
	initErr error
)

func init() {
	log.SetFormatter(&log.JSONFormatter{
		FieldMap: log.FieldMap{log.FieldKeyMsg: "message"},
	})
	log.SetLevel(log.InfoLevel)

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		initErr = err
		log.Errorf("loading config: %s", err)
		return
	}

	svc, err = app.New(ctx, cfg)
	if err != nil {
		initErr = err
		log.Errorf("initializing notification service: %s", err)
	}
}

// NotifyOnFreeMembers is the scheduled trigger, invoked every poll interval.
// The window width matches the trigger cadence, so each ending activity lands
// in exactly one invocation's window.
func NotifyOnFreeMembers(ctx context.Context, _ PubSubMessage) error {
	if svc == nil {
		return initError()
	}

	svc.Poller.Tick(ctx, time.Now())
	return nil
}

// NotifyOnEventWrite handles writes to users/{uid}/events/{id}.
func NotifyOnEventWrite(ctx context.Context, e FirestoreEvent) error {
	return handleWrite(ctx, watcher.KindPersonalEvent, e)
}

// NotifyOnExamWrite handles writes to users/{uid}/terms/{t}/subjects/{s}/exams/{id}.
func NotifyOnExamWrite(ctx context.Context, e FirestoreEvent) error {
	return handleWrite(ctx, watcher.KindExam, e)
}

// NotifyOnAssignmentWrite handles writes to users/{uid}/terms/{t}/subjects/{s}/assignments/{id}.
func NotifyOnAssignmentWrite(ctx context.Context, e FirestoreEvent) error {
	return handleWrite(ctx, watcher.KindAssignment, e)
}

// NotifyOnClassWrite handles writes to users/{uid}/terms/{t}/subjects/{s}/classes/{id}.
func NotifyOnClassWrite(ctx context.Context, e FirestoreEvent) error {
	return handleWrite(ctx, watcher.KindClass, e)
}

// handleWrite runs the change watcher for one document write. Handled
// failures are logged and swallowed so the platform sees a completed
// invocation; only init failure is surfaced.
func handleWrite(ctx context.Context, kind watcher.Kind, e FirestoreEvent) error {
	if svc == nil {
		return initError()
	}

	userID, err := watcher.OwnerFromPath(e.ResourceName())
	if err != nil {
		log.Errorf("resolving document owner: %s", err)
		return nil
	}

	if err := svc.Watcher.HandleWrite(ctx, userID, kind, e.OldValue, e.Value); err != nil {
		log.Errorf("handling %s write for %s: %s", kind, userID, err)
	}
	return nil
}

func initError() error {
	if initErr != nil {
		return initErr
	}
	return errors.New("notification service not initialized")
}
