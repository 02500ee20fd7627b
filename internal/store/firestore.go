// Package store reads the app's Firestore collections. All access is
// read-only: groups, users and schedule items are owned by the app backend.
package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/quedadaNotification/internal/schedule"
)

const (
	groupCollection   = "groups"
	userCollection    = "users"
	eventCollection   = "events"
	termCollection    = "terms"
	subjectCollection = "subjects"
	examCollection    = "exams"
	classCollection   = "classes"

	endTimeField = "endTime"
	membersField = "members"
)

// Firestore is the Firestore-backed document store.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

// Groups lists every group.
func (s *Firestore) Groups(ctx context.Context) ([]Group, error) {
	return s.readGroups(ctx, s.client.Collection(groupCollection).Documents(ctx))
}

// GroupsWithMember lists the groups whose member list contains userID.
func (s *Firestore) GroupsWithMember(ctx context.Context, userID string) ([]Group, error) {
	query := s.client.Collection(groupCollection).
		Where(membersField, "array-contains", userID)
	return s.readGroups(ctx, query.Documents(ctx))
}

func (s *Firestore) readGroups(ctx context.Context, iter *firestore.DocumentIterator) ([]Group, error) {
	defer iter.Stop()

	var groups []Group
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return groups, nil
		}
		if err != nil {
			return nil, fmt.Errorf("listing groups: %w", err)
		}

		var group Group
		if err := doc.DataTo(&group); err != nil {
			log.Errorf("unable to unmarshal group data for %s", doc.Ref.ID)
			continue
		}
		group.ID = doc.Ref.ID
		groups = append(groups, group)
	}
}

// User reads one user document. A missing document is reported via ok=false,
// not as an error.
func (s *Firestore) User(ctx context.Context, id string) (User, bool, error) {
	doc, err := s.client.Collection(userCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, fmt.Errorf("fetching user %s: %w", id, err)
	}

	var user User
	if err := doc.DataTo(&user); err != nil {
		return User{}, false, fmt.Errorf("unmarshaling user %s: %w", id, err)
	}
	user.ID = doc.Ref.ID
	return user, true, nil
}

// PersonalEventEndedIn reports whether any of the user's personal events has
// an end instant inside the window.
func (s *Firestore) PersonalEventEndedIn(ctx context.Context, userID string, win schedule.Window) (bool, error) {
	return s.anyEndedIn(ctx, s.userRef(userID).Collection(eventCollection), win)
}

// ExamEndedIn reports whether any exam of the given term and subject has an
// end instant inside the window.
func (s *Firestore) ExamEndedIn(ctx context.Context, userID, termID, subjectID string, win schedule.Window) (bool, error) {
	exams := s.subjectRef(userID, termID, subjectID).Collection(examCollection)
	return s.anyEndedIn(ctx, exams, win)
}

func (s *Firestore) anyEndedIn(ctx context.Context, coll *firestore.CollectionRef, win schedule.Window) (bool, error) {
	iter := coll.
		Where(endTimeField, ">=", win.From).
		Where(endTimeField, "<=", win.To).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying %s: %w", coll.Path, err)
	}
	return true, nil
}

// Terms lists the ids of the user's academic terms.
func (s *Firestore) Terms(ctx context.Context, userID string) ([]string, error) {
	return s.listIDs(ctx, s.userRef(userID).Collection(termCollection))
}

// Subjects lists the ids of the subjects under one term.
func (s *Firestore) Subjects(ctx context.Context, userID, termID string) ([]string, error) {
	subjects := s.userRef(userID).Collection(termCollection).Doc(termID).Collection(subjectCollection)
	return s.listIDs(ctx, subjects)
}

func (s *Firestore) listIDs(ctx context.Context, coll *firestore.CollectionRef) ([]string, error) {
	iter := coll.DocumentRefs(ctx)

	var ids []string
	for {
		ref, err := iter.Next()
		if err == iterator.Done {
			return ids, nil
		}
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", coll.Path, err)
		}
		ids = append(ids, ref.ID)
	}
}

// Classes lists the recurring class slots under one subject.
func (s *Firestore) Classes(ctx context.Context, userID, termID, subjectID string) ([]schedule.RecurringWeeklySlot, error) {
	classes := s.subjectRef(userID, termID, subjectID).Collection(classCollection)
	iter := classes.Documents(ctx)
	defer iter.Stop()

	var slots []schedule.RecurringWeeklySlot
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return slots, nil
		}
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", classes.Path, err)
		}

		var cls classDoc
		if err := doc.DataTo(&cls); err != nil {
			log.Errorf("unable to unmarshal class data for %s", doc.Ref.ID)
			continue
		}
		slots = append(slots, schedule.RecurringWeeklySlot{
			DayOfWeek: cls.DayOfWeek,
			EndOfDay:  cls.EndTime,
		})
	}
}

func (s *Firestore) userRef(userID string) *firestore.DocumentRef {
	return s.client.Collection(userCollection).Doc(userID)
}

func (s *Firestore) subjectRef(userID, termID, subjectID string) *firestore.DocumentRef {
	return s.userRef(userID).
		Collection(termCollection).Doc(termID).
		Collection(subjectCollection).Doc(subjectID)
}
