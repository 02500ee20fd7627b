package watcher

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/quedadaNotification/internal/store"
)

// Membership reads the owner's profile and group memberships.
type Membership interface {
	User(ctx context.Context, id string) (store.User, bool, error)
	GroupsWithMember(ctx context.Context, userID string) ([]store.Group, error)
}

// Notifier broadcasts one message to a group's target members.
type Notifier interface {
	Notify(ctx context.Context, groupName string, targetIDs []string, body string) error
}

type Watcher struct {
	dir      Membership
	notifier Notifier
}

func New(dir Membership, notifier Notifier) *Watcher {
	return &Watcher{dir: dir, notifier: notifier}
}

// HandleWrite processes one schedule-item write for the owning user. If the
// write is worthy it notifies the other members of every group the owner
// belongs to. Group failures are isolated from each other.
func (w *Watcher) HandleWrite(ctx context.Context, userID string, kind Kind, before, after Document) error {
	if !Worthy(kind, before, after) {
		log.Debugf("ignoring %s write for %s: no watched field changed", kind, userID)
		return nil
	}

	nick := w.nick(ctx, userID)

	groups, err := w.dir.GroupsWithMember(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolving groups for %s: %w", userID, err)
	}

	body := nick + " has updated their calendar. Their availability may have changed."

	for _, group := range groups {
		targets := othersIn(group, userID)
		if len(targets) == 0 {
			continue
		}
		if err := w.notifier.Notify(ctx, group.DisplayName(), targets, body); err != nil {
			log.Errorf("notifying group %s: %s", group.ID, err)
		}
	}

	return nil
}

func (w *Watcher) nick(ctx context.Context, userID string) string {
	user, ok, err := w.dir.User(ctx, userID)
	if err != nil {
		log.Errorf("unable to fetch user data for %s: %s", userID, err)
	}
	if !ok {
		return store.User{}.DisplayName()
	}
	return user.DisplayName()
}

// othersIn returns the group's members minus the writing user.
func othersIn(group store.Group, userID string) []string {
	var others []string
	for _, member := range group.Members {
		if member != userID {
			others = append(others, member)
		}
	}
	return others
}
