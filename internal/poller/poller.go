// Package poller runs the periodic availability sweep: every tick it finds
// the members of each group who just became free and notifies the rest.
package poller

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/quedadaNotification/internal/schedule"
	"github.com/quedadaNotification/internal/store"
)

// Directory reads groups and users.
type Directory interface {
	Groups(ctx context.Context) ([]store.Group, error)
	User(ctx context.Context, id string) (store.User, bool, error)
}

// Classifier decides whether one member just became free in the window.
type Classifier interface {
	JustBecameFree(ctx context.Context, userID string, win schedule.Window) (bool, error)
}

// Notifier broadcasts one message to a group's target members.
type Notifier interface {
	Notify(ctx context.Context, groupName string, targetIDs []string, body string) error
}

type Poller struct {
	dir        Directory
	classifier Classifier
	notifier   Notifier
	width      time.Duration
}

// New creates a Poller whose check window width must equal the tick cadence.
func New(dir Directory, classifier Classifier, notifier Notifier, width time.Duration) *Poller {
	return &Poller{dir: dir, classifier: classifier, notifier: notifier, width: width}
}

// Tick runs one sweep over every group against the window ending at now.
// Groups are independent: one group's failure is logged and the sweep moves
// on to the next.
func (p *Poller) Tick(ctx context.Context, now time.Time) {
	tickLog := log.WithField("run_id", uuid.NewString())

	win := schedule.WindowEnding(now, p.width)
	tickLog.Infof("checking for activities that ended between %s and %s",
		win.From.Format(time.RFC3339), win.To.Format(time.RFC3339))

	groups, err := p.dir.Groups(ctx)
	if err != nil {
		tickLog.Errorf("unable to list groups: %s", err)
		return
	}

	for _, group := range groups {
		if err := p.processGroup(ctx, group, win); err != nil {
			tickLog.Errorf("processing group %s: %s", group.ID, err)
		}
	}
}

func (p *Poller) processGroup(ctx context.Context, group store.Group, win schedule.Window) error {
	if len(group.Members) == 0 {
		return nil
	}

	var freedIDs []string
	var freedNicks []string

	for _, memberID := range group.Members {
		free, err := p.classifier.JustBecameFree(ctx, memberID, win)
		if err != nil {
			// One member's bad data must not silence the rest of the group.
			log.Errorf("classifying member %s: %s", memberID, err)
			continue
		}
		if !free {
			continue
		}

		freedIDs = append(freedIDs, memberID)
		freedNicks = append(freedNicks, p.nick(ctx, memberID))
	}

	if len(freedIDs) == 0 {
		return nil
	}

	log.Infof("members who just became free in %q: %s",
		group.DisplayName(), strings.Join(freedNicks, ", "))

	body := "Now available: " + strings.Join(freedNicks, ", ") + "."
	return p.notifier.Notify(ctx, group.DisplayName(), exclude(group.Members, freedIDs), body)
}

func (p *Poller) nick(ctx context.Context, userID string) string {
	user, ok, err := p.dir.User(ctx, userID)
	if err != nil {
		log.Errorf("unable to fetch user data for %s: %s", userID, err)
	}
	if !ok {
		return store.User{}.DisplayName()
	}
	return user.DisplayName()
}

// exclude returns members minus the freed set, preserving member order.
func exclude(members, freed []string) []string {
	freedSet := make(map[string]struct{}, len(freed))
	for _, id := range freed {
		freedSet[id] = struct{}{}
	}

	var rest []string
	for _, id := range members {
		if _, gone := freedSet[id]; !gone {
			rest = append(rest, id)
		}
	}
	return rest
}
