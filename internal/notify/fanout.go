package notify

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Pusher is the delivery service: one best-effort multicast push to a batch
// of opaque tokens. Per-token outcomes are the service's concern.
type Pusher interface {
	Push(ctx context.Context, title, body string, tokens []string) error
}

// Fanout broadcasts one message to every member of a target set.
type Fanout struct {
	resolver *Resolver
	pusher   Pusher
}

func NewFanout(resolver *Resolver, pusher Pusher) *Fanout {
	return &Fanout{resolver: resolver, pusher: pusher}
}

// Notify resolves the target users' tokens and issues one batched delivery
// with title "Update from <group>". An empty target set or zero resolved
// tokens is a logged no-op, not an error.
func (f *Fanout) Notify(ctx context.Context, groupName string, targetIDs []string, body string) error {
	if len(targetIDs) == 0 {
		log.Infof("no members to notify in group %q", groupName)
		return nil
	}

	tokens := f.resolver.Tokens(ctx, targetIDs)
	if len(tokens) == 0 {
		log.Warnf("no delivery tokens found for users to notify in group %q", groupName)
		return nil
	}

	title := "Update from " + groupName
	if err := f.pusher.Push(ctx, title, body, tokens); err != nil {
		return fmt.Errorf("pushing notification for group %q: %w", groupName, err)
	}
	return nil
}
