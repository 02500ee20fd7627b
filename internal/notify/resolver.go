// Package notify resolves delivery tokens for a set of users and fans one
// notification out to all of them in a single batched push.
package notify

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/quedadaNotification/internal/store"
)

// UserSource reads user documents for token resolution.
type UserSource interface {
	User(ctx context.Context, id string) (store.User, bool, error)
}

// Resolver turns user ids into the union of their registered delivery tokens.
type Resolver struct {
	users UserSource
}

func NewResolver(users UserSource) *Resolver {
	return &Resolver{users: users}
}

// Tokens collects the tokens of every listed user, deduplicated across and
// within users, in first-seen order. An empty input returns immediately
// without touching the store. Missing or unreadable users are skipped.
func (r *Resolver) Tokens(ctx context.Context, userIDs []string) []string {
	if len(userIDs) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var tokens []string

	for _, id := range userIDs {
		user, ok, err := r.users.User(ctx, id)
		if err != nil {
			log.Errorf("unable to fetch user data for %s: %s", id, err)
			continue
		}
		if !ok {
			continue
		}

		for _, token := range user.Tokens {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}

	return tokens
}
