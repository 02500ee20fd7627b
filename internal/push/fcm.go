package push

import (
	"context"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	log "github.com/sirupsen/logrus"
)

// FCM delivers through Firebase Cloud Messaging.
type FCM struct {
	client *messaging.Client
}

func NewFCM(ctx context.Context, app *firebase.App) (*FCM, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}
	return &FCM{client: client}, nil
}

// Push sends one multicast message. Per-token failures are counted by the
// service and surfaced here only as a warning.
func (p *FCM) Push(ctx context.Context, title, body string, tokens []string) error {
	response, err := p.client.SendMulticast(ctx, &messaging.MulticastMessage{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Tokens: tokens,
	})
	if err != nil {
		return err
	}

	if response.FailureCount > 0 {
		log.Warnf("fcm multicast: %d of %d tokens failed", response.FailureCount, len(tokens))
	}

	return nil
}
