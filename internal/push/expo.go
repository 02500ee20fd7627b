// Package push implements the delivery drivers behind the Pusher interface:
// Firebase Cloud Messaging (default) and Expo.
package push

import (
	"context"
	"errors"

	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
	log "github.com/sirupsen/logrus"
)

// Expo delivers through the Expo push service.
type Expo struct {
	client *expo.PushClient
}

func NewExpo() *Expo {
	return &Expo{client: expo.NewPushClient(nil)}
}

// Push sends one multicast message. Tokens that fail Expo's format check are
// skipped; per-token delivery receipts are not inspected.
func (p *Expo) Push(_ context.Context, title, body string, tokens []string) error {
	expoTokens := make([]expo.ExponentPushToken, 0, len(tokens))
	for _, raw := range tokens {
		token, err := expo.NewExponentPushToken(raw)
		if err != nil {
			log.Errorf("invalid expo token: %s", err)
			continue
		}
		expoTokens = append(expoTokens, token)
	}

	if len(expoTokens) == 0 {
		return errors.New("no valid expo tokens to send notification")
	}

	pushMessage := &expo.PushMessage{
		To:       expoTokens,
		Body:     body,
		Sound:    "default",
		Title:    title,
		Priority: expo.DefaultPriority,
	}

	response, err := p.client.Publish(pushMessage)
	if err != nil {
		return err
	}

	if response.ValidateResponse() != nil {
		log.Error(response.PushMessage.To, "failed")
	}

	return nil
}
