package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds service configuration loaded from environment variables.
//
// PollInterval doubles as the classifier's window width so the two can never
// drift apart: an activity ends inside exactly one tick's window.
type Config struct {
	ProjectID   string `envconfig:"FIREBASE_PROJECT_ID" required:"true"`
	DatabaseURL string `envconfig:"FIREBASE_DATABASE_URL" default:""`

	PushDriver string `envconfig:"PUSH_DRIVER" default:"fcm"` // fcm|expo

	// ClassTimezone is the operational timezone recurring class times are
	// interpreted in.
	ClassTimezone string        `envconfig:"CLASS_TIMEZONE" default:"Europe/Madrid"`
	PollInterval  time.Duration `envconfig:"POLL_INTERVAL" default:"5m"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
