package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/quedadaNotification/internal/app"
	"github.com/quedadaNotification/internal/config"
)

func main() {
	_ = godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{
		FieldMap: log.FieldMap{log.FieldKeyMsg: "message"},
	})

	cfg, err := config.Load()
	if err != nil {
		log.Errorf("loading config: %s", err)
		os.Exit(2)
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx := context.Background()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("initializing notification service: %s", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("running notification service: %s", err)
	}
}
