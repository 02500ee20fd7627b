// Package app wires configuration, clients and components into one service
// graph, built once at process start and shared by every invocation.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go"
	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/quedadaNotification/internal/availability"
	"github.com/quedadaNotification/internal/config"
	"github.com/quedadaNotification/internal/notify"
	"github.com/quedadaNotification/internal/poller"
	"github.com/quedadaNotification/internal/push"
	"github.com/quedadaNotification/internal/store"
	"github.com/quedadaNotification/internal/watcher"
)

type App struct {
	Cfg     config.Config
	Store   *store.Firestore
	Poller  *poller.Poller
	Watcher *watcher.Watcher
}

// New builds the full component graph from configuration. Store and delivery
// clients are constructed here and injected; nothing else holds globals.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	loc, err := time.LoadLocation(cfg.ClassTimezone)
	if err != nil {
		return nil, fmt.Errorf("loading class timezone %q: %w", cfg.ClassTimezone, err)
	}

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   cfg.ProjectID,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firestore client: %w", err)
	}
	st := store.NewFirestore(firestoreClient)

	var pusher notify.Pusher
	switch cfg.PushDriver {
	case "expo":
		pusher = push.NewExpo()
	case "fcm":
		pusher, err = push.NewFCM(ctx, firebaseApp)
		if err != nil {
			return nil, fmt.Errorf("initializing fcm client: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown push driver %q", cfg.PushDriver)
	}

	fanout := notify.NewFanout(notify.NewResolver(st), pusher)
	classifier := availability.NewClassifier(st, loc)

	return &App{
		Cfg:     cfg,
		Store:   st,
		Poller:  poller.New(st, classifier, fanout, cfg.PollInterval),
		Watcher: watcher.New(st, fanout),
	}, nil
}

// Run is the self-hosted daemon mode: a health endpoint plus a ticker that
// sweeps availability every poll interval, until interrupted.
func (a *App) Run(ctx context.Context) error {
	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := &http.Server{
		Addr:         a.Cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("http server error: %s", err)
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("polling availability every %s", a.Cfg.PollInterval)

	ticker := time.NewTicker(a.Cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := srv.Shutdown(shCtx)
			cancel()
			if err != nil {
				log.Warnf("http server shutdown error: %s", err)
			}
			return nil
		case now := <-ticker.C:
			a.Poller.Tick(ctx, now)
		}
	}
}
