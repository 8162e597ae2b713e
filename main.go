package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"

	"github.com/abellini/survey-front/api"
	"github.com/abellini/survey-front/app"
	"github.com/abellini/survey-front/config"
	"github.com/abellini/survey-front/database"
	"github.com/abellini/survey-front/log"
	"github.com/abellini/survey-front/routes"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	store, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer store.Close()

	go sweepSessions(store)

	app := app.App{
		Store:  store,
		Client: api.New(cfg.APIBaseURL),
		JWT:    jwtauth.New("HS256", []byte(cfg.SessionSecret), nil),
		Config: cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}

func sweepSessions(store *database.Store) {
	for range time.Tick(10 * time.Minute) {
		n, err := store.DeleteExpired(context.Background())
		if err != nil {
			log.Warn("main.sweep_sessions:", err)
			continue
		}
		if n > 0 {
			log.Debugf("main.sweep_sessions: removed %d expired sessions", n)
		}
	}
}
