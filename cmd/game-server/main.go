package main

import (
	"context"
	"net/http"
	"time"

	"circle-server/internal/cache"
	"circle-server/internal/circle"
	"circle-server/internal/config"
	"circle-server/internal/logging"
	"circle-server/internal/store"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(cfg.Log); err != nil {
		panic(err)
	}

	st, err := store.New(cfg.Server.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.EnsureSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("ensure schema failed")
	}

	svc := circle.NewService(st, serviceConfig(cfg.Game), nil)

	joinLimiter := cache.NewWindow(cfg.Server.JoinBurst, time.Duration(cfg.Server.JoinWindowSecs)*time.Second)
	joinLimiter.StartJanitor(context.Background(), time.Minute)

	r := newRouter(svc, st, joinLimiter)
	logRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

func serviceConfig(g config.GameConfig) circle.Config {
	cfg := circle.DefaultConfig()
	if g.NightMinutes > 0 {
		cfg.NightDuration = time.Duration(g.NightMinutes) * time.Minute
	}
	if g.DayMinutes > 0 {
		cfg.DayDuration = time.Duration(g.DayMinutes) * time.Minute
	}
	if g.VotingMinutes > 0 {
		cfg.VotingDuration = time.Duration(g.VotingMinutes) * time.Minute
	}
	if g.DayTurnSeconds > 0 {
		cfg.DayTurn = time.Duration(g.DayTurnSeconds) * time.Second
	}
	return cfg
}
