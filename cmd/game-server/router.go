package main

import (
	"net/http"

	"circle-server/internal/cache"
	"circle-server/internal/circle"
	"circle-server/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func newRouter(svc *circle.Service, st *store.Store, joinLimiter *cache.Window) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", healthHandler(st))

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Use(requireUserID)

		r.Post("/circles", createSessionHandler(svc))
		r.With(joinRateLimit(joinLimiter)).Post("/circles/join", joinSessionHandler(svc))

		r.Route("/circles/{session_id}", func(r chi.Router) {
			r.Get("/", viewHandler(svc))
			r.Post("/ai-players", addAIPlayerHandler(svc))
			r.Patch("/settings", updateSettingsHandler(svc))
			r.Post("/start", startSessionHandler(svc))

			r.Post("/night-action", nightActionHandler(svc))
			r.Post("/resolve-night", resolveNightHandler(svc))
			r.Post("/messages", dayMessageHandler(svc))
			r.Post("/advance-turn", advanceDayTurnHandler(svc))
			r.Post("/begin-voting", beginVotingHandler(svc))
			r.Post("/vote", voteHandler(svc))
			r.Post("/resolve-vote", resolveVoteHandler(svc))
			r.Post("/sync-ai", syncAIHandler(svc))
		})
	})

	return r
}

func logRoutes(r chi.Router) {
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		log.Info().Str("method", method).Str("route", route).Msg("route registered")
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("route walk failed")
	}
}
