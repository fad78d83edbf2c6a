package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"circle-server/internal/cache"
	"circle-server/internal/circle"
	"circle-server/internal/logging"
	"circle-server/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
)

func apiLogMiddleware() func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(slog.NewJSONHandler(logging.Writer(), &slog.HandlerOptions{})),
		&httplog.Options{
			Level:              slog.LevelInfo,
			Schema:             httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogRequestBody:     func(*http.Request) bool { return false },
			LogResponseBody:    func(*http.Request) bool { return false },
			LogRequestHeaders:  []string{},
			LogResponseHeaders: []string{},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				rc := chi.RouteContext(req.Context())
				route := req.URL.Path
				if rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("method", req.Method),
					slog.String("route", route),
					slog.String("path", req.URL.Path),
				}
			},
		},
	)
}

type userIDKey struct{}

// requireUserID resolves caller identity from the X-User-ID header. Identity
// is trusted input here; authentication lives in the fronting gateway.
func requireUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := r.Header.Get("X-User-ID")
		if uid == "" {
			writeHTTPError(w, http.StatusUnauthorized, "missing_user_id")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey{}, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) string {
	uid, _ := r.Context().Value(userIDKey{}).(string)
	return uid
}

func joinRateLimit(limiter *cache.Window) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.RemoteAddr) {
				writeHTTPError(w, http.StatusTooManyRequests, "rate_limited")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionIDParam(r *http.Request) string {
	return chi.URLParam(r, "session_id")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTTPError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code})
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	code := err.Error()
	if status == http.StatusInternalServerError {
		code = "internal_error"
	}
	writeHTTPError(w, status, code)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, circle.ErrSessionNotFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, circle.ErrWrongPhase), errors.Is(err, circle.ErrPhaseConflict):
		return http.StatusConflict
	case errors.Is(err, circle.ErrNotHost),
		errors.Is(err, circle.ErrNotSeated),
		errors.Is(err, circle.ErrNotAlive),
		errors.Is(err, circle.ErrNotYourTurn):
		return http.StatusForbidden
	case errors.Is(err, circle.ErrInvalidRequest),
		errors.Is(err, circle.ErrInvalidTarget),
		errors.Is(err, circle.ErrTargetNotAlive),
		errors.Is(err, circle.ErrSelfTarget),
		errors.Is(err, circle.ErrNoNightRole),
		errors.Is(err, circle.ErrMessageTooLong),
		errors.Is(err, circle.ErrEmptyMessage),
		errors.Is(err, circle.ErrVotingChatClosed),
		errors.Is(err, circle.ErrPresenceModeOff),
		errors.Is(err, circle.ErrCircleFull),
		errors.Is(err, circle.ErrNotEnoughPlayers),
		errors.Is(err, circle.ErrAlreadyJoined):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
