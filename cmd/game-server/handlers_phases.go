package main

import (
	"net/http"

	"circle-server/internal/circle"
)

func startSessionHandler(svc *circle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svc.StartSession(r.Context(), userID(r), sessionIDParam(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   sess.Status,
			"round_no": sess.RoundNo,
		})
	}
}

func resolveNightHandler(svc *circle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, err := svc.ResolveNight(r.Context(), userID(r), sessionIDParam(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, outcome)
	}
}

func advanceDayTurnHandler(svc *circle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, err := svc.AdvanceDayTurn(r.Context(), userID(r), sessionIDParam(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, outcome)
	}
}

func beginVotingHandler(svc *circle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, err := svc.BeginVoting(r.Context(), userID(r), sessionIDParam(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, outcome)
	}
}

func resolveVoteHandler(svc *circle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, err := svc.ResolveVote(r.Context(), userID(r), sessionIDParam(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, outcome)
	}
}

func syncAIHandler(svc *circle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.SyncAI(r.Context(), userID(r), sessionIDParam(r)); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}
