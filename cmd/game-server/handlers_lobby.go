package main

import (
	"encoding/json"
	"net/http"

	"circle-server/internal/circle"
	"circle-server/internal/store"
)

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			writeHTTPError(w, http.StatusServiceUnavailable, "db_unreachable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

func createSessionHandler(svc *circle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name           string `json:"name"`
			MaxPlayers     int    `json:"max_players"`
			PresenceMode   bool   `json:"presence_mode"`
			AxyChatBridge  bool   `json:"axy_chat_bridge"`
			VotingChatMode string `json:"voting_chat_mode"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		sess, host, err := svc.CreateSession(r.Context(), userID(r), circle.CreateParams{
			MaxPlayers:     body.MaxPlayers,
			PresenceMode:   body.PresenceMode,
			AxyChatBridge:  body.AxyChatBridge,
			VotingChatMode: body.VotingChatMode,
			HostName:       body.Name,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"session_id":     sess.ID,
			"code":           sess.Code,
			"host_player_id": host.ID,
		})
	}
}

func joinSessionHandler(svc *circle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Code string `json:"code"`
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		sess, player, err := svc.JoinSession(r.Context(), userID(r), body.Code, body.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"session_id": sess.ID,
			"player_id":  player.ID,
			"seat_no":    player.SeatNo,
		})
	}
}

func addAIPlayerHandler(svc *circle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		player, err := svc.AddAIPlayer(r.Context(), userID(r), sessionIDParam(r), body.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"player_id": player.ID,
			"seat_no":   player.SeatNo,
		})
	}
}

func updateSettingsHandler(svc *circle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MaxPlayers     *int    `json:"max_players"`
			PresenceMode   *bool   `json:"presence_mode"`
			AxyChatBridge  *bool   `json:"axy_chat_bridge"`
			VotingChatMode *string `json:"voting_chat_mode"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		sess, err := svc.UpdateSettings(r.Context(), userID(r), sessionIDParam(r), circle.UpdateSettingsParams{
			MaxPlayers:     body.MaxPlayers,
			PresenceMode:   body.PresenceMode,
			AxyChatBridge:  body.AxyChatBridge,
			VotingChatMode: body.VotingChatMode,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"max_players":      sess.MaxPlayers,
			"presence_mode":    sess.PresenceMode,
			"axy_chat_bridge":  sess.AxyChatBridge,
			"voting_chat_mode": sess.VotingChatMode,
		})
	}
}
