package circle

import (
	"time"

	"circle-server/internal/game"
)

type CreateParams struct {
	MaxPlayers     int
	PresenceMode   bool
	AxyChatBridge  bool
	VotingChatMode string
	HostName       string
}

// UpdateSettingsParams carries lobby setting changes; nil fields keep the
// current value.
type UpdateSettingsParams struct {
	MaxPlayers     *int
	PresenceMode   *bool
	AxyChatBridge  *bool
	VotingChatMode *string
}

const (
	VotingChatClosed    = "closed"
	VotingChatOpenShort = "open_short"
)

// NightOutcome is the resolved result of one night.
type NightOutcome struct {
	VictimID       string      `json:"victim_id,omitempty"`
	ProtectedID    string      `json:"protected_id,omitempty"`
	ShadowTargetID string      `json:"shadow_target_id,omitempty"`
	Winner         game.Winner `json:"winner,omitempty"`
	Status         game.Phase  `json:"status"`
}

// VoteOutcome is the resolved result of one exile vote.
type VoteOutcome struct {
	ExiledID    string         `json:"exiled_id,omitempty"`
	ExiledRole  game.Role      `json:"exiled_role,omitempty"`
	Tie         bool           `json:"tie"`
	Tally       map[string]int `json:"tally"`
	Winner      game.Winner    `json:"winner,omitempty"`
	Status      game.Phase     `json:"status"`
	RoundNo     int            `json:"round_no"`
}

// TurnOutcome reports where the day rotation landed after an advance.
type TurnOutcome struct {
	CurrentSpeakerID string     `json:"current_speaker_id,omitempty"`
	Status           game.Phase `json:"status"`
}

// View is the full session state filtered for one viewer.
type View struct {
	Session  SessionView   `json:"session"`
	Players  []PlayerView  `json:"players"`
	Events   []EventView   `json:"events"`
	Messages []MessageView `json:"messages"`
	You      PlayerView    `json:"you"`
}

type SessionView struct {
	ID               string     `json:"id"`
	Code             string     `json:"code"`
	Status           string     `json:"status"`
	RoundNo          int        `json:"round_no"`
	MinPlayers       int        `json:"min_players"`
	MaxPlayers       int        `json:"max_players"`
	PresenceMode     bool       `json:"presence_mode"`
	AxyChatBridge    bool       `json:"axy_chat_bridge"`
	VotingChatMode   string     `json:"voting_chat_mode"`
	CurrentSpeakerID string     `json:"current_speaker_id,omitempty"`
	PhaseDeadline    *time.Time `json:"phase_deadline,omitempty"`
	Winner           string     `json:"winner,omitempty"`
	HostPlayerID     string     `json:"host_player_id,omitempty"`
}

type PlayerView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	IsAI            bool   `json:"is_ai"`
	SeatNo          int    `json:"seat_no"`
	IsAlive         bool   `json:"is_alive"`
	EliminationType string `json:"elimination_type,omitempty"`
	// Role is filled for the viewer's own seat and for publicly revealed roles.
	Role string `json:"role,omitempty"`
}

type EventView struct {
	RoundNo   int       `json:"round_no"`
	Phase     string    `json:"phase"`
	Scope     string    `json:"scope"`
	EventType string    `json:"event_type"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageView struct {
	SenderPlayerID string    `json:"sender_player_id"`
	SenderName     string    `json:"sender_name"`
	RoundNo        int       `json:"round_no"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
