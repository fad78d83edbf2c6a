package store

import "time"

type Session struct {
	ID               string
	Code             string
	HostUserID       string
	Status           string
	RoundNo          int
	MinPlayers       int
	MaxPlayers       int
	PresenceMode     bool
	AxyChatBridge    bool
	VotingChatMode   string
	CurrentSpeakerID string
	SpeakerOrder     []string
	SpeakerIdx       int
	PhaseDeadline    *time.Time
	Winner           string
	CreatedAt        time.Time
}

type Player struct {
	ID              string
	SessionID       string
	UserID          string // empty for AI seats
	Name            string
	IsAI            bool
	SeatNo          int
	Role            string
	IsAlive         bool
	EliminationType string
	RevealedRole    string
	CreatedAt       time.Time
}

type NightAction struct {
	ID             int64
	SessionID      string
	RoundNo        int
	ActorPlayerID  string
	ActionType     string
	TargetPlayerID string
	CreatedAt      time.Time
}

type Vote struct {
	ID             int64
	SessionID      string
	RoundNo        int
	VoterPlayerID  string
	TargetPlayerID string
	CreatedAt      time.Time
}

type Event struct {
	ID             int64
	SessionID      string
	RoundNo        int
	Phase          string
	Scope          string // public | private
	TargetPlayerID string // private events only
	EventType      string
	Content        string
	CreatedAt      time.Time
}

type DayMessage struct {
	ID             int64
	SessionID      string
	RoundNo        int
	SenderPlayerID string
	Content        string
	CreatedAt      time.Time
}
