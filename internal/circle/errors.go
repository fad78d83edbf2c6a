package circle

import "errors"

// Rejections are normal, expected outcomes of misuse. None leave side effects
// and none are retried internally.
var (
	// validation
	ErrInvalidRequest   = errors.New("invalid_request")
	ErrInvalidTarget    = errors.New("invalid_target")
	ErrTargetNotAlive   = errors.New("target_not_alive")
	ErrSelfTarget       = errors.New("self_target_not_allowed")
	ErrNoNightRole      = errors.New("no_night_action_for_role")
	ErrMessageTooLong   = errors.New("message_too_long")
	ErrEmptyMessage     = errors.New("empty_message")
	ErrVotingChatClosed = errors.New("voting_chat_closed")
	ErrPresenceModeOff  = errors.New("presence_mode_disabled")

	// phase violation
	ErrWrongPhase = errors.New("wrong_phase")
	// ErrPhaseConflict marks a lost compare-and-swap: a concurrent host call
	// already moved the session out of the expected phase.
	ErrPhaseConflict = errors.New("phase_conflict")

	// authorization
	ErrNotHost     = errors.New("not_host")
	ErrNotSeated   = errors.New("not_seated")
	ErrNotAlive    = errors.New("player_not_alive")
	ErrNotYourTurn = errors.New("not_your_turn")

	// not-found
	ErrSessionNotFound = errors.New("session_not_found")

	// capacity
	ErrCircleFull       = errors.New("circle_full")
	ErrNotEnoughPlayers = errors.New("not_enough_players")
	ErrAlreadyJoined    = errors.New("already_joined")
)
