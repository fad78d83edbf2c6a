package circle

import (
	"context"
	"errors"
	"strings"

	"circle-server/internal/game"
	"circle-server/internal/store"
)

// MaxPlayersCap bounds how large a circle can be configured.
const MaxPlayersCap = 16

const joinCodeAttempts = 5

// CreateSession opens a new lobby and seats the host at seat 0.
func (s *Service) CreateSession(ctx context.Context, hostUserID string, params CreateParams) (*store.Session, *store.Player, error) {
	if hostUserID == "" {
		return nil, nil, ErrInvalidRequest
	}
	if params.MaxPlayers < game.MinPlayers || params.MaxPlayers > MaxPlayersCap {
		return nil, nil, ErrInvalidRequest
	}
	switch params.VotingChatMode {
	case VotingChatClosed, VotingChatOpenShort:
	case "":
		params.VotingChatMode = VotingChatClosed
	default:
		return nil, nil, ErrInvalidRequest
	}
	hostName := strings.TrimSpace(params.HostName)
	if hostName == "" {
		return nil, nil, ErrInvalidRequest
	}

	sess := &store.Session{
		ID:             store.NewID(),
		HostUserID:     hostUserID,
		Status:         string(game.PhaseLobby),
		RoundNo:        0,
		MinPlayers:     game.MinPlayers,
		MaxPlayers:     params.MaxPlayers,
		PresenceMode:   params.PresenceMode,
		AxyChatBridge:  params.AxyChatBridge,
		VotingChatMode: params.VotingChatMode,
	}
	var err error
	for i := 0; i < joinCodeAttempts; i++ {
		sess.Code = store.NewJoinCode()
		if _, lookupErr := s.storage.GetSessionByCode(ctx, sess.Code); errors.Is(lookupErr, store.ErrNotFound) {
			break
		} else if lookupErr != nil {
			return nil, nil, lookupErr
		}
		sess.Code = ""
	}
	if sess.Code == "" {
		return nil, nil, errors.New("join_code_exhausted")
	}
	if err = s.storage.CreateSession(ctx, sess); err != nil {
		return nil, nil, err
	}

	host := &store.Player{
		ID:        store.NewID(),
		SessionID: sess.ID,
		UserID:    hostUserID,
		Name:      hostName,
		SeatNo:    0,
		IsAlive:   true,
	}
	if err = s.storage.CreatePlayer(ctx, host); err != nil {
		return nil, nil, err
	}
	return sess, host, nil
}

// JoinSession seats a user in a lobby found by its join code.
func (s *Service) JoinSession(ctx context.Context, userID, code, name string) (*store.Session, *store.Player, error) {
	name = strings.TrimSpace(name)
	if userID == "" || name == "" {
		return nil, nil, ErrInvalidRequest
	}
	sess, err := s.storage.GetSessionByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}
	if sess.Status != string(game.PhaseLobby) {
		return nil, nil, ErrWrongPhase
	}
	players, err := s.storage.ListPlayers(ctx, sess.ID)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range players {
		if !p.IsAI && p.UserID == userID {
			return nil, nil, ErrAlreadyJoined
		}
	}
	if len(players) >= sess.MaxPlayers {
		return nil, nil, ErrCircleFull
	}

	player := &store.Player{
		ID:        store.NewID(),
		SessionID: sess.ID,
		UserID:    userID,
		Name:      name,
		SeatNo:    nextSeatNo(players),
		IsAlive:   true,
	}
	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		return nil, nil, err
	}
	return sess, player, nil
}

// AddAIPlayer seats an AI-controlled player. Host only, lobby only.
func (s *Service) AddAIPlayer(ctx context.Context, hostUserID, sessionID, name string) (*store.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidRequest
	}
	sess, err := s.hostSession(ctx, hostUserID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != string(game.PhaseLobby) {
		return nil, ErrWrongPhase
	}
	players, err := s.storage.ListPlayers(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if len(players) >= sess.MaxPlayers {
		return nil, ErrCircleFull
	}
	player := &store.Player{
		ID:        store.NewID(),
		SessionID: sess.ID,
		Name:      name,
		IsAI:      true,
		SeatNo:    nextSeatNo(players),
		IsAlive:   true,
	}
	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// UpdateSettings tunes lobby settings before the game starts. Presence mode
// locks at start_session because the lobby is the only writable phase.
func (s *Service) UpdateSettings(ctx context.Context, hostUserID, sessionID string, params UpdateSettingsParams) (*store.Session, error) {
	sess, err := s.hostSession(ctx, hostUserID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != string(game.PhaseLobby) {
		return nil, ErrWrongPhase
	}
	if params.MaxPlayers != nil {
		players, err := s.storage.ListPlayers(ctx, sess.ID)
		if err != nil {
			return nil, err
		}
		if *params.MaxPlayers < game.MinPlayers || *params.MaxPlayers > MaxPlayersCap || *params.MaxPlayers < len(players) {
			return nil, ErrInvalidRequest
		}
		sess.MaxPlayers = *params.MaxPlayers
	}
	if params.PresenceMode != nil {
		sess.PresenceMode = *params.PresenceMode
	}
	if params.AxyChatBridge != nil {
		sess.AxyChatBridge = *params.AxyChatBridge
	}
	if params.VotingChatMode != nil {
		switch *params.VotingChatMode {
		case VotingChatClosed, VotingChatOpenShort:
			sess.VotingChatMode = *params.VotingChatMode
		default:
			return nil, ErrInvalidRequest
		}
	}
	if err := s.storage.UpdateSessionSettings(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func nextSeatNo(players []store.Player) int {
	next := 0
	for _, p := range players {
		if p.SeatNo >= next {
			next = p.SeatNo + 1
		}
	}
	return next
}
