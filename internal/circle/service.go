package circle

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"circle-server/internal/game"
	"circle-server/internal/store"

	"github.com/rs/zerolog/log"
)

// Config holds phase timing knobs. Deadlines are stamped on transitions for
// the UI; enforcement is the caller's concern.
type Config struct {
	NightDuration  time.Duration
	DayDuration    time.Duration
	VotingDuration time.Duration
	DayTurn        time.Duration
}

func DefaultConfig() Config {
	return Config{
		NightDuration:  2 * time.Minute,
		DayDuration:    5 * time.Minute,
		VotingDuration: 2 * time.Minute,
		DayTurn:        game.DayTurnSeconds * time.Second,
	}
}

// Service drives a circle session: lobby lifecycle, the phase state machine,
// resolution, and the event log. Every command is a single synchronous
// read-resolve-write against Storage.
type Service struct {
	storage Storage
	cfg     Config

	rndMu sync.Mutex
	rnd   *rand.Rand
	ai    *game.AIPolicy
}

func NewService(storage Storage, cfg Config, rnd *rand.Rand) *Service {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		storage: storage,
		cfg:     cfg,
		rnd:     rnd,
		ai:      game.NewAIPolicy(rnd),
	}
}

func (s *Service) deadline(d time.Duration) *time.Time {
	t := time.Now().Add(d)
	return &t
}

func (s *Service) session(ctx context.Context, id string) (*store.Session, error) {
	sess, err := s.storage.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *Service) hostSession(ctx context.Context, userID, sessionID string) (*store.Session, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.HostUserID != userID {
		return nil, ErrNotHost
	}
	return sess, nil
}

// seatedPlayer resolves the caller's seat in a session.
func seatedPlayer(players []store.Player, userID string) (*store.Player, error) {
	for i := range players {
		if !players[i].IsAI && players[i].UserID == userID {
			return &players[i], nil
		}
	}
	return nil, ErrNotSeated
}

func roster(players []store.Player) *game.Roster {
	seats := make([]game.Seat, 0, len(players))
	for _, p := range players {
		seats = append(seats, game.Seat{
			PlayerID: p.ID,
			SeatNo:   p.SeatNo,
			Role:     game.Role(p.Role),
			Alive:    p.IsAlive,
			IsAI:     p.IsAI,
		})
	}
	return game.NewRoster(seats)
}

func (s *Service) appendEvent(ctx context.Context, sess *store.Session, phase, scope, targetPlayerID, eventType, content string) {
	err := s.storage.AppendEvent(ctx, &store.Event{
		SessionID:      sess.ID,
		RoundNo:        sess.RoundNo,
		Phase:          phase,
		Scope:          scope,
		TargetPlayerID: targetPlayerID,
		EventType:      eventType,
		Content:        content,
	})
	if err != nil {
		log.Error().Err(err).Str("session_id", sess.ID).Str("event_type", eventType).Msg("append event failed")
	}
}

// revealAllRoles publishes every seat's true role at game end. Reveals happen
// exactly once: ENDED is terminal and this runs only on the transition into it.
func (s *Service) revealAllRoles(ctx context.Context, players []store.Player) {
	for _, p := range players {
		if p.RevealedRole != "" || p.Role == "" {
			continue
		}
		if err := s.storage.RevealPlayerRole(ctx, p.ID, p.Role); err != nil {
			log.Error().Err(err).Str("player_id", p.ID).Msg("reveal role failed")
		}
	}
}
