package circle

import (
	"context"
	"sync"
	"time"

	"circle-server/internal/store"
)

// memStorage is an in-memory Storage for service tests. It mirrors the
// postgres semantics the engine relies on: upserts keep the original row
// position, the phase write is a compare-and-swap on status.
type memStorage struct {
	mu       sync.Mutex
	sessions map[string]*store.Session
	players  map[string][]*store.Player
	actions  map[string][]*store.NightAction
	votes    map[string][]*store.Vote
	events   []*store.Event
	messages []*store.DayMessage

	// beforePhaseCAS, when set, runs just before the status compare in
	// UpdateSessionPhaseCAS. Tests use it to interleave a concurrent writer.
	beforePhaseCAS func()
	// roleWriteErr, when set, lets a test fail UpdatePlayerRole for a
	// chosen player.
	roleWriteErr func(playerID string) error
}

func newMemStorage() *memStorage {
	return &memStorage{
		sessions: map[string]*store.Session{},
		players:  map[string][]*store.Player{},
		actions:  map[string][]*store.NightAction{},
		votes:    map[string][]*store.Vote{},
	}
}

func copySession(s *store.Session) *store.Session {
	c := *s
	c.SpeakerOrder = append([]string(nil), s.SpeakerOrder...)
	if s.PhaseDeadline != nil {
		t := *s.PhaseDeadline
		c.PhaseDeadline = &t
	}
	return &c
}

func (m *memStorage) CreateSession(_ context.Context, sess *store.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess.CreatedAt = time.Now()
	m.sessions[sess.ID] = copySession(sess)
	return nil
}

func (m *memStorage) GetSession(_ context.Context, id string) (*store.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copySession(sess), nil
}

func (m *memStorage) GetSessionByCode(_ context.Context, code string) (*store.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sess := range m.sessions {
		if sess.Code == code {
			return copySession(sess), nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStorage) UpdateSessionSettings(_ context.Context, sess *store.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.sessions[sess.ID]
	if !ok {
		return store.ErrNotFound
	}
	cur.MaxPlayers = sess.MaxPlayers
	cur.PresenceMode = sess.PresenceMode
	cur.AxyChatBridge = sess.AxyChatBridge
	cur.VotingChatMode = sess.VotingChatMode
	return nil
}

func (m *memStorage) UpdateSessionPhaseCAS(_ context.Context, sess *store.Session, fromStatus string) (bool, error) {
	if m.beforePhaseCAS != nil {
		m.beforePhaseCAS()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.sessions[sess.ID]
	if !ok {
		return false, store.ErrNotFound
	}
	if cur.Status != fromStatus {
		return false, nil
	}
	next := copySession(sess)
	next.Code = cur.Code
	next.CreatedAt = cur.CreatedAt
	m.sessions[sess.ID] = next
	return true, nil
}

func (m *memStorage) CreatePlayer(_ context.Context, p *store.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *p
	c.CreatedAt = time.Now()
	m.players[p.SessionID] = append(m.players[p.SessionID], &c)
	return nil
}

func (m *memStorage) ListPlayers(_ context.Context, sessionID string) ([]store.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.players[sessionID]
	out := make([]store.Player, 0, len(list))
	for _, p := range list {
		out = append(out, *p)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].SeatNo > out[j].SeatNo; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out, nil
}

func (m *memStorage) findPlayer(id string) *store.Player {
	for _, list := range m.players {
		for _, p := range list {
			if p.ID == id {
				return p
			}
		}
	}
	return nil
}

func (m *memStorage) UpdatePlayerRole(_ context.Context, playerID, role string) error {
	if m.roleWriteErr != nil {
		if err := m.roleWriteErr(playerID); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.findPlayer(playerID)
	if p == nil {
		return store.ErrNotFound
	}
	p.Role = role
	return nil
}

func (m *memStorage) MarkPlayerDead(_ context.Context, playerID, eliminationType, revealedRole string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.findPlayer(playerID)
	if p == nil {
		return store.ErrNotFound
	}
	p.IsAlive = false
	p.EliminationType = eliminationType
	p.RevealedRole = revealedRole
	return nil
}

func (m *memStorage) RevealPlayerRole(_ context.Context, playerID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.findPlayer(playerID)
	if p == nil {
		return store.ErrNotFound
	}
	p.RevealedRole = role
	return nil
}

func (m *memStorage) UpsertNightAction(_ context.Context, a *store.NightAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.actions[a.SessionID] {
		if cur.RoundNo == a.RoundNo && cur.ActorPlayerID == a.ActorPlayerID && cur.ActionType == a.ActionType {
			cur.TargetPlayerID = a.TargetPlayerID
			return nil
		}
	}
	c := *a
	c.CreatedAt = time.Now()
	m.actions[a.SessionID] = append(m.actions[a.SessionID], &c)
	return nil
}

func (m *memStorage) ListNightActions(_ context.Context, sessionID string, roundNo int) ([]store.NightAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.NightAction
	for _, a := range m.actions[sessionID] {
		if a.RoundNo == roundNo {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memStorage) UpsertVote(_ context.Context, v *store.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.votes[v.SessionID] {
		if cur.RoundNo == v.RoundNo && cur.VoterPlayerID == v.VoterPlayerID {
			cur.TargetPlayerID = v.TargetPlayerID
			return nil
		}
	}
	c := *v
	c.CreatedAt = time.Now()
	m.votes[v.SessionID] = append(m.votes[v.SessionID], &c)
	return nil
}

func (m *memStorage) ListVotes(_ context.Context, sessionID string, roundNo int) ([]store.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.Vote
	for _, v := range m.votes[sessionID] {
		if v.RoundNo == roundNo {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *memStorage) AppendEvent(_ context.Context, e *store.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *e
	c.CreatedAt = time.Now()
	m.events = append(m.events, &c)
	return nil
}

func (m *memStorage) ListEvents(_ context.Context, sessionID string) ([]store.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.Event
	for _, e := range m.events {
		if e.SessionID == sessionID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *memStorage) AppendDayMessage(_ context.Context, msg *store.DayMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *msg
	c.CreatedAt = time.Now()
	m.messages = append(m.messages, &c)
	return nil
}

func (m *memStorage) ListDayMessages(_ context.Context, sessionID string, roundNo int) ([]store.DayMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.DayMessage
	for _, msg := range m.messages {
		if msg.SessionID == sessionID && msg.RoundNo == roundNo {
			out = append(out, *msg)
		}
	}
	return out, nil
}
