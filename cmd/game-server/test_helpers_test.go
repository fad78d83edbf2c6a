package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"circle-server/internal/cache"
	"circle-server/internal/circle"
	"circle-server/internal/store"

	"github.com/go-chi/chi/v5"
)

// fakeStorage is a minimal in-memory circle.Storage for handler tests.
type fakeStorage struct {
	mu       sync.Mutex
	sessions map[string]*store.Session
	players  map[string][]*store.Player
	actions  map[string][]*store.NightAction
	votes    map[string][]*store.Vote
	events   []*store.Event
	messages []*store.DayMessage
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		sessions: map[string]*store.Session{},
		players:  map[string][]*store.Player{},
		actions:  map[string][]*store.NightAction{},
		votes:    map[string][]*store.Vote{},
	}
}

func (m *fakeStorage) CreateSession(_ context.Context, sess *store.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *sess
	c.CreatedAt = time.Now()
	m.sessions[sess.ID] = &c
	return nil
}

func (m *fakeStorage) GetSession(_ context.Context, id string) (*store.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *sess
	return &c, nil
}

func (m *fakeStorage) GetSessionByCode(_ context.Context, code string) (*store.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sess := range m.sessions {
		if sess.Code == code {
			c := *sess
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *fakeStorage) UpdateSessionSettings(_ context.Context, sess *store.Session) error {
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

func (m *fakeStorage) UpdateSessionPhaseCAS(_ context.Context, sess *store.Session, fromStatus string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.sessions[sess.ID]
	if !ok {
		return false, store.ErrNotFound
	}
	if cur.Status != fromStatus {
		return false, nil
	}
	next := *sess
	next.Code = cur.Code
	next.CreatedAt = cur.CreatedAt
	m.sessions[sess.ID] = &next
	return true, nil
}

func (m *fakeStorage) CreatePlayer(_ context.Context, p *store.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *p
	m.players[p.SessionID] = append(m.players[p.SessionID], &c)
	return nil
}

func (m *fakeStorage) ListPlayers(_ context.Context, sessionID string) ([]store.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.players[sessionID]
	out := make([]store.Player, 0, len(list))
	for _, p := range list {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNo < out[j].SeatNo })
	return out, nil
}

func (m *fakeStorage) findPlayer(id string) *store.Player {
	for _, list := range m.players {
		for _, p := range list {
			if p.ID == id {
				return p
			}
		}
	}
	return nil
}

func (m *fakeStorage) UpdatePlayerRole(_ context.Context, playerID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.findPlayer(playerID)
	if p == nil {
		return store.ErrNotFound
	}
	p.Role = role
	return nil
}

func (m *fakeStorage) MarkPlayerDead(_ context.Context, playerID, eliminationType, revealedRole string) error {
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

func (m *fakeStorage) RevealPlayerRole(_ context.Context, playerID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.findPlayer(playerID)
	if p == nil {
		return store.ErrNotFound
	}
	p.RevealedRole = role
	return nil
}

func (m *fakeStorage) UpsertNightAction(_ context.Context, a *store.NightAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.actions[a.SessionID] {
		if cur.RoundNo == a.RoundNo && cur.ActorPlayerID == a.ActorPlayerID && cur.ActionType == a.ActionType {
			cur.TargetPlayerID = a.TargetPlayerID
			return nil
		}
	}
	c := *a
	m.actions[a.SessionID] = append(m.actions[a.SessionID], &c)
	return nil
}

func (m *fakeStorage) ListNightActions(_ context.Context, sessionID string, roundNo int) ([]store.NightAction, error) {
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

func (m *fakeStorage) UpsertVote(_ context.Context, v *store.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.votes[v.SessionID] {
		if cur.RoundNo == v.RoundNo && cur.VoterPlayerID == v.VoterPlayerID {
			cur.TargetPlayerID = v.TargetPlayerID
			return nil
		}
	}
	c := *v
	m.votes[v.SessionID] = append(m.votes[v.SessionID], &c)
	return nil
}

func (m *fakeStorage) ListVotes(_ context.Context, sessionID string, roundNo int) ([]store.Vote, error) {
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

func (m *fakeStorage) AppendEvent(_ context.Context, e *store.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *e
	m.events = append(m.events, &c)
	return nil
}

func (m *fakeStorage) ListEvents(_ context.Context, sessionID string) ([]store.Event, error) {
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

func (m *fakeStorage) AppendDayMessage(_ context.Context, msg *store.DayMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *msg
	m.messages = append(m.messages, &c)
	return nil
}

func (m *fakeStorage) ListDayMessages(_ context.Context, sessionID string, roundNo int) ([]store.DayMessage, error) {
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

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	svc := circle.NewService(newFakeStorage(), circle.DefaultConfig(), rand.New(rand.NewSource(1)))
	return newRouter(svc, nil, cache.NewWindow(100, time.Minute))
}

func doJSON(t *testing.T, r http.Handler, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
