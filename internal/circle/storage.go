package circle

import (
	"context"

	"circle-server/internal/store"
)

// Storage is the narrow persistence surface the engine runs against. The
// postgres store implements it; tests run an in-memory fake.
type Storage interface {
	CreateSession(ctx context.Context, sess *store.Session) error
	GetSession(ctx context.Context, id string) (*store.Session, error)
	GetSessionByCode(ctx context.Context, code string) (*store.Session, error)
	UpdateSessionSettings(ctx context.Context, sess *store.Session) error
	// UpdateSessionPhaseCAS writes phase fields guarded by a status
	// compare-and-swap, reporting false when another writer got there first.
	UpdateSessionPhaseCAS(ctx context.Context, sess *store.Session, fromStatus string) (bool, error)

	CreatePlayer(ctx context.Context, p *store.Player) error
	ListPlayers(ctx context.Context, sessionID string) ([]store.Player, error)
	UpdatePlayerRole(ctx context.Context, playerID, role string) error
	MarkPlayerDead(ctx context.Context, playerID, eliminationType, revealedRole string) error
	RevealPlayerRole(ctx context.Context, playerID, role string) error

	UpsertNightAction(ctx context.Context, a *store.NightAction) error
	ListNightActions(ctx context.Context, sessionID string, roundNo int) ([]store.NightAction, error)
	UpsertVote(ctx context.Context, v *store.Vote) error
	ListVotes(ctx context.Context, sessionID string, roundNo int) ([]store.Vote, error)

	AppendEvent(ctx context.Context, e *store.Event) error
	ListEvents(ctx context.Context, sessionID string) ([]store.Event, error)
	AppendDayMessage(ctx context.Context, m *store.DayMessage) error
	ListDayMessages(ctx context.Context, sessionID string, roundNo int) ([]store.DayMessage, error)
}
