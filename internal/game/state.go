package game

type Role string

const (
	RoleShadow   Role = "shadow"
	RoleOracle   Role = "oracle"
	RoleGuardian Role = "guardian"
	RoleCitizen  Role = "citizen"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleShadow, RoleOracle, RoleGuardian, RoleCitizen:
		return Role(s), true
	}
	return "", false
}

type Phase string

const (
	PhaseLobby  Phase = "lobby"
	PhaseNight  Phase = "night"
	PhaseDay    Phase = "day"
	PhaseVoting Phase = "voting"
	PhaseEnded  Phase = "ended"
)

type ActionType string

const (
	ActionShadowTarget    ActionType = "shadow_target"
	ActionGuardianProtect ActionType = "guardian_protect"
	ActionOraclePeek      ActionType = "oracle_peek"
)

// ActionTypeForRole maps a night role to the single action type it may submit.
// Citizens have no night action.
func ActionTypeForRole(role Role) (ActionType, bool) {
	switch role {
	case RoleShadow:
		return ActionShadowTarget, true
	case RoleGuardian:
		return ActionGuardianProtect, true
	case RoleOracle:
		return ActionOraclePeek, true
	}
	return "", false
}

type EliminationType string

const (
	EliminationNightFade EliminationType = "night_fade"
	EliminationExile     EliminationType = "exile"
)

type Winner string

const (
	WinnerNone     Winner = ""
	WinnerCitizens Winner = "citizens"
	WinnerShadows  Winner = "shadows"
)

// Seat is one player's engine-visible state.
type Seat struct {
	PlayerID string
	SeatNo   int
	Role     Role
	Alive    bool
	IsAI     bool
}

// Roster is an arena of seats keyed by player id, ordered by seat number.
// Resolvers treat it as an immutable snapshot.
type Roster struct {
	byID  map[string]*Seat
	order []*Seat
}

func NewRoster(seats []Seat) *Roster {
	r := &Roster{byID: make(map[string]*Seat, len(seats)), order: make([]*Seat, 0, len(seats))}
	for i := range seats {
		s := seats[i]
		r.byID[s.PlayerID] = &s
		r.order = append(r.order, &s)
	}
	for i := 1; i < len(r.order); i++ {
		for j := i; j > 0 && r.order[j-1].SeatNo > r.order[j].SeatNo; j-- {
			r.order[j-1], r.order[j] = r.order[j], r.order[j-1]
		}
	}
	return r
}

func (r *Roster) Get(id string) (*Seat, bool) {
	s, ok := r.byID[id]
	return s, ok
}

func (r *Roster) IsAlive(id string) bool {
	s, ok := r.byID[id]
	return ok && s.Alive
}

// Seats returns all seats in ascending seat order.
func (r *Roster) Seats() []*Seat {
	return r.order
}

// Alive returns living seats in ascending seat order.
func (r *Roster) Alive() []*Seat {
	out := make([]*Seat, 0, len(r.order))
	for _, s := range r.order {
		if s.Alive {
			out = append(out, s)
		}
	}
	return out
}

func (r *Roster) AliveCount() int {
	n := 0
	for _, s := range r.order {
		if s.Alive {
			n++
		}
	}
	return n
}

func (r *Roster) AliveWithRole(role Role) int {
	n := 0
	for _, s := range r.order {
		if s.Alive && s.Role == role {
			n++
		}
	}
	return n
}

// NightAction is one submitted night action, in submission order.
type NightAction struct {
	Actor  string
	Type   ActionType
	Target string
}

// Vote is one submitted day vote.
type Vote struct {
	Voter  string
	Target string
}
