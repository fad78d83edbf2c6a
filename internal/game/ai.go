package game

import "math/rand"

// AIPolicy picks actions for unclaimed seats. All choices are uniform over
// the legal targets; the rand source is injected so tests can pin decisions.
type AIPolicy struct {
	rnd *rand.Rand
}

func NewAIPolicy(rnd *rand.Rand) *AIPolicy {
	return &AIPolicy{rnd: rnd}
}

// NightAction picks a night action for seat. ok is false for roles without
// one, or when no legal target exists.
func (p *AIPolicy) NightAction(r *Roster, seat *Seat) (ActionType, string, bool) {
	actionType, ok := ActionTypeForRole(seat.Role)
	if !ok {
		return "", "", false
	}
	var pool []string
	for _, s := range r.Alive() {
		switch seat.Role {
		case RoleShadow:
			if s.Role == RoleShadow {
				continue
			}
		case RoleOracle:
			if s.PlayerID == seat.PlayerID {
				continue
			}
		}
		// guardians may protect anyone alive, themselves included
		pool = append(pool, s.PlayerID)
	}
	if len(pool) == 0 {
		return "", "", false
	}
	return actionType, pool[p.rnd.Intn(len(pool))], true
}

// VoteTarget picks an exile vote for seat: any living player but itself.
// A shadow prefers non-shadow targets to blend in, falling back to any
// living player when none remain.
func (p *AIPolicy) VoteTarget(r *Roster, seat *Seat) (string, bool) {
	var pool, preferred []string
	for _, s := range r.Alive() {
		if s.PlayerID == seat.PlayerID {
			continue
		}
		pool = append(pool, s.PlayerID)
		if seat.Role == RoleShadow && s.Role != RoleShadow {
			preferred = append(preferred, s.PlayerID)
		}
	}
	if seat.Role == RoleShadow && len(preferred) > 0 {
		pool = preferred
	}
	if len(pool) == 0 {
		return "", false
	}
	return pool[p.rnd.Intn(len(pool))], true
}

var dayLines = map[Role][]string{
	RoleShadow: {
		"I was up all night thinking about who to trust. Still no idea.",
		"Someone is being way too quiet for my taste.",
		"I say we watch whoever pushes hardest for a vote.",
	},
	RoleOracle: {
		"Let's not rush this. The loudest voice isn't always right.",
		"I have a feeling about someone, but I want to hear everyone first.",
		"Think about who benefited from last night.",
	},
	RoleGuardian: {
		"We should protect the people who keep this circle talking.",
		"Nobody panic. Panic is how they win.",
		"I trust actions over words at this point.",
	},
	RoleCitizen: {
		"I have nothing to hide. Do you?",
		"Last night still doesn't add up to me.",
		"Whoever changes their story, that's our shadow.",
		"I'm just glad to still be here, honestly.",
	},
}

// DayLine returns a canned day-phase remark for the seat's role.
func (p *AIPolicy) DayLine(role Role) string {
	lines, ok := dayLines[role]
	if !ok {
		lines = dayLines[RoleCitizen]
	}
	return lines[p.rnd.Intn(len(lines))]
}
