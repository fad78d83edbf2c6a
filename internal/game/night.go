package game

// OracleResult is one oracle's resolved peek: the target's true role.
type OracleResult struct {
	OracleID   string
	TargetID   string
	TargetRole Role
}

// NightResult is the outcome of resolving one night's actions.
// Empty ids mean "none".
type NightResult struct {
	VictimID       string
	ProtectedID    string
	ShadowTargetID string
	OracleResults  []OracleResult
}

// ResolveNight resolves one round's night actions against a roster snapshot.
// Actions must be in submission order; the slice holds at most one row per
// (actor, type) thanks to the store's upsert semantics.
//
// The shadow kill lands on the majority target among alive shadows' picks.
// Ties go to the earliest submitted action whose target is in the tied group,
// so the first signal wins. A guardian protect on the same target cancels the
// kill. Oracles resolve independently.
func ResolveNight(r *Roster, actions []NightAction) NightResult {
	res := NightResult{}

	res.ShadowTargetID = majorityShadowTarget(r, actions)
	res.ProtectedID = activeProtection(r, actions)

	if res.ShadowTargetID != "" && res.ShadowTargetID != res.ProtectedID {
		res.VictimID = res.ShadowTargetID
	}

	for _, a := range actions {
		if a.Type != ActionOraclePeek {
			continue
		}
		actor, ok := r.Get(a.Actor)
		if !ok || !actor.Alive || actor.Role != RoleOracle {
			continue
		}
		target, ok := r.Get(a.Target)
		if !ok || !target.Alive {
			continue
		}
		res.OracleResults = append(res.OracleResults, OracleResult{
			OracleID:   actor.PlayerID,
			TargetID:   target.PlayerID,
			TargetRole: target.Role,
		})
	}
	return res
}

func majorityShadowTarget(r *Roster, actions []NightAction) string {
	counts := make(map[string]int)
	ordered := make([]NightAction, 0, len(actions))
	for _, a := range actions {
		if a.Type != ActionShadowTarget {
			continue
		}
		actor, ok := r.Get(a.Actor)
		if !ok || !actor.Alive || actor.Role != RoleShadow {
			continue
		}
		if !r.IsAlive(a.Target) {
			continue
		}
		counts[a.Target]++
		ordered = append(ordered, a)
	}
	if len(counts) == 0 {
		return ""
	}
	top := 0
	for _, c := range counts {
		if c > top {
			top = c
		}
	}
	// first submitted action pointing at a top-count target
	for _, a := range ordered {
		if counts[a.Target] == top {
			return a.Target
		}
	}
	return ""
}

func activeProtection(r *Roster, actions []NightAction) string {
	for _, a := range actions {
		if a.Type != ActionGuardianProtect {
			continue
		}
		actor, ok := r.Get(a.Actor)
		if !ok || !actor.Alive || actor.Role != RoleGuardian {
			continue
		}
		if r.IsAlive(a.Target) {
			return a.Target
		}
	}
	return ""
}
