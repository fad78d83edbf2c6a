package game

// VoteResult is the outcome of resolving one round's exile vote.
type VoteResult struct {
	ExiledID string
	Tie      bool
	Tally    map[string]int
}

// ResolveVotes tallies one round's votes against a roster snapshot. Only
// votes where both voter and target are alive count. A unique top count
// exiles that target; any tie at the top, including nobody voting at all,
// exiles no one. Deliberately stricter than the night tie-break: day ties
// never fall back to submission order.
func ResolveVotes(r *Roster, votes []Vote) VoteResult {
	tally := make(map[string]int)
	for _, v := range votes {
		if !r.IsAlive(v.Voter) || !r.IsAlive(v.Target) {
			continue
		}
		tally[v.Target]++
	}

	res := VoteResult{Tally: tally}
	top := 0
	for _, c := range tally {
		if c > top {
			top = c
		}
	}
	if top == 0 {
		res.Tie = true
		return res
	}
	leaders := 0
	var leader string
	for id, c := range tally {
		if c == top {
			leaders++
			leader = id
		}
	}
	if leaders > 1 {
		res.Tie = true
		return res
	}
	res.ExiledID = leader
	return res
}
