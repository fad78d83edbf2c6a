package game

// DayTurnSeconds is the per-speaker time budget in presence mode.
const DayTurnSeconds = 60

// SpeakerOrder computes the presence-mode speaking order for a day phase:
// living players ascending by seat number. The order is fixed when the phase
// starts; a death mid-day does not reorder remaining turns.
func SpeakerOrder(r *Roster) []string {
	alive := r.Alive()
	out := make([]string, 0, len(alive))
	for _, s := range alive {
		out = append(out, s.PlayerID)
	}
	return out
}

// NextSpeaker advances from idx in a precomputed order, skipping slots whose
// player has died since the order was built. exhausted reports that no
// speaker remains, which moves the day into voting.
func NextSpeaker(order []string, idx int, r *Roster) (id string, next int, exhausted bool) {
	for i := idx + 1; i < len(order); i++ {
		if r.IsAlive(order[i]) {
			return order[i], i, false
		}
	}
	return "", len(order), true
}
