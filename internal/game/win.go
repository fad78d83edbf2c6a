package game

// ComputeWinner inspects the living roster. Citizens win once every shadow is
// gone; shadows win on reaching parity with or outnumbering the rest of the
// living. Invoked after both night and vote resolution, since either can end
// the game.
func ComputeWinner(r *Roster) Winner {
	shadowAlive := r.AliveWithRole(RoleShadow)
	citizensAlive := r.AliveCount() - shadowAlive
	if shadowAlive <= 0 {
		return WinnerCitizens
	}
	if shadowAlive >= citizensAlive {
		return WinnerShadows
	}
	return WinnerNone
}
