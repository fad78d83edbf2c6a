package game

import "math/rand"

// MinPlayers is the smallest circle that can start a game.
const MinPlayers = 6

// largeCircleThreshold is the player count at which a third shadow joins the deck.
const largeCircleThreshold = 11

// Deck returns the role composition for n players: one oracle, one guardian,
// two shadows (three from eleven players up), citizens for the rest.
// Callers must validate n >= MinPlayers before building a deck.
func Deck(n int) []Role {
	shadows := 2
	if n >= largeCircleThreshold {
		shadows = 3
	}
	deck := make([]Role, 0, n)
	deck = append(deck, RoleOracle, RoleGuardian)
	for i := 0; i < shadows; i++ {
		deck = append(deck, RoleShadow)
	}
	for len(deck) < n {
		deck = append(deck, RoleCitizen)
	}
	return deck
}

// AssignRoles builds a shuffled deck for n players. The composition is fixed
// for a given n; only the permutation depends on rnd. The result is assigned
// positionally to seats in seat order.
func AssignRoles(rnd *rand.Rand, n int) []Role {
	deck := Deck(n)
	rnd.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
