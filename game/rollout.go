package game

import (
	"golang.org/x/exp/rand"
)

// Upper bound on rollout length, in multiples of the board area.
const rolloutLengthFactor = 3

// RandomRollout plays uniformly random legal moves from p until two consecutive
// passes, passing whenever the side to move has nothing playable. Games without
// a board area are bounded by the number of moves alone.
func RandomRollout(p Position, seed uint64) Position {
	r := rand.New(rand.NewSource(seed))
	limit := rolloutLengthFactor * 19 * 19
	if b, ok := p.(*Board); ok {
		limit = rolloutLengthFactor * b.size * b.size
	}

	for played := 0; !p.IsTerminal(); played++ {
		force := p.NextForce()
		if played >= limit {
			// Long games only happen through repeated captures; end them here.
			p = p.Pass(force)
			continue
		}
		moves := p.LegalMoves(force)
		if len(moves) == 0 {
			p = p.Pass(force)
			continue
		}
		p = p.Play(moves[r.Intn(len(moves))])
	}
	return p
}
