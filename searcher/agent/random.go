package agent

import (
	"sync"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"

	"uctgo/experiments/metrics"
	"uctgo/game"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays a uniformly random playable move.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(p game.Position) (game.Move, metrics.SearchMetric, error) {
	force := p.NextForce()
	moves := lo.Reject(p.LegalMoves(force), func(move game.Move, _ int) bool {
		return p.IsSuicide(force, move)
	})
	if len(moves) == 0 {
		return game.PassMove, metrics.SearchMetric{}, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
