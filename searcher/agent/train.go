package agent

import (
	"math"
	"sort"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"

	"uctgo/experiments/metrics"
	"uctgo/game"
	"uctgo/searcher"
)

type trainingAgent struct {
	mu          sync.Mutex
	uct         *searcher.UCT
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent that samples root moves in proportion to
// visits^(1/temperature), for varied self-play games. Temperature must be positive.
func NewTrainingAgent(uct *searcher.UCT, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return &trainingAgent{
		uct:         uct,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(p game.Position) (game.Move, metrics.SearchMetric, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	result, err := a.uct.Search(p)
	if err != nil {
		return game.PassMove, metrics.SearchMetric{}, err
	}
	if len(result.Policy) == 0 {
		return result.Move, result.Metric, nil
	}
	policy := adjustTemperature(result.Policy, a.temperature)
	return sample(policy, a.rng.Float64()), result.Metric, nil
}

type weightedMove struct {
	move game.Move
	prob float64
}

// adjustTemperature turns visit counts into probabilities, ordered by move.
func adjustTemperature(policy map[game.Move]searcher.Stats, temperature float64) []weightedMove {
	exponent := 1.0 / temperature
	moves := lo.Keys(policy)
	sort.Slice(moves, func(i, j int) bool { return moves[i] < moves[j] })

	adjusted := lo.Map(moves, func(move game.Move, _ int) weightedMove {
		return weightedMove{move: move, prob: math.Pow(float64(policy[move].Visits), exponent)}
	})
	sum := lo.SumBy(adjusted, func(w weightedMove) float64 { return w.prob })
	for i := range adjusted {
		adjusted[i].prob /= sum
	}
	return adjusted
}

func sample(policy []weightedMove, sampled float64) game.Move {
	cumulative := 0.0
	for _, w := range policy {
		cumulative += w.prob
		if sampled < cumulative {
			return w.move
		}
	}
	return policy[len(policy)-1].move // rounding
}
