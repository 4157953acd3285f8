package searcher

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"uctgo/experiments/metrics"
	"uctgo/game"
)

type Option func(u *UCT)

// UCT chooses moves by parallel Monte-Carlo tree search with UCB1 selection over a
// transposition table shared by all goroutines. A UCT runs one search at a time.
type UCT struct {
	goroutines  int
	simulations int
	seed        uint64
	rollout     game.Rollout
	metrics     metrics.Collector
}

type Result struct {
	Move      game.Move
	Completed int // simulations finished, the budget is a soft ceiling
	Policy    map[game.Move]Stats
	Metric    metrics.SearchMetric
}

func WithSimulations(simulations int) Option {
	return func(u *UCT) {
		if simulations > 0 {
			u.simulations = simulations
		}
	}
}

// WithSeed fixes the base seed of every rollout; 0 draws a fresh seed per search.
func WithSeed(seed uint64) Option {
	return func(u *UCT) {
		u.seed = seed
	}
}

func WithRollout(rollout game.Rollout) Option {
	return func(u *UCT) {
		if rollout != nil {
			u.rollout = rollout
		}
	}
}

func WithMetrics() Option {
	return func(u *UCT) {
		u.metrics = metrics.NewCollector()
	}
}

func NewUCT(goroutines int, options ...Option) *UCT {
	if goroutines <= 0 {
		panic("Must search with at least one goroutine")
	}
	u := &UCT{ // Default values
		goroutines: goroutines,
		rollout:    game.RandomRollout,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(u)
	}
	if u.simulations <= 0 {
		panic("Must specify a simulation budget")
	}
	return u
}

// DecideMove runs a search from p and returns the most visited root move.
func DecideMove(p game.Position, simulations, goroutines int, seed uint64) (game.Move, error) {
	u := NewUCT(goroutines, WithSimulations(simulations), WithSeed(seed))
	return u.DecideMove(p)
}

func (u *UCT) DecideMove(p game.Position) (game.Move, error) {
	result, err := u.Search(p)
	if err != nil {
		return game.PassMove, err
	}
	return result.Move, nil
}

// Search spends the simulation budget on p and reports the chosen move with the
// statistics of every root move. The side to move passes when it has no move.
func (u *UCT) Search(p game.Position) (Result, error) {
	force := p.NextForce()
	candidates := newCandidates(p, p.LegalMoves(force))
	if len(candidates) == 0 {
		log.Debug().Msgf("%s has no move to search, passing", force)
		return Result{Move: game.PassMove}, nil
	}
	if u.simulations < len(candidates) {
		return Result{}, fmt.Errorf("%w: %d simulations for %d moves", ErrBudgetTooSmall, u.simulations, len(candidates))
	}

	seed := u.seed
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	s := newSearch(u, p, candidates, seed)

	u.metrics.Start(u.goroutines, u.simulations)
	s.run()
	metric := u.metrics.Complete()

	move, err := s.bestChild()
	if err != nil {
		return Result{}, err
	}
	result := Result{
		Move:      move,
		Completed: int(s.completed.Load()),
		Policy:    s.policy(),
		Metric:    metric,
	}
	u.logProfits(p, result)
	return result, nil
}

func (u *UCT) logProfits(p game.Position, result Result) {
	if !log.Debug().Enabled() {
		return
	}
	size := 0
	if b, ok := p.(*game.Board); ok {
		size = b.Size()
	}
	format := func(m game.Move) string {
		if size > 0 {
			return m.Format(size)
		}
		return fmt.Sprint(int(m))
	}

	log.Debug().Msgf("%s searched %d simulations on %d goroutines, chose %s",
		p.NextForce(), result.Completed, u.goroutines, format(result.Move))
	moves := make([]game.Move, 0, len(result.Policy))
	for move := range result.Policy {
		moves = append(moves, move)
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i] < moves[j] })
	for _, move := range moves {
		stats := result.Policy[move]
		log.Debug().Msgf("  %-4s visits=%-6d profit=%.4f", format(move), stats.Visits, stats.Average)
	}
}
