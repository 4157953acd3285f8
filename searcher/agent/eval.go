package agent

import (
	"sync"

	"uctgo/experiments/metrics"
	"uctgo/game"
	"uctgo/searcher"
)

type evaluationAgent struct {
	mu  sync.Mutex
	uct *searcher.UCT
}

// NewEvaluationAgent returns an agent that plays the most visited move of every search.
func NewEvaluationAgent(uct *searcher.UCT) Agent {
	return &evaluationAgent{uct: uct}
}

func (a *evaluationAgent) FindMove(p game.Position) (game.Move, metrics.SearchMetric, error) {
	// A UCT holds the state of a single search
	a.mu.Lock()
	defer a.mu.Unlock()

	result, err := a.uct.Search(p)
	if err != nil {
		return game.PassMove, metrics.SearchMetric{}, err
	}
	return result.Move, result.Metric, nil
}
