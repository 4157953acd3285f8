package agent

import (
	"uctgo/experiments/metrics"
	"uctgo/game"
)

type Agent interface {
	// FindMove returns the move for the side to move in p and the search metrics
	// (if collected) from the simulation process.
	FindMove(p game.Position) (game.Move, metrics.SearchMetric, error)
}
