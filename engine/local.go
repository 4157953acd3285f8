package engine

import (
	"context"

	"uctgo/experiments/metrics"
	"uctgo/game"
	"uctgo/searcher/agent"
)

type LocalEngine struct {
	board  *game.Board
	agents [2]agent.Agent
	config config
}

// NewLocalEngine pits two in-process agents against each other from board.
func NewLocalEngine(board *game.Board, black, white agent.Agent, options ...Option) *LocalEngine {
	if black == nil || white == nil {
		panic("need an agent for each side")
	}
	return &LocalEngine{
		board:  board,
		agents: [2]agent.Agent{black, white},
		config: newConfig(options),
	}
}

func (e *LocalEngine) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	var players [2]player
	for i, a := range e.agents {
		players[i] = func(_ context.Context, b *game.Board) (game.Move, metrics.SearchMetric, error) {
			return a.FindMove(b)
		}
	}
	return play(ctx, e.board, players, e.config)
}
