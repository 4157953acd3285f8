package engine

import (
	"context"

	"uctgo/communication"
	"uctgo/experiments/metrics"
	"uctgo/game"
)

type RemoteEngine struct {
	board   *game.Board
	clients [2]communication.Communicator
	config  config
}

// NewRemoteEngine plays a game between two agent servers.
func NewRemoteEngine(board *game.Board, black, white communication.Communicator, options ...Option) *RemoteEngine {
	if black == nil || white == nil {
		panic("need an agent for each side")
	}
	return &RemoteEngine{
		board:   board,
		clients: [2]communication.Communicator{black, white},
		config:  newConfig(options),
	}
}

func (e *RemoteEngine) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	var players [2]player
	for i, c := range e.clients {
		players[i] = c.FindMove
	}
	return play(ctx, e.board, players, e.config)
}
