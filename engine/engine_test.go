package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"uctgo/experiments/metrics"
	"uctgo/game"
	"uctgo/searcher"
	"uctgo/searcher/agent"
)

type scriptedAgent struct {
	moves []game.Move
	calls int
}

func (a *scriptedAgent) FindMove(p game.Position) (game.Move, metrics.SearchMetric, error) {
	move := game.PassMove
	if a.calls < len(a.moves) {
		move = a.moves[a.calls]
	}
	a.calls++
	return move, metrics.SearchMetric{Episodes: a.calls}, nil
}

type failingAgent struct{}

func (failingAgent) FindMove(p game.Position) (game.Move, metrics.SearchMetric, error) {
	return game.PassMove, metrics.SearchMetric{}, errors.New("no idea")
}

func TestLocalEngine(t *testing.T) {
	t.Run("two passes end the game", func(t *testing.T) {
		e := NewLocalEngine(game.NewBoard(3), &scriptedAgent{}, &scriptedAgent{}, WithKomi(0.5))

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, "white", winner, "Komi should decide an empty board")
		require.Equal(t, 2, gameMetric.TotalMoves)
		require.Equal(t, -0.5, gameMetric.Score)
		require.Equal(t, "black", gameMetric.StartingPlayer)
		require.Len(t, moveMetrics, 2)
		require.Equal(t, "pass", moveMetrics[0].Move)
	})

	t.Run("scripted game is scored by area", func(t *testing.T) {
		// Black walls off the left column of a 3x3 board, white holds two stones on the right
		black := &scriptedAgent{moves: []game.Move{1, 4, 7}}
		white := &scriptedAgent{moves: []game.Move{5, 8}}
		e := NewLocalEngine(game.NewBoard(3), black, white, WithKomi(0))

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, "black", winner, "Black holds six points against two")
		require.Equal(t, 4.0, gameMetric.Score)
		require.Len(t, moveMetrics, 7, "Five stones then two passes")
		for i, m := range moveMetrics {
			require.Equal(t, i+1, m.Step)
		}
		require.Equal(t, "B3", moveMetrics[0].Move)
		require.Equal(t, "white", moveMetrics[1].Player)
		require.Equal(t, 2, moveMetrics[2].Episodes, "Search metrics should be kept per move")
	})

	t.Run("turn limit stops the game", func(t *testing.T) {
		e := NewLocalEngine(game.NewBoard(5), agent.NewRandomAgent(1), agent.NewRandomAgent(2), WithMaxTurns(6))

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Contains(t, []string{"black", "white", Draw}, winner)
		require.Equal(t, 6, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 6)
	})

	t.Run("searching agents finish a small game", func(t *testing.T) {
		u1 := searcher.NewUCT(2, searcher.WithSimulations(40), searcher.WithSeed(1))
		u2 := searcher.NewUCT(2, searcher.WithSimulations(40), searcher.WithSeed(2))
		e := NewLocalEngine(game.NewBoard(4), agent.NewEvaluationAgent(u1), agent.NewEvaluationAgent(u2), WithMaxTurns(20))

		winner, gameMetric, _, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Contains(t, []string{"black", "white", Draw}, winner)
		require.LessOrEqual(t, gameMetric.TotalMoves, 20)
	})

	t.Run("illegal move is an error", func(t *testing.T) {
		black := &scriptedAgent{moves: []game.Move{4}}
		white := &scriptedAgent{moves: []game.Move{4}}
		e := NewLocalEngine(game.NewBoard(3), black, white)

		_, _, moveMetrics, err := e.Run(context.Background())

		require.ErrorIs(t, err, game.ErrIllegalMove)
		require.Len(t, moveMetrics, 1, "Moves before the illegal one should be kept")
	})

	t.Run("agent failure is an error", func(t *testing.T) {
		e := NewLocalEngine(game.NewBoard(3), failingAgent{}, &scriptedAgent{})

		_, _, _, err := e.Run(context.Background())

		require.ErrorContains(t, err, "no idea")
	})

	t.Run("finished game cannot be run", func(t *testing.T) {
		b := game.NewBoard(3).Pass(game.Black).Pass(game.White).(*game.Board)
		e := NewLocalEngine(b, &scriptedAgent{}, &scriptedAgent{})

		_, _, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("cancelled context stops the game", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := NewLocalEngine(game.NewBoard(3), &scriptedAgent{}, &scriptedAgent{})

		_, _, _, err := e.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("panics without agents", func(t *testing.T) {
		require.Panics(t, func() {
			NewLocalEngine(game.NewBoard(3), nil, &scriptedAgent{})
		})
	})
}

type fakeCommunicator struct {
	agent agent.Agent
	seen  int
}

func (c *fakeCommunicator) FindMove(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric, error) {
	c.seen++
	return c.agent.FindMove(b)
}

func TestRemoteEngine(t *testing.T) {
	black := &fakeCommunicator{agent: agent.NewRandomAgent(5)}
	white := &fakeCommunicator{agent: agent.NewRandomAgent(6)}
	e := NewRemoteEngine(game.NewBoard(3), black, white, WithMaxTurns(9))

	_, gameMetric, _, err := e.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, gameMetric.TotalMoves, black.seen+white.seen, "Every move should be asked remotely")
	require.GreaterOrEqual(t, black.seen, white.seen, "Black starts")
}

func TestRender(t *testing.T) {
	b := game.NewBoard(3).Play(game.NewMove(3, 0, 0)).Play(game.NewMove(3, 1, 1)).(*game.Board)

	got := render(b, game.NewMove(3, 1, 1), termenv.Ascii)

	require.Equal(t, strings.Join([]string{
		" 3  X . .",
		" 2  . O .",
		" 1  . . .",
		"    A B C",
	}, "\n"), got)
}
