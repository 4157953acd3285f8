package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"uctgo/experiments/metrics"
	"uctgo/game"
	"uctgo/meta"
)

var ErrGameOver = errors.New("game is already over")

const Draw = "draw"

type Engine interface {
	// Run plays the game until two consecutive passes or the turn limit and returns
	// the winner ("black", "white" or "draw").
	Run(ctx context.Context) (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

type Option func(c *config)

type config struct {
	maxTurns int
	komi     float64
}

func WithMaxTurns(maxTurns int) Option {
	return func(c *config) {
		if maxTurns > 0 {
			c.maxTurns = maxTurns
		}
	}
}

func WithKomi(komi float64) Option {
	return func(c *config) {
		c.komi = komi
	}
}

func newConfig(options []Option) config {
	c := config{maxTurns: meta.MAX_TURNS, komi: meta.KOMI}
	for _, option := range options {
		option(&c)
	}
	return c
}

// player answers for one side of the board.
type player func(ctx context.Context, b *game.Board) (game.Move, metrics.SearchMetric, error)

// play runs the game loop shared by every engine. players holds black then white.
func play(ctx context.Context, board *game.Board, players [2]player, c config) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	if board.IsTerminal() {
		return "", metrics.GameMetric{}, nil, ErrGameOver
	}

	gameMetric := metrics.GameMetric{
		StartingPlayer: board.NextForce().String(),
		StartTime:      time.Now(),
	}
	log.Info().Msgf("%s is starting on a %dx%d board", gameMetric.StartingPlayer, board.Size(), board.Size())

	var moveMetrics []metrics.MoveMetric
	last := game.PassMove
	for turn := 1; !board.IsTerminal() && turn <= c.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return "", gameMetric, moveMetrics, err
		}
		force := board.NextForce()
		move, searchMetric, err := players[force-game.Black](ctx, board)
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("turn %d, %s failed to move: %w", turn, force, err)
		}
		if !move.IsPass() && !lo.Contains(board.LegalMoves(force), move) {
			return "", gameMetric, moveMetrics, fmt.Errorf("turn %d, %s played %s: %w",
				turn, force, move.Format(board.Size()), game.ErrIllegalMove)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       force.String(),
			Move:         move.Format(board.Size()),
			SearchMetric: searchMetric,
		})
		if move.IsPass() {
			board = board.Pass(force).(*game.Board)
		} else {
			board = board.Play(move).(*game.Board)
		}
		last = move

		if e := log.Debug(); e.Enabled() {
			e.Msgf("turn %d: %s plays %s\n%s", turn, force, move.Format(board.Size()), Render(board, last))
		}
	}
	if !board.IsTerminal() {
		log.Info().Msgf("stopped after %d turns without two passes, scoring as is", c.maxTurns)
	}

	winner := Draw
	if w := board.Winner(c.komi); w != game.Empty {
		winner = w.String()
	}
	gameMetric.Winner = winner
	gameMetric.Score = board.Score(c.komi)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	log.Info().Msgf("game over after %d moves, winner %s by %.1f", gameMetric.TotalMoves, winner, gameMetric.Score)

	return winner, gameMetric, moveMetrics, nil
}
