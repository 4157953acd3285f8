package communication

import (
	"context"
	"fmt"
	"strings"

	"uctgo/experiments/metrics"
	"uctgo/game"
)

// Communicator asks a remote agent for the move of the side to move on board.
type Communicator interface {
	FindMove(ctx context.Context, board *game.Board) (game.Move, metrics.SearchMetric, error)
}

// BoardSnapshot is the wire form of a board. Rows run from the top, one
// character per point: "X" black, "O" white, "." empty.
type BoardSnapshot struct {
	Size   int      `json:"size"`
	Rows   []string `json:"rows"`
	Next   string   `json:"next"`
	Ko     string   `json:"ko,omitempty"`
	Passes int      `json:"passes"`
}

type FindMoveRequest struct {
	Board BoardSnapshot `json:"board"`
}

type FindMoveResponse struct {
	Move   string               `json:"move"`
	Metric metrics.SearchMetric `json:"metric"`
}

func Snapshot(b *game.Board) BoardSnapshot {
	size := b.Size()
	cells := b.Cells()
	rows := make([]string, size)
	for row := range rows {
		var sb strings.Builder
		for _, c := range cells[row*size : (row+1)*size] {
			switch c {
			case game.Black:
				sb.WriteByte('X')
			case game.White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		rows[row] = sb.String()
	}

	s := BoardSnapshot{
		Size:   size,
		Rows:   rows,
		Next:   b.NextForce().String(),
		Passes: b.Passes(),
	}
	if ko := b.Ko(); !ko.IsPass() {
		s.Ko = ko.Format(size)
	}
	return s
}

// Restore rebuilds and validates the board described by s.
func (s BoardSnapshot) Restore() (*game.Board, error) {
	if len(s.Rows) != s.Size {
		return nil, fmt.Errorf("snapshot has %d rows for size %d", len(s.Rows), s.Size)
	}
	cells := make([]game.Force, 0, s.Size*s.Size)
	for i, row := range s.Rows {
		if len(row) != s.Size {
			return nil, fmt.Errorf("snapshot row %d has %d points for size %d", i, len(row), s.Size)
		}
		for _, c := range row {
			switch c {
			case 'X':
				cells = append(cells, game.Black)
			case 'O':
				cells = append(cells, game.White)
			case '.':
				cells = append(cells, game.Empty)
			default:
				return nil, fmt.Errorf("snapshot row %d: unknown point %q", i, c)
			}
		}
	}

	var next game.Force
	switch s.Next {
	case game.Black.String():
		next = game.Black
	case game.White.String():
		next = game.White
	default:
		return nil, fmt.Errorf("snapshot: unknown side to move %q", s.Next)
	}

	ko := game.PassMove
	if s.Ko != "" {
		var err error
		if ko, err = game.ParseMove(s.Ko, s.Size); err != nil {
			return nil, fmt.Errorf("snapshot ko: %w", err)
		}
	}
	return game.RestoreBoard(s.Size, cells, next, ko, s.Passes)
}
