package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Move is a point index (row*size + column) on the board, or PassMove.
type Move int

const PassMove Move = -1

var ErrIllegalMove = errors.New("illegal move")

// Column letters skip "I" as usual on Go boards.
const columns = "ABCDEFGHJKLMNOPQRST"

func NewMove(size, row, col int) Move {
	return Move(row*size + col)
}

func (m Move) IsPass() bool {
	return m == PassMove
}

func (m Move) Coordinates(size int) (row, col int) {
	return int(m) / size, int(m) % size
}

// Format renders the move as a coordinate such as "C3", rows counted from the bottom.
func (m Move) Format(size int) string {
	if m.IsPass() {
		return "pass"
	}
	row, col := m.Coordinates(size)
	return fmt.Sprintf("%c%d", columns[col], size-row)
}

// ParseMove is the inverse of Move.Format.
func ParseMove(s string, size int) (Move, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "PASS" {
		return PassMove, nil
	}
	if len(s) < 2 {
		return PassMove, fmt.Errorf("parse move %q: too short", s)
	}
	col := strings.IndexByte(columns, s[0])
	if col < 0 || col >= size {
		return PassMove, fmt.Errorf("parse move %q: bad column", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return PassMove, fmt.Errorf("parse move %q: %w", s, err)
	}
	if n < 1 || n > size {
		return PassMove, fmt.Errorf("parse move %q: row out of range", s)
	}
	return NewMove(size, size-n, col), nil
}
