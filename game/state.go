package game

import (
	"fmt"
	"strings"
)

const (
	MinBoardSize = 2
	MaxBoardSize = 19
)

// Board is the state of a Go game at any point: stones, side to move, the point
// forbidden by simple ko and the number of consecutive passes.
// A Board is never modified after construction; Play and Pass return copies.
type Board struct {
	size   int
	cells  []Force
	next   Force
	ko     Move // forbidden for next, PassMove if none
	passes int
	hash   StateHash
}

var _ Position = (*Board)(nil)

// NewBoard returns an empty board with black to move.
func NewBoard(size int) *Board {
	if size < MinBoardSize || size > MaxBoardSize {
		panic(fmt.Sprintf("board size %d out of range [%d, %d]", size, MinBoardSize, MaxBoardSize))
	}
	b := &Board{
		size:  size,
		cells: make([]Force, size*size),
		next:  Black,
		ko:    PassMove,
	}
	b.hash = b.computeHash()
	return b
}

// RestoreBoard rebuilds a board from its raw parts, as sent over the wire.
func RestoreBoard(size int, cells []Force, next Force, ko Move, passes int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("restore board: size %d out of range", size)
	}
	if len(cells) != size*size {
		return nil, fmt.Errorf("restore board: got %d cells for size %d", len(cells), size)
	}
	if next != Black && next != White {
		return nil, fmt.Errorf("restore board: invalid side to move %d", next)
	}
	if ko != PassMove && (ko < 0 || int(ko) >= len(cells)) {
		return nil, fmt.Errorf("restore board: ko point %d out of range", ko)
	}
	if passes < 0 {
		return nil, fmt.Errorf("restore board: negative pass count")
	}
	b := &Board{
		size:   size,
		cells:  make([]Force, len(cells)),
		next:   next,
		ko:     ko,
		passes: passes,
	}
	for i, c := range cells {
		if c != Empty && c != Black && c != White {
			return nil, fmt.Errorf("restore board: invalid cell %d at %d", c, i)
		}
		b.cells[i] = c
	}
	b.hash = b.computeHash()
	return b, nil
}

func (b *Board) copy() *Board {
	cells := make([]Force, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:   b.size,
		cells:  cells,
		next:   b.next,
		ko:     b.ko,
		passes: b.passes,
		hash:   b.hash,
	}
}

func (b *Board) Size() int         { return b.size }
func (b *Board) At(move Move) Force { return b.cells[move] }
func (b *Board) NextForce() Force  { return b.next }
func (b *Board) LastForce() Force  { return b.next.Opponent() }
func (b *Board) Ko() Move          { return b.ko }
func (b *Board) Passes() int       { return b.passes }
func (b *Board) Hash() StateHash   { return b.hash }
func (b *Board) IsTerminal() bool  { return b.passes >= 2 }

// Cells returns a copy of the board contents indexed by point.
func (b *Board) Cells() []Force {
	cells := make([]Force, len(b.cells))
	copy(cells, b.cells)
	return cells
}

func (b *Board) neighbors(point int, buf *[4]int) []int {
	n := buf[:0]
	row, col := point/b.size, point%b.size
	if row > 0 {
		n = append(n, point-b.size)
	}
	if row < b.size-1 {
		n = append(n, point+b.size)
	}
	if col > 0 {
		n = append(n, point-1)
	}
	if col < b.size-1 {
		n = append(n, point+1)
	}
	return n
}

// chain flood-fills the chain containing point and counts its distinct liberties.
func (b *Board) chain(point int) (stones []int, liberties int) {
	color := b.cells[point]
	seen := make([]bool, len(b.cells))
	seen[point] = true
	stones = []int{point}
	var buf [4]int
	for i := 0; i < len(stones); i++ {
		for _, n := range b.neighbors(stones[i], &buf) {
			if seen[n] {
				continue
			}
			switch b.cells[n] {
			case Empty:
				seen[n] = true
				liberties++
			case color:
				seen[n] = true
				stones = append(stones, n)
			}
		}
	}
	return stones, liberties
}

// IsSuicide reports whether force playing move would leave its own chain without
// liberties after captures are resolved.
func (b *Board) IsSuicide(force Force, move Move) bool {
	if move.IsPass() || b.cells[move] != Empty {
		return false
	}
	enemy := force.Opponent()
	var buf [4]int
	for _, n := range b.neighbors(int(move), &buf) {
		switch b.cells[n] {
		case Empty:
			return false
		case force:
			if _, libs := b.chain(n); libs > 1 {
				return false
			}
		case enemy:
			if _, libs := b.chain(n); libs == 1 {
				return false // captures
			}
		}
	}
	return true
}

// isOwnEye reports whether move would fill an eye of force: every orthogonal
// neighbor is friendly and diagonal enemies plus the board edge number below two.
func (b *Board) isOwnEye(force Force, move Move) bool {
	var buf [4]int
	for _, n := range b.neighbors(int(move), &buf) {
		if b.cells[n] != force {
			return false
		}
	}
	row, col := int(move)/b.size, int(move)%b.size
	edge, enemies := 0, 0
	for _, d := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		r, c := row+d[0], col+d[1]
		if r < 0 || r >= b.size || c < 0 || c >= b.size {
			edge = 1
			continue
		}
		if b.cells[r*b.size+c] == force.Opponent() {
			enemies++
		}
	}
	return enemies+edge < 2
}

func (b *Board) isKo(force Force, move Move) bool {
	return force == b.next && move == b.ko
}

// IsPlayable reports whether move is one of LegalMoves(force).
func (b *Board) IsPlayable(force Force, move Move) bool {
	if move.IsPass() {
		return true
	}
	if move < 0 || int(move) >= len(b.cells) || b.cells[move] != Empty {
		return false
	}
	return !b.isKo(force, move) && !b.IsSuicide(force, move) && !b.isOwnEye(force, move)
}

// LegalMoves lists the empty points force may play, in ascending point order.
// Ko recaptures, suicides and moves filling an own eye are left out.
func (b *Board) LegalMoves(force Force) []Move {
	moves := make([]Move, 0, len(b.cells))
	for point := range b.cells {
		move := Move(point)
		if b.cells[point] == Empty && b.IsPlayable(force, move) {
			moves = append(moves, move)
		}
	}
	return moves
}

// Play places a stone for the side to move. Playing an occupied point, a ko
// recapture or a suicide panics; use TryPlay for unchecked input.
func (b *Board) Play(move Move) Position {
	next, err := b.TryPlay(move)
	if err != nil {
		panic(err)
	}
	return next
}

// TryPlay is Play with the legality failure returned as an error. Filling an own
// eye is allowed here even though LegalMoves never offers it.
func (b *Board) TryPlay(move Move) (*Board, error) {
	if move.IsPass() {
		return b.pass(), nil
	}
	if move < 0 || int(move) >= len(b.cells) {
		return nil, fmt.Errorf("%w: point %d off the board", ErrIllegalMove, move)
	}
	if b.cells[move] != Empty {
		return nil, fmt.Errorf("%w: %s is occupied", ErrIllegalMove, move.Format(b.size))
	}
	if b.isKo(b.next, move) {
		return nil, fmt.Errorf("%w: %s retakes ko", ErrIllegalMove, move.Format(b.size))
	}
	if b.IsSuicide(b.next, move) {
		return nil, fmt.Errorf("%w: %s is suicide", ErrIllegalMove, move.Format(b.size))
	}

	force := b.next
	nb := b.copy()
	nb.cells[move] = force

	var captured []int
	var buf [4]int
	for _, n := range nb.neighbors(int(move), &buf) {
		if nb.cells[n] != force.Opponent() {
			continue
		}
		stones, libs := nb.chain(n)
		if libs > 0 {
			continue
		}
		for _, s := range stones {
			nb.cells[s] = Empty
		}
		captured = append(captured, stones...)
	}

	nb.ko = PassMove
	if len(captured) == 1 {
		if stones, libs := nb.chain(int(move)); len(stones) == 1 && libs == 1 {
			nb.ko = Move(captured[0])
		}
	}
	nb.next = force.Opponent()
	nb.passes = 0
	nb.hash = nb.computeHash()
	return nb, nil
}

// Pass hands the turn over without placing a stone. Only the side to move may pass.
func (b *Board) Pass(force Force) Position {
	if force != b.next {
		panic(fmt.Sprintf("%s cannot pass on %s's turn", force, b.next))
	}
	return b.pass()
}

func (b *Board) pass() *Board {
	nb := b.copy()
	nb.next = b.next.Opponent()
	nb.ko = PassMove
	nb.passes = b.passes + 1
	nb.hash = nb.computeHash()
	return nb
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		fmt.Fprintf(&sb, "%2d ", b.size-row)
		for col := 0; col < b.size; col++ {
			switch b.cells[row*b.size+col] {
			case Black:
				sb.WriteString(" X")
			case White:
				sb.WriteString(" O")
			default:
				sb.WriteString(" .")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for col := 0; col < b.size; col++ {
		fmt.Fprintf(&sb, " %c", columns[col])
	}
	sb.WriteByte('\n')
	return sb.String()
}
