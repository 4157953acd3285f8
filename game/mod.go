package game

// Force is one of the two sides of the game.
type Force int8

const (
	Empty Force = iota
	Black
	White
)

func (f Force) Opponent() Force {
	switch f {
	case Black:
		return White
	case White:
		return Black
	default:
		panic("empty force has no opponent")
	}
}

func (f Force) String() string {
	switch f {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

type StateHash uint64

// Position is an immutable snapshot of the board plus the side to move.
// Operations on a Position always return a new copy.
//
// Two positions that compare equal through Hash are treated as the same node by
// the searcher, so Hash must cover everything that changes the legal continuation
// of the game.
type Position interface {
	NextForce() Force
	LastForce() Force
	// LegalMoves lists the playable moves of force in a deterministic order.
	LegalMoves(force Force) []Move
	IsSuicide(force Force, move Move) bool
	Play(move Move) Position
	Pass(force Force) Position
	IsTerminal() bool
	// RegionRatio is the fraction of the board controlled by force, in [0, 1].
	RegionRatio(force Force) float64
	Hash() StateHash
}

// Rollout plays a position to the end of the game and returns the finished position.
type Rollout func(Position, uint64) Position
