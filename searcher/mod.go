package searcher

import "errors"

// Hyperparameters for UCT

const CSquared = 2.0 // Exploration constant

// Outcomes are shares of the board in [0, 1], read from the side that just moved.
const (
	MinOutcome = 0.0
	MaxOutcome = 1.0
)

var (
	ErrBudgetTooSmall = errors.New("simulation budget smaller than the number of root moves")
	ErrUnvisitedChild = errors.New("root move was never visited")
)
