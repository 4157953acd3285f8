// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines searching in parallel.
const GO_ROUTINES = 8

// SIMULATIONS defines the simulation budget of one move decision.
const SIMULATIONS = 1000

// BOARD_SIZE defines the default board width.
const BOARD_SIZE = 9

// MAX_TURNS caps the number of moves in one game, passes included.
const MAX_TURNS = 300

// KOMI is white's compensation under area scoring.
const KOMI = 7.5
