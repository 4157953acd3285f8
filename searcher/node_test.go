package searcher

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"uctgo/game"
)

// mockGame is a uniform tree of the given depth. Every node offers moves
// 0..branching-1 and black's share of a finished game is read from value.
type mockGame struct {
	branching int
	depth     int
	suicides  map[game.Move]bool // root moves that are suicide for black
	value     func(path []game.Move) float64
}

type mockPosition struct {
	game *mockGame
	path []game.Move
}

func newMockPosition(g *mockGame) mockPosition {
	if g.value == nil {
		g.value = func([]game.Move) float64 { return 0.5 }
	}
	return mockPosition{game: g}
}

func (m mockPosition) NextForce() game.Force {
	if len(m.path)%2 == 0 {
		return game.Black
	}
	return game.White
}

func (m mockPosition) LastForce() game.Force {
	return m.NextForce().Opponent()
}

func (m mockPosition) LegalMoves(force game.Force) []game.Move {
	if m.IsTerminal() {
		return nil
	}
	moves := make([]game.Move, m.game.branching)
	for i := range moves {
		moves[i] = game.Move(i)
	}
	return moves
}

func (m mockPosition) IsSuicide(force game.Force, move game.Move) bool {
	return len(m.path) == 0 && m.game.suicides[move]
}

func (m mockPosition) Play(move game.Move) game.Position {
	path := make([]game.Move, len(m.path), len(m.path)+1)
	copy(path, m.path)
	return mockPosition{game: m.game, path: append(path, move)}
}

func (m mockPosition) Pass(force game.Force) game.Position {
	return m.Play(game.PassMove)
}

func (m mockPosition) IsTerminal() bool {
	return len(m.path) >= m.game.depth
}

func (m mockPosition) RegionRatio(force game.Force) float64 {
	black := m.game.value(m.path)
	if force == game.Black {
		return black
	}
	return 1 - black
}

func (m mockPosition) Hash() game.StateHash {
	hash := uint64(14695981039346656037)
	for _, move := range m.path {
		hash ^= uint64(move + 2)
		hash *= 1099511628211
	}
	return game.StateHash(hash)
}

// firstMoveRollout plays move 0 until the end and counts its calls.
func firstMoveRollout(calls *atomic.Int64) game.Rollout {
	return func(p game.Position, seed uint64) game.Position {
		calls.Add(1)
		for !p.IsTerminal() {
			p = p.Play(p.LegalMoves(p.NextForce())[0])
		}
		return p
	}
}

func TestRecord(t *testing.T) {
	t.Run("new record counts its first outcome", func(t *testing.T) {
		r := newRecord(0.25)

		require.Equal(t, 1, r.visits, "Record should start with one visit")
		require.Equal(t, 0.25, r.average, "Record should start at its first outcome")
		require.False(t, r.inSearch(), "Record should not start busy")
	})

	t.Run("update keeps the running mean", func(t *testing.T) {
		r := newRecord(0.5)
		r.update(1)
		r.update(0)
		r.update(0.9)

		require.Equal(t, 4, r.visits, "Every update should add a visit")
		require.InDelta(t, (0.5+1+0+0.9)/4, r.average, 1e-9, "Average should be the mean of all outcomes")
	})

	t.Run("enter and leave mark the record busy", func(t *testing.T) {
		r := newRecord(0)
		r.enter()
		r.enter()
		require.True(t, r.inSearch(), "Entered record should be busy")

		r.leave()
		require.True(t, r.inSearch(), "Record should stay busy while a goroutine is below it")

		r.leave()
		require.False(t, r.inSearch(), "Record should be free once every goroutine left")
	})

	t.Run("leaving a free record panics", func(t *testing.T) {
		r := newRecord(0)

		require.Panics(t, func() {
			r.leave()
		}, "Should panic when leaving more often than entering")
	})

	t.Run("stats copy the counters", func(t *testing.T) {
		r := newRecord(0.75)
		r.update(0.25)

		require.Equal(t, Stats{Visits: 2, Average: 0.5}, r.stats())
	})
}
