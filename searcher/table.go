package searcher

import (
	"sync"

	"uctgo/game"
)

// table is the transposition store of a single search. One mutex guards the map
// and every record in it; all methods expect the caller to hold it.
type table struct {
	sync.Mutex
	records map[game.StateHash]*record
}

func newTable() *table {
	return &table{records: make(map[game.StateHash]*record)}
}

func (t *table) get(p game.Position) *record {
	return t.records[p.Hash()]
}

// getChild looks up the position reached by playing move from p.
func (t *table) getChild(p game.Position, move game.Move) *record {
	if move.IsPass() {
		return t.get(p.Pass(p.NextForce()))
	}
	return t.get(p.Play(move))
}

// insert stores r for p, replacing any existing record.
func (t *table) insert(p game.Position, r *record) {
	t.records[p.Hash()] = r
}

// expand records the first outcome seen through p. When another goroutine expanded
// the same position while this one was rolling out, the outcome is folded into its
// record so no simulation is lost.
func (t *table) expand(p game.Position, outcome float64) *record {
	if r, ok := t.records[p.Hash()]; ok {
		r.update(outcome)
		return r
	}
	r := newRecord(outcome)
	t.insert(p, r)
	return r
}

func (t *table) len() int {
	return len(t.records)
}
