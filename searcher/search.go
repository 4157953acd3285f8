package searcher

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"uctgo/game"
)

// candidate is a selectable move together with the key of the position it reaches.
type candidate struct {
	move game.Move
	hash game.StateHash
}

// newCandidates keeps the moves of the side to move that are not suicide, in
// enumeration order. Child positions are built here, outside the table lock.
func newCandidates(p game.Position, moves []game.Move) []candidate {
	force := p.NextForce()
	candidates := make([]candidate, 0, len(moves))
	for _, move := range moves {
		if p.IsSuicide(force, move) {
			continue
		}
		candidates = append(candidates, candidate{move: move, hash: p.Play(move).Hash()})
	}
	return candidates
}

// search is the state of one DecideMove call: the table and the shared budget.
type search struct {
	*UCT
	root       game.Position
	candidates []candidate
	table      *table
	completed  atomic.Int64
	seed       uint64
}

type worker struct {
	thread   int
	playouts uint64
}

func newSearch(u *UCT, root game.Position, candidates []candidate, seed uint64) *search {
	return &search{
		UCT:        u,
		root:       root,
		candidates: candidates,
		table:      newTable(),
		seed:       seed,
	}
}

// run starts every goroutine and returns once all of them have observed the
// exhausted budget. There is no early abort.
func (s *search) run() {
	var wg sync.WaitGroup
	for i := 0; i < s.goroutines; i++ {
		wg.Add(1)
		go func(thread int) {
			defer wg.Done()
			s.work(&worker{thread: thread})
		}(i)
	}
	wg.Wait()
}

func (s *search) work(w *worker) {
	for s.pending() {
		s.table.Lock()
		move, stalled := s.table.selectCandidate(s.candidates, w.thread, s.goroutines)
		s.table.Unlock()
		if stalled {
			s.metrics.AddStall()
		}

		s.simulate(s.root.Play(move), w)
		s.metrics.AddEpisode()
	}
}

// pending reports whether the budget is still open. Past the budget, goroutines
// keep going only until every root move has been visited once.
func (s *search) pending() bool {
	if s.completed.Load() < int64(s.simulations) {
		return true
	}
	s.table.Lock()
	defer s.table.Unlock()
	for _, c := range s.candidates {
		if _, ok := s.table.records[c.hash]; !ok {
			return true
		}
	}
	return false
}

// selectCandidate applies UCB1 to the candidates of one position. Caller holds
// the lock.
//
// Unvisited candidates always come first; goroutines spread over them by their
// index so racing goroutines tend to seed different branches. Otherwise the
// candidate with the strictly greatest score wins, the first one on ties, and
// busy candidates are skipped. When every candidate is busy the same rule runs
// again without skipping and stalled is reported.
func (t *table) selectCandidate(candidates []candidate, thread, goroutines int) (move game.Move, stalled bool) {
	if len(candidates) == 0 {
		panic("selecting among no candidates")
	}

	var unexplored []game.Move
	records := make([]*record, len(candidates))
	sum := 0
	for i, c := range candidates {
		r := t.records[c.hash]
		records[i] = r
		if r == nil {
			unexplored = append(unexplored, c.move)
		} else {
			sum += r.visits
		}
	}

	if len(unexplored) > 0 {
		index := thread % goroutines
		if index >= len(unexplored) {
			index = 0
		}
		return unexplored[index], false
	}

	policy := newUCT(CSquared, float64(sum))
	best := func(skipBusy bool) (game.Move, bool) {
		bestMove, bestScore, found := game.PassMove, math.Inf(-1), false
		for i, r := range records {
			if skipBusy && r.inSearch() {
				continue
			}
			if score := policy.evaluate(r.average, float64(r.visits)); score > bestScore {
				bestMove, bestScore, found = candidates[i].move, score, true
			}
		}
		return bestMove, found
	}

	if move, found := best(true); found {
		return move, false
	}
	move, _ = best(false)
	return move, true
}

// simulate runs one simulation through p and returns its outcome for the side
// that moved into p. Each frame updates its own record on the way back up.
func (s *search) simulate(p game.Position, w *worker) float64 {
	s.table.Lock()
	r := s.table.get(p)
	if r != nil {
		r.enter()
	}
	s.table.Unlock()

	if r == nil {
		return s.expand(p, w)
	}

	if p.IsTerminal() {
		s.table.Lock()
		outcome := r.average
		r.visits++
		r.leave()
		s.table.Unlock()

		s.completed.Add(1)
		s.metrics.AddTerminalHit()
		return outcome
	}

	force := p.NextForce()
	var next game.Position
	if candidates := newCandidates(p, p.LegalMoves(force)); len(candidates) == 0 {
		next = p.Pass(force)
	} else {
		s.table.Lock()
		move, stalled := s.table.selectCandidate(candidates, w.thread, s.goroutines)
		s.table.Unlock()
		if stalled {
			s.metrics.AddStall()
		}
		next = p.Play(move)
	}

	// Outcomes alternate perspective every ply
	outcome := 1 - s.simulate(next, w)

	s.table.Lock()
	r.update(outcome)
	r.leave()
	s.table.Unlock()
	return outcome
}

// expand rolls p out without holding the lock and records the first outcome.
func (s *search) expand(p game.Position, w *worker) float64 {
	finished := p
	if !p.IsTerminal() {
		finished = s.rollout(p, w.nextSeed(s.seed))
		s.metrics.AddFullPlayout()
	}
	outcome := finished.RegionRatio(p.LastForce())

	s.table.Lock()
	s.table.expand(p, outcome)
	s.table.Unlock()

	s.completed.Add(1)
	return outcome
}

// nextSeed gives every rollout its own seed, derived from the search seed, the
// goroutine and the goroutine's rollout count.
func (w *worker) nextSeed(base uint64) uint64 {
	seed := game.MixSeed(base, uint64(w.thread), w.playouts)
	w.playouts++
	return seed
}

// bestChild returns the most visited root move, the first one on ties.
func (s *search) bestChild() (game.Move, error) {
	s.table.Lock()
	defer s.table.Unlock()

	best, maxVisits := game.PassMove, -1
	for _, c := range s.candidates {
		r, ok := s.table.records[c.hash]
		if !ok {
			return game.PassMove, fmt.Errorf("%w: move %d", ErrUnvisitedChild, c.move)
		}
		if r.visits > maxVisits {
			best, maxVisits = c.move, r.visits
		}
	}
	return best, nil
}

func (s *search) policy() map[game.Move]Stats {
	s.table.Lock()
	defer s.table.Unlock()

	policy := make(map[game.Move]Stats, len(s.candidates))
	for _, c := range s.candidates {
		if r, ok := s.table.records[c.hash]; ok {
			policy[c.move] = r.stats()
		}
	}
	return policy
}
