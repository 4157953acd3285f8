package searcher

// record holds the statistics of one position. Fields are guarded by the table lock.
type record struct {
	visits  int
	average float64 // mean outcome for the side that moved into the position
	// Number of goroutines currently below this node. A busy record is skipped by
	// selection but stays readable; it is a hint, not a lock.
	inFlight int
}

// A record is only created once a simulation has returned through its position.
func newRecord(outcome float64) *record {
	return &record{visits: 1, average: outcome}
}

// update folds one more outcome into the running mean.
func (r *record) update(outcome float64) {
	r.average = (r.average*float64(r.visits) + outcome) / float64(r.visits+1)
	r.visits++
}

func (r *record) inSearch() bool {
	return r.inFlight > 0
}

func (r *record) enter() {
	r.inFlight++
}

func (r *record) leave() {
	if r.inFlight == 0 {
		panic("leaving a record that was not entered")
	}
	r.inFlight--
}

// Stats is a copy of a record's statistics, safe to keep after the search.
type Stats struct {
	Visits  int
	Average float64
}

func (r *record) stats() Stats {
	return Stats{Visits: r.visits, Average: r.average}
}
