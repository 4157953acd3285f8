package metrics

import (
	"sync/atomic"
	"time"
)

type AgentConfig struct {
	ID          int
	Goroutines  int
	Simulations int
	Seed        uint64
	Random      bool // plays uniformly random moves instead of searching
}

type SearchMetric struct {
	Goroutines   int
	Simulations  int // configured budget
	Duration     time.Duration
	Episodes     int // completed simulations, may exceed the budget slightly
	FullPlayouts int // leaf expansions that ran a rollout
	TerminalHits int // simulations that ended on an already known finished game
	Stalls       int // selections that found every candidate busy
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string
	Score          float64 // black area minus white area minus komi
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, simulations int)
	AddEpisode()
	AddFullPlayout()
	AddTerminalHit()
	AddStall()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	simulations  int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	terminalHits atomic.Int32
	stalls       atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, simulations int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.simulations = simulations
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.terminalHits.Store(0)
	m.stalls.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddTerminalHit() {
	m.terminalHits.Add(1)
}

func (m *collector) AddStall() {
	m.stalls.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Simulations:  m.simulations,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		TerminalHits: int(m.terminalHits.Load()),
		Stalls:       int(m.stalls.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, simulations int) {}
func (m *dummyCollector) AddEpisode()                       {}
func (m *dummyCollector) AddFullPlayout()                   {}
func (m *dummyCollector) AddTerminalHit()                   {}
func (m *dummyCollector) AddStall()                         {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
