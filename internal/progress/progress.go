// Package progress fakes per-CV matching progress while the one real match
// request is pending. The backend gives no incremental signal, so everything
// here is cosmetic: the owner must stop the simulation the instant the
// request settles, under success or failure, and snap the counters to the
// true final state before revealing anything.
package progress

import (
	"math/rand"
	"sync"
	"time"
)

// Stage labels cycled while waiting. Shown in order, wrapping around.
var stages = []string{
	"Extracting CV content...",
	"Analyzing skills and experience...",
	"Comparing with job requirements...",
	"Calculating match score...",
	"Generating insights...",
}

const (
	// DefaultInterval is the tick period of the simulation.
	DefaultInterval = 800 * time.Millisecond

	// advanceChance is the per-tick probability that the processed counter
	// moves toward the total.
	advanceChance = 0.7

	finalizingStage = "Finalizing results..."
	completeStage   = "Complete!"
)

// Snapshot is one observable state of the simulation.
type Snapshot struct {
	Processed int
	Total     int
	Stage     string
	CurrentCV string
}

// Percent reports completion rounded to a whole percent.
func (s Snapshot) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(float64(s.Processed)/float64(s.Total)*100 + 0.5)
}

// Simulator runs the cosmetic ticker alongside a pending match request.
// Progress is attributed to CV names in selection order. The simulator's
// lifetime must stay within the request's lifetime.
type Simulator struct {
	mu        sync.Mutex
	names     []string
	processed int
	stageIdx  int
	stage     string
	currentCV string

	interval time.Duration
	advance  func() bool
	onTick   func(Snapshot)

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

// New builds a simulator over the selected CV names. onTick receives a
// snapshot after every tick; it may be nil.
func New(names []string, onTick func(Snapshot)) *Simulator {
	return &Simulator{
		names:    names,
		interval: DefaultInterval,
		advance:  func() bool { return rand.Float64() < advanceChance },
		onTick:   onTick,
		done:     make(chan struct{}),
		stage:    stages[0],
	}
}

// SetInterval overrides the tick period. Only valid before Start.
func (s *Simulator) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// Start launches the ticking goroutine and returns immediately.
func (s *Simulator) Start() {
	s.ticker = time.NewTicker(s.interval)
	go s.loop()
}

func (s *Simulator) loop() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.Tick()
		}
	}
}

// Tick advances the simulation by one step. Exposed so the owner of a
// stopped ticker (and tests) can drive it deterministically.
func (s *Simulator) Tick() {
	s.mu.Lock()
	if s.processed < len(s.names) {
		s.stage = stages[s.stageIdx%len(stages)]
		s.stageIdx++

		if s.advance() {
			s.processed++
			s.currentCV = s.names[s.processed-1]
		}
	} else {
		s.stage = finalizingStage
	}
	snap := s.snapshotLocked()
	cb := s.onTick
	s.mu.Unlock()

	if cb != nil {
		cb(snap)
	}
}

// Stop tears the ticker down. Idempotent; safe to call in any state and from
// any goroutine.
func (s *Simulator) Stop() {
	s.stopOnce.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
	})
}

// Finish stops the simulation and snaps the counters to the true final
// state: processed equals total regardless of how the ticks went.
func (s *Simulator) Finish() Snapshot {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed = len(s.names)
	s.currentCV = ""
	s.stage = completeStage
	return s.snapshotLocked()
}

func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Simulator) snapshotLocked() Snapshot {
	return Snapshot{
		Processed: s.processed,
		Total:     len(s.names),
		Stage:     s.stage,
		CurrentCV: s.currentCV,
	}
}
