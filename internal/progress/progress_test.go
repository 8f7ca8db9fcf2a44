package progress

import (
	"testing"
	"time"
)

func TestTickAttributesNamesInSelectionOrder(t *testing.T) {
	sim := New([]string{"alice.pdf", "bob.pdf", "carol.pdf"}, nil)
	sim.advance = func() bool { return true }

	sim.Tick()
	snap := sim.Snapshot()
	if snap.Processed != 1 || snap.CurrentCV != "alice.pdf" {
		t.Fatalf("unexpected snapshot after first tick: %+v", snap)
	}

	sim.Tick()
	sim.Tick()
	snap = sim.Snapshot()
	if snap.Processed != 3 || snap.CurrentCV != "carol.pdf" {
		t.Fatalf("unexpected snapshot after three ticks: %+v", snap)
	}

	// Once the counter reaches the total, further ticks only switch to the
	// finalizing stage.
	sim.Tick()
	snap = sim.Snapshot()
	if snap.Processed != 3 {
		t.Fatalf("processed must never exceed total, got %d", snap.Processed)
	}
	if snap.Stage != "Finalizing results..." {
		t.Fatalf("unexpected stage: %q", snap.Stage)
	}
}

func TestTickWithoutAdvanceCyclesStagesOnly(t *testing.T) {
	sim := New([]string{"alice.pdf"}, nil)
	sim.advance = func() bool { return false }

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		sim.Tick()
		seen[sim.Snapshot().Stage] = true
	}

	if snap := sim.Snapshot(); snap.Processed != 0 || snap.CurrentCV != "" {
		t.Fatalf("expected no progress, got %+v", snap)
	}
	if len(seen) != len(stages) {
		t.Fatalf("expected all %d stages cycled, saw %d", len(stages), len(seen))
	}
}

func TestFinishSnapsToFinalState(t *testing.T) {
	sim := New([]string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"}, nil)
	sim.advance = func() bool { return true }
	sim.Tick()

	snap := sim.Finish()
	if snap.Processed != snap.Total || snap.Total != 4 {
		t.Fatalf("expected processed == total == 4, got %+v", snap)
	}
	if snap.Stage != "Complete!" {
		t.Fatalf("unexpected final stage: %q", snap.Stage)
	}
	if snap.CurrentCV != "" {
		t.Fatalf("expected no current CV after finish")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	sim := New([]string{"a.pdf"}, nil)
	sim.Start()

	sim.Stop()
	sim.Stop()
	// Finish after Stop must also be safe.
	if snap := sim.Finish(); snap.Processed != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestStopTearsDownTicker(t *testing.T) {
	ticks := make(chan Snapshot, 64)
	sim := New([]string{"a.pdf", "b.pdf"}, func(s Snapshot) { ticks <- s })
	sim.SetInterval(time.Millisecond)
	sim.Start()

	// Wait for at least one tick so the loop is demonstrably running.
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatalf("simulation never ticked")
	}

	sim.Stop()

	// Drain anything emitted before Stop won the race, then verify silence.
	deadline := time.After(20 * time.Millisecond)
drain:
	for {
		select {
		case <-ticks:
		case <-deadline:
			break drain
		}
	}

	select {
	case snap := <-ticks:
		t.Fatalf("tick after Stop: %+v", snap)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestSnapshotPercent(t *testing.T) {
	tests := []struct {
		processed, total, expect int
	}{
		{0, 0, 0},
		{0, 4, 0},
		{1, 3, 33},
		{2, 3, 67},
		{4, 4, 100},
	}

	for _, tt := range tests {
		snap := Snapshot{Processed: tt.processed, Total: tt.total}
		if got := snap.Percent(); got != tt.expect {
			t.Fatalf("percent(%d/%d): expected %d, got %d", tt.processed, tt.total, tt.expect, got)
		}
	}
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	sim := New(nil, nil)
	sim.SetInterval(-5 * time.Millisecond)
	if sim.interval != DefaultInterval {
		t.Fatalf("expected default interval kept, got %v", sim.interval)
	}
}
