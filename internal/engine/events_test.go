package engine

import "testing"

// seqSource replays a fixed list of draws, cycling if exhausted.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestApplyDelay_MovesAndDropsFlows(t *testing.T) {
	base := []float64{-100, 50, 50}
	src := &seqSource{vals: []float64{0.0}} // every draw is a hit
	got := applyDelay(base, src, 100, 1)

	// Month 1 moves to month 2; month 2 falls off the horizon.
	want := []float64{-100, 0, 50}
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-12) {
			t.Fatalf("month %d: got=%f want=%f", i, got[i], want[i])
		}
	}
	if src.i != 2 {
		t.Fatalf("draws=%d want one per positive installment", src.i)
	}
	// The base schedule must be untouched.
	if base[1] != 50 || base[2] != 50 {
		t.Fatalf("base mutated: %v", base)
	}
}

func TestApplyDelay_DisabledConsumesNoDraws(t *testing.T) {
	base := []float64{-100, 50, 50}
	src := &seqSource{vals: []float64{0.0}}
	if got := applyDelay(base, src, 0, 3); src.i != 0 || !almostEqual(got[1], 50, 0) {
		t.Fatalf("delay with zero probability drew %d times", src.i)
	}
	if got := applyDelay(base, src, 50, 0); src.i != 0 || !almostEqual(got[2], 50, 0) {
		t.Fatalf("delay with zero length drew %d times", src.i)
	}
}

func TestApplyDelay_MissedDrawKeepsFlow(t *testing.T) {
	base := []float64{-100, 50, 50}
	src := &seqSource{vals: []float64{0.99, 0.0}} // miss month 1, hit month 2
	got := applyDelay(base, src, 30, 2)
	if !almostEqual(got[1], 50, 1e-12) {
		t.Fatalf("month 1 should be untouched, got=%f", got[1])
	}
	if !almostEqual(got[2], 0, 1e-12) {
		t.Fatalf("month 2 should be dropped past horizon, got=%f", got[2])
	}
}

func TestApplyDefault_FirstPassageRecovery(t *testing.T) {
	flows := []float64{-100, 12, 12, 12}
	outstanding := []float64{100, 100, 70, 40}
	src := &seqSource{vals: []float64{0.9, 0.001}} // survive month 1, default month 2
	got := applyDefault(flows, outstanding, src, 0.01, 40)

	if !almostEqual(got[1], 12, 1e-12) {
		t.Fatalf("month 1: got=%f want untouched", got[1])
	}
	// Recovery is (1-LGD) x balance at the default month.
	if !almostEqual(got[2], 0.6*70, 1e-12) {
		t.Fatalf("month 2: got=%f want=%f", got[2], 0.6*70)
	}
	if got[3] != 0 {
		t.Fatalf("month 3: got=%f want erased", got[3])
	}
	if src.i != 2 {
		t.Fatalf("draws=%d want scan stops at first default", src.i)
	}
	if flows[2] != 12 || flows[3] != 12 {
		t.Fatalf("input mutated: %v", flows)
	}
}

func TestApplyDefault_NoTriggerReturnsInputUnchanged(t *testing.T) {
	flows := []float64{-100, 12, 12, 12}
	outstanding := []float64{100, 100, 70, 40}
	src := &seqSource{vals: []float64{0.9}}
	got := applyDefault(flows, outstanding, src, 0.01, 40)
	for i := range flows {
		if got[i] != flows[i] {
			t.Fatalf("month %d: got=%f want=%f", i, got[i], flows[i])
		}
	}
}
