package fx

import "testing"

func TestTransitionSwapsAtMidpoint(t *testing.T) {
	tr := NewTransition(5)
	if tr.Active() {
		t.Fatalf("expected idle transition")
	}

	swaps := 0
	tr.Start(func() { swaps++ })
	if !tr.Active() {
		t.Fatalf("expected transition running after Start")
	}

	for i := 1; i <= 4; i++ {
		if !tr.Update() {
			t.Fatalf("tick %d: expected fade still covering", i)
		}
		if swaps != 0 {
			t.Fatalf("tick %d: swap fired early", i)
		}
	}

	if !tr.Update() {
		t.Fatalf("expected fade-in to follow the swap")
	}
	if swaps != 1 {
		t.Fatalf("expected swap at the midpoint, fired %d times", swaps)
	}

	for i := 1; i < 5; i++ {
		if !tr.Update() {
			t.Fatalf("fade-in tick %d: expected fade still covering", i)
		}
	}
	if tr.Update() {
		t.Fatalf("expected transition finished")
	}
	if tr.Active() {
		t.Fatalf("expected idle transition after the fade-in")
	}
	if swaps != 1 {
		t.Fatalf("expected exactly one swap, got %d", swaps)
	}
}

func TestTransitionStartWhileRunningIsDropped(t *testing.T) {
	tr := NewTransition(3)

	first, second := 0, 0
	tr.Start(func() { first++ })
	tr.Update()
	tr.Start(func() { second++ })

	for i := 0; i < 20 && tr.Active(); i++ {
		tr.Update()
	}
	if first != 1 || second != 0 {
		t.Fatalf("expected only the first callback, got first=%d second=%d", first, second)
	}
}

func TestTransitionRestartsAfterFinishing(t *testing.T) {
	tr := NewTransition(2)

	swaps := 0
	run := func() {
		tr.Start(func() { swaps++ })
		for i := 0; i < 20 && tr.Active(); i++ {
			tr.Update()
		}
	}
	run()
	run()

	if swaps != 2 {
		t.Fatalf("expected one swap per run, got %d", swaps)
	}
}

func TestTransitionUpdateWhenIdle(t *testing.T) {
	tr := NewTransition(4)
	if tr.Update() {
		t.Fatalf("expected idle update to report uncovered")
	}
}
