package effect

import (
	"testing"

	"github.com/gonewx/uieffect/pkg/types"
)

func TestPopup(t *testing.T) {
	scale := types.NewVec3(9, 9, 9)
	e := Popup(scale)

	if e.Mode != ModeOnce {
		t.Errorf("Mode = %v, want once", e.Mode)
	}
	if len(e.Tracks) != 1 || e.Tracks[0].Field != FieldScale {
		t.Fatalf("Tracks = %+v, want one scale track", e.Tracks)
	}

	want := []PhaseTarget{
		{Value: types.Splat(1), Speed: 0, HoldTimeMs: 300},
		{Value: scale, Speed: 0.09, HoldTimeMs: 200},
		{Value: scale.Mul(0.6), Speed: 0.06, HoldTimeMs: 0},
	}
	got := e.Tracks[0].Sequence.Targets()
	if len(got) != len(want) {
		t.Fatalf("len(targets) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("phase %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPulse_Loops(t *testing.T) {
	e := Pulse(types.Splat(1.2))
	tr := types.DefaultTransform()

	for i := 0; i < 5000; i++ {
		if got := e.Tick(&tr, 16); got != TickContinue {
			t.Fatalf("tick %d: Tick() = %v, repeat effect must never detach", i, got)
		}
		if tr.Scale.X < 1 || tr.Scale.X > 1.2 {
			t.Fatalf("tick %d: scale %v out of [1, 1.2]", i, tr.Scale)
		}
	}
}

func TestSlideIn(t *testing.T) {
	from := types.NewVec3(-200, 300, 0)
	to := types.NewVec3(400, 300, 0)
	e := SlideIn(from, to)
	tr := types.DefaultTransform()

	e.Tick(&tr, 16)
	if tr.Translation != from {
		t.Fatalf("first tick should snap to %v, got %v", from, tr.Translation)
	}

	for i := 0; i < 1000; i++ {
		if e.Tick(&tr, 16) == TickDetach {
			break
		}
	}
	if tr.Translation != to {
		t.Errorf("Translation = %v, want %v", tr.Translation, to)
	}
}
