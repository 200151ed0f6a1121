package effect

import (
	"errors"
	"testing"

	"github.com/gonewx/uieffect/pkg/types"
)

func TestNewEffect_Validation(t *testing.T) {
	valid := Track{Field: FieldScale, Sequence: mustSequence(PhaseTarget{Value: types.Splat(1)})}

	tests := []struct {
		name    string
		mode    Mode
		tracks  []Track
		wantErr error
	}{
		{"没有轨道", ModeOnce, nil, ErrNoTracks},
		{"序列为空指针", ModeOnce, []Track{{Field: FieldScale}}, ErrNilSequence},
		{"未知字段", ModeOnce, []Track{{Field: Field(9), Sequence: valid.Sequence}}, ErrUnknownField},
		{"未知模式", Mode(7), []Track{valid}, ErrUnknownMode},
		{"合法", ModeRepeat, []Track{valid}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEffect(tt.mode, tt.tracks...)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewEffect() error: %v", err)
				}
				if e.Mode != tt.mode || len(e.Tracks) != len(tt.tracks) {
					t.Errorf("NewEffect() = %+v", e)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewEffect() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEffect_FinishedWaitsForSlowestTrack(t *testing.T) {
	e := mustEffect(ModeOnce,
		Track{Field: FieldScale, Sequence: mustSequence(PhaseTarget{Value: types.Splat(1)})},
		Track{Field: FieldTranslation, Sequence: mustSequence(
			PhaseTarget{Value: types.NewVec3(10, 0, 0), Speed: 1},
		)},
	)
	tr := types.DefaultTransform()

	// 缩放轨道第 1 帧即结束，位移轨道还需移动 10 帧
	if got := e.Tick(&tr, 1); got != TickContinue {
		t.Fatalf("Tick() = %v, want continue", got)
	}
	if !e.Tracks[0].Sequence.IsFinished() {
		t.Fatal("scale track should be finished after first tick")
	}
	if e.IsFinished() {
		t.Fatal("effect must not finish before translation track")
	}

	for i := 0; i < 10; i++ {
		if got := e.Tick(&tr, 1); got != TickContinue {
			t.Fatalf("tick %d: Tick() = %v, want continue", i, got)
		}
	}
	if tr.Translation != types.NewVec3(10, 0, 0) {
		t.Errorf("Translation = %v, want (10, 0, 0)", tr.Translation)
	}
	if !e.IsFinished() {
		t.Error("effect should be finished once all tracks are finished")
	}
}

func TestEffect_TracksShareDelta(t *testing.T) {
	e := mustEffect(ModeOnce,
		Track{Field: FieldScale, Sequence: mustSequence(PhaseTarget{Value: types.Splat(100), Speed: 1})},
		Track{Field: FieldTranslation, Sequence: mustSequence(PhaseTarget{Value: types.Splat(100), Speed: 1})},
	)
	tr := types.Transform{}

	e.Tick(&tr, 16)
	if tr.Scale != types.Splat(16) || tr.Translation != types.Splat(16) {
		t.Errorf("tracks out of sync: scale=%v translation=%v", tr.Scale, tr.Translation)
	}
}

func TestEffect_OnceDetachesWithoutMutation(t *testing.T) {
	e := mustEffect(ModeOnce, Track{
		Field:    FieldScale,
		Sequence: mustSequence(PhaseTarget{Value: types.Splat(2), Speed: 1}),
	})
	tr := types.DefaultTransform()

	e.Tick(&tr, 5) // 移动到 (2,2,2)
	e.Tick(&tr, 5) // 到达并结束
	if !e.IsFinished() {
		t.Fatal("precondition: effect should be finished")
	}

	before := tr
	if got := e.Tick(&tr, 5); got != TickDetach {
		t.Fatalf("Tick() = %v, want detach", got)
	}
	if tr != before {
		t.Errorf("transform mutated on detach: %+v -> %+v", before, tr)
	}
	if got := e.ApplyModeTransition(); got != TickDetach {
		t.Errorf("ApplyModeTransition() = %v, want detach", got)
	}
}

func TestEffect_ApplyModeTransition_NotFinished(t *testing.T) {
	e := Popup(types.Splat(2))
	if got := e.ApplyModeTransition(); got != TickContinue {
		t.Errorf("ApplyModeTransition() = %v, want continue", got)
	}
	if e.Tracks[0].Sequence.Phase() != 0 {
		t.Error("unfinished effect must not be modified")
	}
}

func TestEffect_RepeatResetsAllTracksTogether(t *testing.T) {
	e := mustEffect(ModeRepeat,
		Track{Field: FieldScale, Sequence: mustSequence(PhaseTarget{Value: types.Splat(1)})},
		Track{Field: FieldTranslation, Sequence: mustSequence(
			PhaseTarget{Value: types.Vec3{}, HoldTimeMs: 30},
			PhaseTarget{Value: types.Vec3{}},
		)},
	)
	tr := types.DefaultTransform()
	for i := 0; i < 10 && !e.IsFinished(); i++ {
		e.Tick(&tr, 10)
	}
	if !e.IsFinished() {
		t.Fatal("precondition: effect should be finished")
	}

	if got := e.ApplyModeTransition(); got != TickContinue {
		t.Fatalf("ApplyModeTransition() = %v, want continue", got)
	}
	for i, track := range e.Tracks {
		if track.Sequence.Phase() != 0 || track.Sequence.ElapsedHoldMs() != 0 {
			t.Errorf("track %d: phase=%d elapsed=%d, want 0/0",
				i, track.Sequence.Phase(), track.Sequence.ElapsedHoldMs())
		}
	}
}

type snapshot struct {
	phase   int
	elapsed uint64
	scale   types.Vec3
}

func TestEffect_RepeatRestartReplaysFirstPass(t *testing.T) {
	// 等待 100ms，放大到 2，再回到 1：一轮结束时回到起点
	e := mustEffect(ModeRepeat, Track{
		Field: FieldScale,
		Sequence: mustSequence(
			PhaseTarget{Value: types.Splat(1), HoldTimeMs: 100},
			PhaseTarget{Value: types.Splat(2), Speed: 0.1},
			PhaseTarget{Value: types.Splat(1), Speed: 0.1},
		),
	})
	tr := types.DefaultTransform()
	seq := e.Tracks[0].Sequence

	var first []snapshot
	for !e.IsFinished() {
		if got := e.Tick(&tr, 10); got != TickContinue {
			t.Fatalf("Tick() = %v during first pass", got)
		}
		first = append(first, snapshot{seq.Phase(), seq.ElapsedHoldMs(), tr.Scale})
	}

	for i, want := range first {
		if got := e.Tick(&tr, 10); got != TickContinue {
			t.Fatalf("repeat tick %d: Tick() = %v, want continue", i, got)
		}
		got := snapshot{seq.Phase(), seq.ElapsedHoldMs(), tr.Scale}
		if got != want {
			t.Fatalf("repeat tick %d: %+v, want %+v", i, got, want)
		}
	}
}

func TestEffect_PopupScenario(t *testing.T) {
	target := types.Splat(9)
	e := Popup(target)
	seq := e.Tracks[0].Sequence
	targets := seq.Targets()
	tr := types.DefaultTransform()

	const deltaMs = 10
	elapsed := 0
	detaches := 0
	prev := tr.Scale

	for i := 0; i < 10000; i++ {
		phaseBefore := seq.Phase()
		out := e.Tick(&tr, deltaMs)
		elapsed += deltaMs

		if out == TickDetach {
			if seq.Phase() != 3 {
				t.Fatalf("detached at phase %d", seq.Phase())
			}
			detaches++
			break
		}

		switch phaseBefore {
		case 0:
			if tr.Scale != types.Splat(1) {
				t.Fatalf("t=%dms: scale moved during initial gap: %v", elapsed, tr.Scale)
			}
			if elapsed < 300 && seq.Phase() != 0 {
				t.Fatalf("t=%dms: left gap phase early", elapsed)
			}
		case 1:
			if tr.Scale.X < prev.X || tr.Scale.X > target.X {
				t.Fatalf("t=%dms: scale %v not growing monotonically toward %v", elapsed, tr.Scale, target)
			}
		case 2:
			if tr.Scale.X > prev.X || tr.Scale.X < targets[2].Value.X {
				t.Fatalf("t=%dms: scale %v not shrinking monotonically toward %v", elapsed, tr.Scale, targets[2].Value)
			}
		}
		prev = tr.Scale
	}

	if detaches != 1 {
		t.Fatalf("detach count = %d, want 1", detaches)
	}
	if tr.Scale != targets[2].Value {
		t.Errorf("final scale = %v, want %v", tr.Scale, targets[2].Value)
	}
}

func TestEffect_Clone(t *testing.T) {
	orig := Popup(types.Splat(3))
	tr := types.DefaultTransform()
	for i := 0; i < 40; i++ {
		orig.Tick(&tr, 10)
	}

	c := orig.Clone()
	if c.Tracks[0].Sequence.Phase() != orig.Tracks[0].Sequence.Phase() {
		t.Error("Clone() should copy cursor state")
	}

	c.Reset()
	if orig.Tracks[0].Sequence.Phase() == 0 {
		t.Error("resetting the clone must not affect the original")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"once", ModeOnce, false},
		{"", ModeOnce, false},
		{"Repeat", ModeRepeat, false},
		{"pingpong", ModeOnce, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownMode) {
			t.Errorf("ParseMode(%q) error should wrap ErrUnknownMode", tt.in)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseField(t *testing.T) {
	if f, err := ParseField("Scale"); err != nil || f != FieldScale {
		t.Errorf("ParseField(Scale) = %v, %v", f, err)
	}
	if f, err := ParseField("translation"); err != nil || f != FieldTranslation {
		t.Errorf("ParseField(translation) = %v, %v", f, err)
	}
	if _, err := ParseField("rotation"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("ParseField(rotation) error = %v, want ErrUnknownField", err)
	}

	tr := types.Transform{}
	if FieldScale.Select(&tr) != &tr.Scale || FieldTranslation.Select(&tr) != &tr.Translation {
		t.Error("Select() should return pointers into the transform")
	}
}
