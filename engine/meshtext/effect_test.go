package meshtext

import (
	"testing"

	"github.com/spaghettifunk/meshtext/engine/math"
	"github.com/spaghettifunk/meshtext/engine/meshtext/effects"
	"github.com/spaghettifunk/meshtext/engine/renderer"
)

type countingEffect struct {
	calls int
}

func (c *countingEffect) UpdateRelativeTransform(instance renderer.RID, index int, transform math.Mat4, time float32, delta float64) math.Mat4 {
	c.calls++
	return transform.TranslatedLocal(math.NewVec3(1, 0, 0))
}

func TestEffectStackEmptyIsIdentity(t *testing.T) {
	var stack EffectStack
	if got := stack.Apply(1, 0, 3, 0.016); !got.Compare(math.NewMat4Identity(), 0) {
		t.Errorf("got %v, want identity", got.Data)
	}
}

func TestEffectStackSkipsNilAndDisabled(t *testing.T) {
	counter := &countingEffect{}
	disabled := effects.NewWave()
	disabled.Disabled = true
	disabled.Speed = 0
	disabled.IndexOffset = 1

	var noSway *effects.Sway
	var noWave *effects.Wave
	stack := EffectStack{nil, counter, noSway, disabled, noWave, counter}
	got := stack.Apply(1, 3, 1, 0.016)
	if counter.calls != 2 {
		t.Errorf("calls = %d, want 2", counter.calls)
	}
	if want := math.NewVec3(2, 0, 0); !got.Position().Compare(want, epsilon) {
		t.Errorf("position = %v, want %v", got.Position(), want)
	}
}

func TestEffectStackOrderMatters(t *testing.T) {
	sway := effects.NewSway()
	sway.Axis = math.NewVec3(0, 0, 1)
	wave := effects.NewWave()
	wave.Intensity = 1

	differs := false
	for _, time := range []float32{0.3, 1.1, 2.0} {
		a := EffectStack{sway, wave}.Apply(1, 0, time, 0)
		b := EffectStack{wave, sway}.Apply(1, 0, time, 0)
		if !a.Compare(b, epsilon) {
			differs = true
		}
	}
	if !differs {
		t.Error("[sway, wave] and [wave, sway] produced the same transforms")
	}
}

func TestEffectStackDefaultSwayAndWaveCommute(t *testing.T) {
	// yaw happens around the very axis the wave moves along
	sway := effects.NewSway()
	wave := effects.NewWave()
	a := EffectStack{sway, wave}.Apply(1, 2, 0.7, 0)
	b := EffectStack{wave, sway}.Apply(1, 2, 0.7, 0)
	if !a.Compare(b, epsilon) {
		t.Errorf("expected default sway and wave to commute:\n%v\n%v", a.Data, b.Data)
	}
}

func TestEffectStackIsPure(t *testing.T) {
	stack := EffectStack{effects.NewSway(), effects.NewWave()}
	first := stack.Apply(4, 2, 1.5, 0.016)
	for i := 0; i < 3; i++ {
		if got := stack.Apply(4, 2, 1.5, 0.016); !got.Compare(first, 0) {
			t.Fatalf("call %d differs: %v vs %v", i, got.Data, first.Data)
		}
	}
}
