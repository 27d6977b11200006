package meshtext

import (
	"github.com/spaghettifunk/meshtext/engine/math"
	"github.com/spaghettifunk/meshtext/engine/renderer"
)

// Effect mutates the relative transform of a glyph. Implementations must be
// pure: the result may only depend on the arguments and the effect's own
// settings, never on earlier calls.
type Effect interface {
	UpdateRelativeTransform(instance renderer.RID, index int, transform math.Mat4, time float32, delta float64) math.Mat4
}

// Switchable is implemented by effects that can be turned off without being
// removed from a stack.
type Switchable interface {
	IsEnabled() bool
}

// EffectStack is an ordered list of effects folded left to right.
type EffectStack []Effect

// Apply folds the stack over the identity transform for one glyph.
func (es EffectStack) Apply(instance renderer.RID, index int, time float32, delta float64) math.Mat4 {
	relative := math.NewMat4Identity()
	for _, effect := range es {
		if effect == nil {
			continue
		}
		if sw, ok := effect.(Switchable); ok && !sw.IsEnabled() {
			continue
		}
		relative = effect.UpdateRelativeTransform(instance, index, relative, time, delta)
	}
	return relative
}
