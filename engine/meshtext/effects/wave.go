package effects

import (
	"github.com/spaghettifunk/meshtext/engine/math"
	"github.com/spaghettifunk/meshtext/engine/renderer"
)

// Wave moves each glyph along Direction (up by default). With Bounce the
// wave is rectified so glyphs never dip below their rest position.
type Wave struct {
	Speed       float32
	IndexOffset float32
	Intensity   float32
	Bounce      bool
	Direction   math.Vec3
	Disabled    bool
}

func NewWave() *Wave {
	return &Wave{
		Speed:       1,
		IndexOffset: 0,
		Intensity:   0.2,
		Direction:   math.NewVec3Up(),
	}
}

func (w *Wave) IsEnabled() bool {
	return w != nil && !w.Disabled
}

func (w *Wave) UpdateRelativeTransform(instance renderer.RID, index int, transform math.Mat4, time float32, delta float64) math.Mat4 {
	if w == nil {
		return transform
	}
	direction := w.Direction
	if direction == (math.Vec3{}) {
		direction = math.NewVec3Up()
	}
	value := math.Sin(time*w.Speed + w.IndexOffset*float32(index))
	if w.Bounce {
		value = math.Abs(value)
	}
	return transform.TranslatedLocal(direction.MulScalar(value * w.Intensity))
}
