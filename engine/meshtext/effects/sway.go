// Package effects holds the stock text effects.
package effects

import (
	"github.com/spaghettifunk/meshtext/engine/math"
	"github.com/spaghettifunk/meshtext/engine/renderer"
)

// Sway rocks each glyph around Axis (yaw around up by default).
type Sway struct {
	Speed        float32
	IndexOffset  float32
	AngleDegrees float32
	Axis         math.Vec3
	Disabled     bool
}

func NewSway() *Sway {
	return &Sway{
		Speed:        1,
		IndexOffset:  0,
		AngleDegrees: 30,
		Axis:         math.NewVec3Up(),
	}
}

// IsEnabled reports false for a nil sway so stacks can hold typed nils.
func (s *Sway) IsEnabled() bool {
	return s != nil && !s.Disabled
}

func (s *Sway) UpdateRelativeTransform(instance renderer.RID, index int, transform math.Mat4, time float32, delta float64) math.Mat4 {
	if s == nil {
		return transform
	}
	axis := s.Axis
	if axis == (math.Vec3{}) {
		axis = math.NewVec3Up()
	}
	angle := math.Sin(time*s.Speed+float32(index)*s.IndexOffset) * math.DegToRad(s.AngleDegrees)
	return transform.RotatedLocal(axis, angle)
}
