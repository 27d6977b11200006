package renderer

import (
	"github.com/spaghettifunk/meshtext/engine/math"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

// RID is an opaque handle to a draw instance owned by the rendering server.
type RID uint32

// InvalidRID is never returned by InstanceCreate.
const InvalidRID RID = 0

// Scenario is the scene context instances are drawn in.
type Scenario struct {
	Name string
}

// RenderingServer is the sink the text node pushes its glyph instances into.
// Every call is synchronous and made from the frame loop.
type RenderingServer interface {
	InstanceCreate() RID
	FreeRID(instance RID)
	InstanceSetScenario(instance RID, scenario *Scenario)
	InstanceSetBase(instance RID, mesh *metadata.Mesh)
	InstanceSetSurfaceOverrideMaterial(instance RID, surface int, material *metadata.Material)
	InstanceSetTransform(instance RID, transform math.Mat4)
	InstanceSetVisible(instance RID, visible bool)
	InstanceGeometrySetShaderParameter(instance RID, name string, value interface{})
}
