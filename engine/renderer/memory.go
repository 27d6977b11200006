package renderer

import (
	"sort"
	"sync"

	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/math"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

// InstanceState is what the MemoryServer knows about one live instance.
type InstanceState struct {
	Scenario        *Scenario
	Mesh            *metadata.Mesh
	Materials       map[int]*metadata.Material
	Transform       math.Mat4
	Visible         bool
	ShaderParams    map[string]interface{}
	TransformWrites int
}

// MemoryServer is a headless RenderingServer that records instance state.
// It backs the demo and the tests.
type MemoryServer struct {
	mu        sync.Mutex
	ids       *core.IDAllocator
	instances map[RID]*InstanceState
	created   int
	freed     int
}

func NewMemoryServer() *MemoryServer {
	return &MemoryServer{
		ids:       core.NewIDAllocator(),
		instances: make(map[RID]*InstanceState),
	}
}

func (ms *MemoryServer) InstanceCreate() RID {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	state := &InstanceState{
		Transform:    math.NewMat4Identity(),
		Visible:      true,
		Materials:    make(map[int]*metadata.Material),
		ShaderParams: make(map[string]interface{}),
	}
	rid := RID(ms.ids.Acquire(state))
	ms.instances[rid] = state
	ms.created++
	return rid
}

func (ms *MemoryServer) FreeRID(instance RID) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.instances[instance]; !ok {
		core.LogWarn("free of unknown instance %d", instance)
		return
	}
	if err := ms.ids.Release(uint32(instance)); err != nil {
		core.LogError("%s", err)
	}
	delete(ms.instances, instance)
	ms.freed++
}

func (ms *MemoryServer) InstanceSetScenario(instance RID, scenario *Scenario) {
	ms.with(instance, func(s *InstanceState) { s.Scenario = scenario })
}

func (ms *MemoryServer) InstanceSetBase(instance RID, mesh *metadata.Mesh) {
	ms.with(instance, func(s *InstanceState) { s.Mesh = mesh })
}

func (ms *MemoryServer) InstanceSetSurfaceOverrideMaterial(instance RID, surface int, material *metadata.Material) {
	ms.with(instance, func(s *InstanceState) { s.Materials[surface] = material })
}

func (ms *MemoryServer) InstanceSetTransform(instance RID, transform math.Mat4) {
	ms.with(instance, func(s *InstanceState) {
		s.Transform = transform
		s.TransformWrites++
	})
}

func (ms *MemoryServer) InstanceSetVisible(instance RID, visible bool) {
	ms.with(instance, func(s *InstanceState) { s.Visible = visible })
}

func (ms *MemoryServer) InstanceGeometrySetShaderParameter(instance RID, name string, value interface{}) {
	ms.with(instance, func(s *InstanceState) { s.ShaderParams[name] = value })
}

func (ms *MemoryServer) with(instance RID, fn func(s *InstanceState)) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	s, ok := ms.instances[instance]
	if !ok {
		core.LogWarn("call on unknown instance %d", instance)
		return
	}
	fn(s)
}

// Instance returns a copy of the state of a live instance.
func (ms *MemoryServer) Instance(instance RID) (InstanceState, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	s, ok := ms.instances[instance]
	if !ok {
		return InstanceState{}, false
	}
	return *s, true
}

// Live returns the handles of every live instance in ascending order.
func (ms *MemoryServer) Live() []RID {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	out := make([]RID, 0, len(ms.instances))
	for rid := range ms.instances {
		out = append(out, rid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Counters returns how many instances were created and freed so far.
func (ms *MemoryServer) Counters() (created, freed int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.created, ms.freed
}
