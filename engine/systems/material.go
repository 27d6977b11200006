package systems

import (
	"sync"

	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

type materialReference struct {
	ReferenceCount uint64
	AutoRelease    bool
	Material       *metadata.Material
}

// MaterialSystem hands out shared materials by name. A material lives as
// long as it is referenced, unless it was acquired without auto release.
type MaterialSystem struct {
	mu              sync.Mutex
	defaultMaterial *metadata.Material
	materials       map[string]*materialReference
}

func NewMaterialSystem() *MaterialSystem {
	return &MaterialSystem{
		defaultMaterial: metadata.NewMaterial(metadata.DefaultMaterialName),
		materials:       make(map[string]*materialReference),
	}
}

// Acquire returns the material called name, creating it on first use. An
// empty name means no material and returns nil.
func (ms *MaterialSystem) Acquire(name string, autoRelease bool) *metadata.Material {
	if name == "" {
		return nil
	}
	if name == metadata.DefaultMaterialName {
		return ms.GetDefault()
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ref, ok := ms.materials[name]
	if !ok {
		ref = &materialReference{
			AutoRelease: autoRelease,
			Material:    metadata.NewMaterial(name),
		}
		ms.materials[name] = ref
		core.LogDebug("material '%s' created", name)
	}
	ref.ReferenceCount++
	return ref.Material
}

// Release drops one reference to the material called name.
func (ms *MaterialSystem) Release(name string) {
	if name == "" || name == metadata.DefaultMaterialName {
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ref, ok := ms.materials[name]
	if !ok {
		core.LogWarn("tried to release non-existent material: '%s'", name)
		return
	}
	if ref.ReferenceCount > 0 {
		ref.ReferenceCount--
	}
	if ref.ReferenceCount == 0 && ref.AutoRelease {
		delete(ms.materials, name)
		core.LogDebug("material '%s' released", name)
	}
}

func (ms *MaterialSystem) GetDefault() *metadata.Material {
	return ms.defaultMaterial
}

// ReferenceCount reports how often name is currently held.
func (ms *MaterialSystem) ReferenceCount(name string) uint64 {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ref, ok := ms.materials[name]; ok {
		return ref.ReferenceCount
	}
	return 0
}

func (ms *MaterialSystem) Shutdown() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.materials = make(map[string]*materialReference)
	return nil
}
