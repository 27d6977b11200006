package systems

import (
	"errors"

	"github.com/spaghettifunk/meshtext/engine/assets"
	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/renderer"
)

type SystemManager struct {
	Server         renderer.RenderingServer
	Events         *core.EventBus
	AssetManager   *assets.AssetManager
	FontSystem     *FontSystem
	MaterialSystem *MaterialSystem
	JobSystem      *JobSystem
}

func NewSystemManager(server renderer.RenderingServer, am *assets.AssetManager, workers int) (*SystemManager, error) {
	js, err := NewJobSystem(workers, workers*4)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		Server:         server,
		Events:         core.NewEventBus(),
		AssetManager:   am,
		FontSystem:     NewFontSystem(am, js),
		MaterialSystem: NewMaterialSystem(),
		JobSystem:      js,
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	var errs []error
	if err := sm.JobSystem.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	if err := sm.FontSystem.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	if err := sm.MaterialSystem.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	sm.Events.Shutdown()
	return errors.Join(errs...)
}
