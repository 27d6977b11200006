package engine

import (
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
	"github.com/spaghettifunk/meshtext/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	State             interface{}
	FnBoot            Boot
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnReload        OnReload
	FnShutdown        Shutdown
}

type Boot func() error
type Initialize func() error
type Update func(deltaTime float64) error
type Render func(deltaTime float64) error
type OnReload func(res *metadata.Resource) error
type Shutdown func() error
