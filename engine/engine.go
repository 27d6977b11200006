package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/meshtext/engine/assets"
	"github.com/spaghettifunk/meshtext/engine/containers"
	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/renderer"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
	"github.com/spaghettifunk/meshtext/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     atomic.Bool
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64
	frameCount    uint64
	reloads       *containers.RingQueue[*metadata.Resource]
}

// New wires the systems for g around server. The game's SystemManager is set
// so its callbacks can reach them.
func New(g *Game, server renderer.RenderingServer) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, errors.New("game and application config are required")
	}
	if server == nil {
		server = renderer.NewMemoryServer()
	}
	config := g.ApplicationConfig
	if config.LogLevel != "" {
		if err := core.LogSetLevel(config.LogLevel); err != nil {
			return nil, err
		}
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}

	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	sm, err := systems.NewSystemManager(server, am, workers)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	g.SystemManager = sm

	queueSize := config.ReloadQueueSize
	if queueSize < 1 {
		queueSize = 16
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		assetManager:  am,
		systemManager: sm,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
		reloads:       containers.NewRingQueue[*metadata.Resource](queueSize),
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageBooting
	if e.gameInstance.FnBoot != nil {
		if err := e.gameInstance.FnBoot(); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageBootComplete

	e.currentStage = EngineStageInitializing
	e.systemManager.Events.Register(core.EventCodeApplicationQuit, e, e.onEvent)

	if dir := e.gameInstance.ApplicationConfig.AssetsDir; dir != "" {
		if err := e.assetManager.Watch(dir, e.onAssetReloaded); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		core.LogInfo("watching %s for asset changes", dir)
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageInitialized
	e.isRunning.Store(true)
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return errors.New("engine must be initialized before running")
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	config := e.gameInstance.ApplicationConfig
	var targetFrameSeconds float64
	if config.TargetFrameRate > 0 {
		targetFrameSeconds = 1.0 / config.TargetFrameRate
	}

	for e.isRunning.Load() {
		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := time.Now()

		e.applyReloads()

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("game update failed, shutting down: %s", err)
				e.isRunning.Store(false)
				return err
			}
		}

		// Call the game's render routine.
		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(delta); err != nil {
				core.LogError("game render failed, shutting down: %s", err)
				e.isRunning.Store(false)
				return err
			}
		}

		// Figure out how long the frame took and, if below the target, give
		// the rest back to the OS.
		frameElapsedTime := time.Since(frameStartTime).Seconds()
		if remaining := targetFrameSeconds - frameElapsedTime; remaining > 0 {
			time.Sleep(time.Duration(remaining * float64(time.Second)))
		}
		e.metrics.Update(delta)

		e.frameCount++
		if config.MaxFrames > 0 && e.frameCount >= config.MaxFrames {
			e.isRunning.Store(false)
		}

		// Update last time
		e.lastTime = currentTime
	}

	return nil
}

// Stop asks the frame loop to return after the current frame. It is safe to
// call from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.isRunning.Store(false)
	core.LogInfo("shutting down after %d frames (%.1f fps, %.2f ms/frame)", e.frameCount, e.metrics.FPS(), e.metrics.FrameTime())

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := e.assetManager.Close(); err != nil && !errors.Is(err, core.ErrWatcherClosed) {
		errs = append(errs, err)
	}
	if err := e.systemManager.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Frames returns how many frames Run has completed.
func (e *Engine) Frames() uint64 {
	return e.frameCount
}

// Metrics returns the frame statistics of the loop.
func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// onAssetReloaded runs on the watcher goroutine; the frame loop applies the
// queued resources.
func (e *Engine) onAssetReloaded(res *metadata.Resource, err error) {
	if err != nil {
		return
	}
	if qerr := e.reloads.Enqueue(res); qerr != nil {
		core.LogWarn("dropping reload of %s: %s", res.FullPath, qerr)
	}
}

func (e *Engine) applyReloads() {
	for !e.reloads.IsEmpty() {
		res, err := e.reloads.Dequeue()
		if err != nil {
			return
		}
		if e.gameInstance.FnOnReload == nil {
			continue
		}
		if err := e.gameInstance.FnOnReload(res); err != nil {
			core.LogWarn("apply reload of %s: %s", res.FullPath, err)
		}
	}
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	switch code {
	case core.EventCodeApplicationQuit:
		core.LogInfo("EventCodeApplicationQuit received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}
