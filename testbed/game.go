package testbed

import (
	"fmt"
	"path/filepath"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/spaghettifunk/meshtext/engine"
	"github.com/spaghettifunk/meshtext/engine/assets/loaders"
	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/math"
	"github.com/spaghettifunk/meshtext/engine/meshtext"
	"github.com/spaghettifunk/meshtext/engine/meshtext/effects"
	"github.com/spaghettifunk/meshtext/engine/renderer"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

// Options are the command line overrides applied on top of the text config.
type Options struct {
	Text       string
	ConfigPath string
	FontPath   string
	// Width enables wrapping by width when above zero.
	Width int
	// WordWrap overrides the config when set.
	WordWrap *bool
	// LogEvery logs the layout every N frames. Zero logs the first frame only.
	LogEvery uint64
	// Spin turns the node around its up axis, in degrees per second.
	Spin float32
}

type TestGame struct {
	*engine.Game
}

type gameState struct {
	options  *Options
	scenario *renderer.Scenario
	node     *meshtext.MeshText

	fontPath     string
	materialName string
	frame        uint64
}

func NewTestGame(config *engine.ApplicationConfig, options *Options) *TestGame {
	if options == nil {
		options = &Options{}
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &gameState{
				options:  options,
				scenario: &renderer.Scenario{Name: "testbed"},
			},
		},
	}

	tg.FnBoot = tg.Boot
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnReload = tg.OnReload
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Boot() error {
	core.LogInfo("booting %s...", g.ApplicationConfig.Name)
	return nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}
	state := g.State.(*gameState)

	cfg, err := g.textConfig(state.options)
	if err != nil {
		return err
	}
	if err := g.resolve(cfg); err != nil {
		return err
	}

	node, err := meshtext.New(g.SystemManager.Server, cfg, g.SystemManager.Events)
	if err != nil {
		return err
	}
	state.node = node

	g.SystemManager.Events.Register(core.EventCodeTextChanged, g, g.onTextEvent)
	g.SystemManager.Events.Register(core.EventCodeFontChanged, g, g.onTextEvent)
	g.SystemManager.Events.Register(core.EventCodeMaterialOverrideChanged, g, g.onTextEvent)

	node.EnterTree(state.scenario)
	core.LogInfo("text node entered '%s' with %d glyph instances", state.scenario.Name, len(node.Instances()))
	return nil
}

// textConfig loads the config file, if any, and applies the overrides.
func (g *TestGame) textConfig(options *Options) (*meshtext.Config, error) {
	cfg := meshtext.DefaultConfig()
	if options.ConfigPath != "" {
		loaded, err := meshtext.LoadConfig(options.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if options.Text != "" {
		cfg.Text = options.Text
	}
	if options.FontPath != "" {
		cfg.FontPath = options.FontPath
	}
	if options.Width > 0 {
		cfg.UseMaxCharacterWidth = true
		cfg.MaxCharacterWidth = options.Width
	}
	if options.WordWrap != nil {
		cfg.WordWrap = *options.WordWrap
	}
	if len(cfg.EffectStack) == 0 {
		cfg.EffectStack = meshtext.EffectStack{effects.NewWave()}
	}
	return cfg, cfg.Validate()
}

// resolve turns the font path and material name of cfg into the objects the
// node binds. Without a font path the Go Regular face covers the text.
func (g *TestGame) resolve(cfg *meshtext.Config) error {
	state := g.State.(*gameState)

	if cfg.FontPath != state.fontPath || cfg.Font == nil {
		if cfg.FontPath != "" {
			font, err := g.SystemManager.FontSystem.Acquire(cfg.FontPath, nil)
			if err != nil {
				return err
			}
			cfg.Font = font
		} else {
			data, err := loaders.ParseSystemFont(goregular.TTF, cfg.Text+loaders.DefaultSystemFontCharacters)
			if err != nil {
				return err
			}
			cfg.Font = meshtext.NewFont(data)
		}
		if state.fontPath != "" {
			g.SystemManager.FontSystem.Release(state.fontPath)
		}
		state.fontPath = cfg.FontPath
	}

	if cfg.MaterialOverrideName != state.materialName || cfg.MaterialOverride == nil {
		cfg.MaterialOverride = g.SystemManager.MaterialSystem.Acquire(cfg.MaterialOverrideName, true)
		g.SystemManager.MaterialSystem.Release(state.materialName)
		state.materialName = cfg.MaterialOverrideName
	}
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	if spin := state.options.Spin; spin != 0 {
		angle := math.DegToRad(spin * float32(deltaTime))
		state.node.Transform.Rotate(math.NewQuatFromAxisAngle(math.NewVec3Up(), angle))
	}
	state.node.Process(deltaTime)
	return nil
}

func (g *TestGame) Render(deltaTime float64) error {
	state := g.State.(*gameState)
	state.frame++

	every := state.options.LogEvery
	if state.frame != 1 && (every == 0 || state.frame%every != 0) {
		return nil
	}

	layout := state.node.Layout()
	if layout == nil {
		return nil
	}
	core.LogInfo("frame %d: %d line(s), %d glyph(s), elapsed %.3fs", state.frame, layout.LineCount(), len(state.node.Instances()), state.node.Elapsed())
	for i, line := range layout.Lines {
		core.LogInfo("  %2d |%s| offset %.2f", i, line, layout.HorizontalOffsets[i])
	}
	core.LogDebug("  vertical offset %.2f", layout.VerticalOffset)
	if instances := state.node.Instances(); len(instances) > 0 {
		first := instances[0]
		pos := first.Final().Position()
		core.LogInfo("  first glyph %q at cell (%d, %d), Pos=[%7.3f %7.3f %7.3f]",
			first.Character, first.Position.X, first.Position.Y, pos.X, pos.Y, pos.Z)
	}
	corners := state.node.BoundingCorners()
	core.LogDebug("  bounds TR=%v BL=%v", corners[0], corners[2])
	return nil
}

// OnReload applies assets changed on disk to the node.
func (g *TestGame) OnReload(res *metadata.Resource) error {
	state := g.State.(*gameState)

	switch res.Type {
	case metadata.ResourceTypeTextConfig:
		cfg, ok := res.Data.(*meshtext.Config)
		if !ok {
			return fmt.Errorf("text config %s carries %T", res.FullPath, res.Data)
		}
		if cfg.FontPath == state.fontPath {
			cfg.Font = state.node.Font()
		}
		if cfg.MaterialOverrideName == state.materialName {
			cfg.MaterialOverride = state.node.MaterialOverride()
		}
		if len(cfg.EffectStack) == 0 {
			cfg.EffectStack = state.node.Effects
		}
		if err := g.resolve(cfg); err != nil {
			return err
		}
		return state.node.Configure(cfg)

	case metadata.ResourceTypeMeshFont, metadata.ResourceTypeBitmapFont, metadata.ResourceTypeSystemFont:
		font, ok := g.SystemManager.FontSystem.Reload(res)
		if !ok || !samePath(res.FullPath, state.fontPath) {
			return nil
		}
		state.node.SetFont(font)
	}
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	if state.node == nil {
		return nil
	}
	state.node.ExitTree()
	if state.fontPath != "" {
		g.SystemManager.FontSystem.Release(state.fontPath)
	}
	g.SystemManager.MaterialSystem.Release(state.materialName)

	if ms, ok := g.SystemManager.Server.(*renderer.MemoryServer); ok {
		created, freed := ms.Counters()
		core.LogInfo("instances created %d, freed %d, live %d", created, freed, len(ms.Live()))
	}
	return nil
}

func (g *TestGame) onTextEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	switch code {
	case core.EventCodeTextChanged:
		core.LogInfo("text changed to %q", data.Data)
	case core.EventCodeFontChanged:
		if font, ok := data.Data.(*meshtext.Font); ok && font != nil {
			core.LogInfo("font changed to '%s'", font.Name)
		}
	case core.EventCodeMaterialOverrideChanged:
		if material, ok := data.Data.(*metadata.Material); ok && material != nil {
			core.LogInfo("material override changed to '%s'", material.Name)
		}
	}
	return false
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
