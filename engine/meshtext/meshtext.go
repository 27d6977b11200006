package meshtext

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/math"
	"github.com/spaghettifunk/meshtext/engine/renderer"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

const (
	// TintParameter is the shader parameter the tint colour is pushed to.
	TintParameter = "tint"
	// MaxCharacterWidthLimit is the largest accepted max character width.
	MaxCharacterWidthLimit = 2147483647
)

// GlyphInstance is one draw instance bound to the character at Index.
type GlyphInstance struct {
	RID       renderer.RID
	Index     int
	Character rune
	Mesh      *metadata.Mesh
	Position  GridPosition
	Base      math.Mat4
	Relative  math.Mat4
}

// Final is the transform pushed to the rendering server.
func (g *GlyphInstance) Final() math.Mat4 {
	return g.Base.Compose(g.Relative)
}

// MeshText lays a string out as one mesh instance per character and animates
// the instances with an effect stack.
//
// Changing the text, the font or the material override tears every instance
// down and builds a fresh set. Layout and transforms are recomputed on every
// Process call, so the exported settings may be changed between frames.
type MeshText struct {
	text             string
	font             *Font
	materialOverride *metadata.Material

	Tint                    metadata.Colour
	FontSize                float32
	CharacterSpacing        float32
	LineSpacing             float32
	HorizontalAlignment     AlignmentHorizontal
	VerticalAlignment       AlignmentVertical
	HorizontalJustification AlignmentHorizontal
	UseMaxCharacterWidth    bool
	WordWrap                bool
	Effects                 EffectStack
	Visible                 bool
	// Transform is the node transform; its world matrix anchors the block.
	Transform *math.Transform

	maxCharacterWidth int

	server   renderer.RenderingServer
	scenario *renderer.Scenario
	events   *core.EventBus
	clock    *core.FrameClock

	instances []*GlyphInstance
	byIndex   map[int]*GlyphInstance
	layout    *Layout
}

// New creates a detached node. events may be nil.
func New(server renderer.RenderingServer, cfg *Config, events *core.EventBus) (*MeshText, error) {
	if server == nil {
		return nil, fmt.Errorf("text node needs a rendering server")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mt := &MeshText{
		server:    server,
		events:    events,
		clock:     core.NewFrameClock(),
		Transform: math.TransformCreate(),
		byIndex:   make(map[int]*GlyphInstance),
	}
	mt.apply(cfg)
	return mt, nil
}

func (mt *MeshText) apply(cfg *Config) {
	mt.text = cfg.Text
	mt.font = cfg.Font
	mt.materialOverride = cfg.MaterialOverride
	mt.Tint = cfg.TintColour()
	mt.FontSize = cfg.FontSize
	mt.CharacterSpacing = cfg.CharacterSpacing
	mt.LineSpacing = cfg.LineSpacing
	mt.HorizontalAlignment = cfg.HorizontalAlignment
	mt.VerticalAlignment = cfg.VerticalAlignment
	mt.HorizontalJustification = cfg.HorizontalJustification
	mt.UseMaxCharacterWidth = cfg.UseMaxCharacterWidth
	mt.maxCharacterWidth = cfg.MaxCharacterWidth
	mt.WordWrap = cfg.WordWrap
	mt.Visible = cfg.Visible
	mt.Effects = append(EffectStack(nil), cfg.EffectStack...)
}

// Configure applies cfg atomically. The instances are rebuilt at most once,
// and only when the text, the font or the material override changed.
func (mt *MeshText) Configure(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	textChanged := cfg.Text != mt.text
	fontChanged := cfg.Font != mt.font
	materialChanged := cfg.MaterialOverride != mt.materialOverride

	mt.apply(cfg)
	if textChanged || fontChanged || materialChanged {
		mt.GenerateText()
	}

	if textChanged {
		mt.fire(core.EventCodeTextChanged, mt.text)
	}
	if fontChanged {
		mt.fire(core.EventCodeFontChanged, mt.font)
	}
	if materialChanged {
		mt.fire(core.EventCodeMaterialOverrideChanged, mt.materialOverride)
	}
	return nil
}

func (mt *MeshText) Text() string {
	return mt.text
}

func (mt *MeshText) SetText(text string) {
	mt.text = text
	mt.GenerateText()
	mt.fire(core.EventCodeTextChanged, text)
}

func (mt *MeshText) Font() *Font {
	return mt.font
}

func (mt *MeshText) SetFont(font *Font) {
	mt.font = font
	mt.GenerateText()
	mt.fire(core.EventCodeFontChanged, font)
}

func (mt *MeshText) MaterialOverride() *metadata.Material {
	return mt.materialOverride
}

func (mt *MeshText) SetMaterialOverride(material *metadata.Material) {
	mt.materialOverride = material
	mt.GenerateText()
	mt.fire(core.EventCodeMaterialOverrideChanged, material)
}

func (mt *MeshText) MaxCharacterWidth() int {
	return mt.maxCharacterWidth
}

// SetMaxCharacterWidth clamps width to at least one character.
func (mt *MeshText) SetMaxCharacterWidth(width int) {
	if width < 1 {
		core.LogWarn("max character width %d clamped to 1", width)
	}
	mt.maxCharacterWidth = math.Clamp(width, 1, MaxCharacterWidthLimit)
}

// EvaluatedMaxCharacterWidth is the width used for wrapping: the configured
// one, or the length of the text when wrapping by width is off.
func (mt *MeshText) EvaluatedMaxCharacterWidth() int {
	if mt.UseMaxCharacterWidth {
		return mt.maxCharacterWidth
	}
	return utf8.RuneCountInString(mt.text)
}

// EnterTree attaches the node to scenario and generates its instances.
func (mt *MeshText) EnterTree(scenario *renderer.Scenario) {
	mt.scenario = scenario
	mt.GenerateText()
}

// ExitTree releases every instance and detaches the node.
func (mt *MeshText) ExitTree() {
	mt.ClearText()
	mt.scenario = nil
}

// BeforeSerialize releases the instances so no server handle is persisted.
func (mt *MeshText) BeforeSerialize() {
	mt.ClearText()
}

// IsInsideTree reports whether the node is attached to a scenario.
func (mt *MeshText) IsInsideTree() bool {
	return mt.scenario != nil
}

// GenerateText rebuilds the instance set from scratch. Without a font or a
// scenario it only clears.
func (mt *MeshText) GenerateText() {
	mt.ClearText()

	if mt.font == nil {
		core.LogDebug("text node has no font, nothing to generate")
		return
	}
	if mt.scenario == nil {
		core.LogDebug("text node is not inside a scenario, nothing to generate")
		return
	}

	index := 0
	for _, c := range mt.text {
		if mesh, ok := mt.font.TryGetMeshForCharacter(c); ok {
			instance := mt.server.InstanceCreate()
			mt.server.InstanceSetScenario(instance, mt.scenario)
			mt.server.InstanceSetBase(instance, mesh)
			if mt.materialOverride != nil {
				mt.server.InstanceSetSurfaceOverrideMaterial(instance, 0, mt.materialOverride)
			}

			glyph := &GlyphInstance{
				RID:       instance,
				Index:     index,
				Character: c,
				Mesh:      mesh,
				Base:      math.NewMat4Identity(),
				Relative:  math.NewMat4Identity(),
			}
			mt.server.InstanceSetTransform(instance, glyph.Base)

			mt.instances = append(mt.instances, glyph)
			mt.byIndex[index] = glyph
		} else if !unicode.IsSpace(c) {
			core.LogDebug("font %q has no mesh for %q", mt.font.Name, c)
		}
		index++
	}
}

// ClearText frees every instance.
func (mt *MeshText) ClearText() {
	for _, glyph := range mt.instances {
		mt.server.FreeRID(glyph.RID)
	}
	mt.instances = nil
	mt.byIndex = make(map[int]*GlyphInstance)
	mt.layout = nil
}

// Process advances the node by one frame of delta seconds.
func (mt *MeshText) Process(delta float64) {
	mt.clock.Tick(delta)
	mt.processTransformChanges(delta)
}

// Elapsed is the total time handed to Process so far.
func (mt *MeshText) Elapsed() float64 {
	return mt.clock.Elapsed()
}

func (mt *MeshText) processTransformChanges(delta float64) {
	time := float32(mt.clock.Elapsed())
	for _, glyph := range mt.instances {
		glyph.Relative = mt.Effects.Apply(glyph.RID, glyph.Index, time, delta)
	}

	mt.layout = ComputeLayout(mt.text, mt.layoutSettings())
	if len(mt.instances) == 0 {
		return
	}

	global := mt.Transform.GetWorld()
	placement := mt.placementSettings()
	for index, pos := range mt.layout.Positions {
		glyph, ok := mt.byIndex[index]
		if !ok {
			continue
		}
		glyph.Position = pos
		glyph.Base = BasePlacement(global, placement, mt.layout, pos)
		mt.server.InstanceSetTransform(glyph.RID, glyph.Final())
		mt.server.InstanceSetVisible(glyph.RID, mt.Visible)
		mt.server.InstanceGeometrySetShaderParameter(glyph.RID, TintParameter, mt.Tint)
	}
}

func (mt *MeshText) layoutSettings() LayoutSettings {
	return LayoutSettings{
		MaxWidth:                mt.EvaluatedMaxCharacterWidth(),
		WordWrap:                mt.WordWrap,
		HorizontalAlignment:     mt.HorizontalAlignment,
		VerticalAlignment:       mt.VerticalAlignment,
		HorizontalJustification: mt.HorizontalJustification,
	}
}

func (mt *MeshText) placementSettings() PlacementSettings {
	return PlacementSettings{
		FontSize:            mt.FontSize,
		CharacterSpacing:    mt.CharacterSpacing,
		LineSpacing:         mt.LineSpacing,
		HorizontalAlignment: mt.HorizontalAlignment,
		VerticalAlignment:   mt.VerticalAlignment,
	}
}

// Instances returns a snapshot of the live glyph instances in text order.
func (mt *MeshText) Instances() []GlyphInstance {
	out := make([]GlyphInstance, len(mt.instances))
	for i, glyph := range mt.instances {
		out[i] = *glyph
	}
	return out
}

// InstanceAt returns the instance bound to the character at flat index i.
func (mt *MeshText) InstanceAt(i int) (GlyphInstance, bool) {
	glyph, ok := mt.byIndex[i]
	if !ok {
		return GlyphInstance{}, false
	}
	return *glyph, true
}

// CharacterPositions maps every live instance to its current cell.
func (mt *MeshText) CharacterPositions() map[renderer.RID]GridPosition {
	out := make(map[renderer.RID]GridPosition, len(mt.instances))
	for _, glyph := range mt.instances {
		out[glyph.RID] = glyph.Position
	}
	return out
}

// Layout returns the layout of the last processed frame, or nil.
func (mt *MeshText) Layout() *Layout {
	return mt.layout
}

// Lines returns the lines of the last processed frame.
func (mt *MeshText) Lines() []string {
	if mt.layout == nil {
		return nil
	}
	return mt.layout.Lines
}

// HorizontalOffsets returns the per-line offsets of the last processed frame.
func (mt *MeshText) HorizontalOffsets() []float32 {
	if mt.layout == nil {
		return nil
	}
	return mt.layout.HorizontalOffsets
}

func (mt *MeshText) fire(code core.SystemEventCode, value interface{}) {
	if mt.events == nil {
		return
	}
	mt.events.Fire(code, mt, core.EventContext{Data: value})
}
