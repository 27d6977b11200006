package meshtext

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/math"
	"github.com/spaghettifunk/meshtext/engine/meshtext/effects"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

// Config is every option the text node recognizes. It is applied in one go
// with MeshText.Configure.
type Config struct {
	Text string `toml:"text"`
	// FontPath and MaterialOverrideName name assets the host resolves into
	// Font and MaterialOverride.
	FontPath             string     `toml:"font"`
	MaterialOverrideName string     `toml:"material_override"`
	Tint                 [4]float32 `toml:"tint"`
	FontSize             float32    `toml:"font_size"`

	CharacterSpacing float32 `toml:"character_spacing"`
	LineSpacing      float32 `toml:"line_spacing"`

	HorizontalAlignment     AlignmentHorizontal `toml:"horizontal_alignment"`
	VerticalAlignment       AlignmentVertical   `toml:"vertical_alignment"`
	HorizontalJustification AlignmentHorizontal `toml:"horizontal_justification"`

	UseMaxCharacterWidth bool `toml:"use_max_character_width"`
	MaxCharacterWidth    int  `toml:"max_character_width"`
	WordWrap             bool `toml:"word_wrap"`

	Visible bool           `toml:"visible"`
	Effects []EffectConfig `toml:"effects"`

	Font             *Font              `toml:"-"`
	MaterialOverride *metadata.Material `toml:"-"`
	EffectStack      EffectStack        `toml:"-"`
}

// EffectConfig describes one effect of the stack in a config file. Unset
// parameters keep the effect's defaults.
type EffectConfig struct {
	Type         string      `toml:"type"`
	Enabled      *bool       `toml:"enabled"`
	Speed        *float32    `toml:"speed"`
	IndexOffset  *float32    `toml:"index_offset"`
	AngleDegrees *float32    `toml:"angle_degrees"`
	Intensity    *float32    `toml:"intensity"`
	Bounce       bool        `toml:"bounce"`
	Axis         *[3]float32 `toml:"axis"`
}

func DefaultConfig() *Config {
	return &Config{
		Tint:                    [4]float32{1, 1, 1, 1},
		FontSize:                1,
		CharacterSpacing:        1,
		LineSpacing:             1,
		HorizontalAlignment:     AlignmentLeft,
		VerticalAlignment:       AlignmentTop,
		HorizontalJustification: AlignmentLeft,
		UseMaxCharacterWidth:    false,
		MaxCharacterWidth:       16,
		WordWrap:                true,
		Visible:                 true,
	}
}

// Validate rejects option values the layout is not defined for.
func (c *Config) Validate() error {
	if c.MaxCharacterWidth < 1 {
		return fmt.Errorf("got %d: %w", c.MaxCharacterWidth, core.ErrInvalidMaxWidth)
	}
	if !c.HorizontalAlignment.Valid() {
		return fmt.Errorf("horizontal alignment %d: %w", int(c.HorizontalAlignment), core.ErrUnknownAlignment)
	}
	if !c.VerticalAlignment.Valid() {
		return fmt.Errorf("vertical alignment %d: %w", int(c.VerticalAlignment), core.ErrUnknownAlignment)
	}
	if !c.HorizontalJustification.Valid() {
		return fmt.Errorf("horizontal justification %d: %w", int(c.HorizontalJustification), core.ErrUnknownAlignment)
	}
	return nil
}

// TintColour returns Tint as a colour.
func (c *Config) TintColour() metadata.Colour {
	return metadata.Colour{R: c.Tint[0], G: c.Tint[1], B: c.Tint[2], A: c.Tint[3]}
}

// ParseConfig reads a TOML document on top of DefaultConfig and builds its
// effect stack.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode text config: %w", err)
	}

	stack := make(EffectStack, 0, len(cfg.Effects))
	for i, ec := range cfg.Effects {
		effect, err := ec.Build()
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		stack = append(stack, effect)
	}
	cfg.EffectStack = stack

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the TOML file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Build turns the description into an effect.
func (ec EffectConfig) Build() (Effect, error) {
	disabled := ec.Enabled != nil && !*ec.Enabled
	switch strings.ToLower(ec.Type) {
	case "sway":
		s := effects.NewSway()
		s.Disabled = disabled
		setIf(&s.Speed, ec.Speed)
		setIf(&s.IndexOffset, ec.IndexOffset)
		setIf(&s.AngleDegrees, ec.AngleDegrees)
		s.AngleDegrees = math.Clamp(s.AngleDegrees, 0, 180)
		if ec.Axis != nil {
			s.Axis = math.NewVec3(ec.Axis[0], ec.Axis[1], ec.Axis[2])
		}
		return s, nil
	case "wave":
		w := effects.NewWave()
		w.Disabled = disabled
		w.Bounce = ec.Bounce
		setIf(&w.Speed, ec.Speed)
		setIf(&w.IndexOffset, ec.IndexOffset)
		setIf(&w.Intensity, ec.Intensity)
		if ec.Axis != nil {
			w.Direction = math.NewVec3(ec.Axis[0], ec.Axis[1], ec.Axis[2])
		}
		return w, nil
	}
	return nil, fmt.Errorf("%q: %w", ec.Type, core.ErrUnknownEffect)
}

func setIf(dst *float32, v *float32) {
	if v != nil {
		*dst = *v
	}
}
