package meshtext

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/meshtext/engine/core"
)

type AlignmentHorizontal int

const (
	AlignmentLeft AlignmentHorizontal = iota
	AlignmentCenter
	AlignmentRight
)

type AlignmentVertical int

const (
	AlignmentTop AlignmentVertical = iota
	AlignmentMiddle
	AlignmentBottom
)

func (a AlignmentHorizontal) String() string {
	switch a {
	case AlignmentLeft:
		return "left"
	case AlignmentCenter:
		return "center"
	case AlignmentRight:
		return "right"
	}
	return fmt.Sprintf("AlignmentHorizontal(%d)", int(a))
}

func (a AlignmentHorizontal) Valid() bool {
	return a >= AlignmentLeft && a <= AlignmentRight
}

func (a AlignmentHorizontal) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%d: %w", int(a), core.ErrUnknownAlignment)
	}
	return []byte(a.String()), nil
}

func (a *AlignmentHorizontal) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "left":
		*a = AlignmentLeft
	case "center", "centre":
		*a = AlignmentCenter
	case "right":
		*a = AlignmentRight
	default:
		return fmt.Errorf("horizontal %q: %w", text, core.ErrUnknownAlignment)
	}
	return nil
}

func (a AlignmentVertical) String() string {
	switch a {
	case AlignmentTop:
		return "top"
	case AlignmentMiddle:
		return "center"
	case AlignmentBottom:
		return "bottom"
	}
	return fmt.Sprintf("AlignmentVertical(%d)", int(a))
}

func (a AlignmentVertical) Valid() bool {
	return a >= AlignmentTop && a <= AlignmentBottom
}

func (a AlignmentVertical) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%d: %w", int(a), core.ErrUnknownAlignment)
	}
	return []byte(a.String()), nil
}

func (a *AlignmentVertical) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "top":
		*a = AlignmentTop
	case "center", "centre", "middle":
		*a = AlignmentMiddle
	case "bottom":
		*a = AlignmentBottom
	default:
		return fmt.Errorf("vertical %q: %w", text, core.ErrUnknownAlignment)
	}
	return nil
}

// blockOffsetX shifts the whole block so its anchor sits at the node origin.
func blockOffsetX(a AlignmentHorizontal, maxWidth int) float32 {
	switch a {
	case AlignmentCenter:
		return -float32(maxWidth) * 0.5
	case AlignmentRight:
		return -float32(maxWidth)
	}
	return 0
}

func blockOffsetY(a AlignmentVertical, lineCount int) float32 {
	switch a {
	case AlignmentMiddle:
		return -float32(lineCount) * 0.5
	case AlignmentBottom:
		return -float32(lineCount)
	}
	return 0
}

// justificationOffset places a line inside the block given its free space.
func justificationOffset(a AlignmentHorizontal, free int) float32 {
	switch a {
	case AlignmentCenter:
		return float32(free) * 0.5
	case AlignmentRight:
		return float32(free)
	}
	return 0
}
