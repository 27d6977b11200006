package meshtext

import (
	"reflect"
	"testing"
)

func TestComputeLayoutSingleLine(t *testing.T) {
	l := ComputeLayout("hello", LayoutSettings{MaxWidth: 16, WordWrap: true})
	if !equalLines(l.Lines, []string{"hello"}) {
		t.Fatalf("lines = %q", l.Lines)
	}
	for i := 0; i < 5; i++ {
		if got, want := l.Positions[i], (GridPosition{X: i, Y: 0}); got != want {
			t.Errorf("position %d = %v, want %v", i, got, want)
		}
	}
	if l.HorizontalOffsets[0] != 0 || l.VerticalOffset != 0 {
		t.Errorf("offsets = %v / %v, want 0", l.HorizontalOffsets, l.VerticalOffset)
	}
}

func TestComputeLayoutPositionsAcrossLines(t *testing.T) {
	l := ComputeLayout("ab cd", LayoutSettings{MaxWidth: 2, WordWrap: true})
	want := []GridPosition{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	if !reflect.DeepEqual(l.Positions, want) {
		t.Errorf("positions = %v, want %v", l.Positions, want)
	}
	if l.LineCount() != 2 {
		t.Errorf("line count = %d, want 2", l.LineCount())
	}
}

func TestComputeLayoutOffsets(t *testing.T) {
	tests := []struct {
		name     string
		settings LayoutSettings
		wantH    []float32
		wantV    float32
	}{
		{
			name:     "left top",
			settings: LayoutSettings{MaxWidth: 4, WordWrap: true},
			wantH:    []float32{0, 0},
		},
		{
			name:     "justify center",
			settings: LayoutSettings{MaxWidth: 4, WordWrap: true, HorizontalJustification: AlignmentCenter},
			wantH:    []float32{1, 1},
		},
		{
			name:     "justify right",
			settings: LayoutSettings{MaxWidth: 4, WordWrap: true, HorizontalJustification: AlignmentRight},
			wantH:    []float32{2, 2},
		},
		{
			name:     "block center",
			settings: LayoutSettings{MaxWidth: 4, WordWrap: true, HorizontalAlignment: AlignmentCenter, VerticalAlignment: AlignmentMiddle},
			wantH:    []float32{-2, -2},
			wantV:    -1,
		},
		{
			name: "block right justify right",
			settings: LayoutSettings{
				MaxWidth:                4,
				WordWrap:                true,
				HorizontalAlignment:     AlignmentRight,
				VerticalAlignment:       AlignmentBottom,
				HorizontalJustification: AlignmentRight,
			},
			wantH: []float32{-2, -2},
			wantV: -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// "ab " and "cd": both lines are two cells wide once trimmed
			l := ComputeLayout("ab cd", tt.settings)
			if !reflect.DeepEqual(l.HorizontalOffsets, tt.wantH) {
				t.Errorf("horizontal offsets = %v, want %v", l.HorizontalOffsets, tt.wantH)
			}
			if l.VerticalOffset != tt.wantV {
				t.Errorf("vertical offset = %v, want %v", l.VerticalOffset, tt.wantV)
			}
		})
	}
}

func TestAlignmentOffsetsAreSymmetric(t *testing.T) {
	for _, width := range []int{1, 2, 5, 16, 37} {
		left := blockOffsetX(AlignmentLeft, width)
		center := blockOffsetX(AlignmentCenter, width)
		right := blockOffsetX(AlignmentRight, width)
		if left+right != 2*center {
			t.Errorf("width %d: left %v + right %v != 2 * center %v", width, left, right, center)
		}

		top := blockOffsetY(AlignmentTop, width)
		middle := blockOffsetY(AlignmentMiddle, width)
		bottom := blockOffsetY(AlignmentBottom, width)
		if top+bottom != 2*middle {
			t.Errorf("lines %d: top %v + bottom %v != 2 * middle %v", width, top, bottom, middle)
		}

		jl := justificationOffset(AlignmentLeft, width)
		jc := justificationOffset(AlignmentCenter, width)
		jr := justificationOffset(AlignmentRight, width)
		if jl+jr != 2*jc {
			t.Errorf("free %d: justification not symmetric: %v %v %v", width, jl, jc, jr)
		}
	}
}

func TestComputeLayoutIsIdempotent(t *testing.T) {
	settings := LayoutSettings{
		MaxWidth:                7,
		WordWrap:                true,
		HorizontalAlignment:     AlignmentCenter,
		VerticalAlignment:       AlignmentBottom,
		HorizontalJustification: AlignmentRight,
	}
	text := "a longer  text with   spacing"
	first := ComputeLayout(text, settings)
	second := ComputeLayout(text, settings)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("layouts differ:\n%+v\n%+v", first, second)
	}
}

func TestComputeLayoutEmpty(t *testing.T) {
	l := ComputeLayout("", LayoutSettings{MaxWidth: 0, WordWrap: true})
	if l.LineCount() != 0 || len(l.Positions) != 0 || len(l.HorizontalOffsets) != 0 {
		t.Errorf("unexpected layout for empty text: %+v", l)
	}
	if _, ok := l.Position(0); ok {
		t.Error("Position(0) found a cell in an empty layout")
	}
}

func TestAlignmentText(t *testing.T) {
	var h AlignmentHorizontal
	if err := h.UnmarshalText([]byte("Right")); err != nil || h != AlignmentRight {
		t.Errorf("got %v, %v", h, err)
	}
	if err := h.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("expected an error for an unknown alignment")
	}

	var v AlignmentVertical
	if err := v.UnmarshalText([]byte("center")); err != nil || v != AlignmentMiddle {
		t.Errorf("got %v, %v", v, err)
	}
	b, err := AlignmentBottom.MarshalText()
	if err != nil || string(b) != "bottom" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
}
