package meshtext

import "github.com/spaghettifunk/meshtext/engine/math"

// PlacementSettings are the node properties that turn a grid cell into a
// transform.
type PlacementSettings struct {
	FontSize            float32
	CharacterSpacing    float32
	LineSpacing         float32
	HorizontalAlignment AlignmentHorizontal
	VerticalAlignment   AlignmentVertical
}

// CellOffset returns the local translation, in font units, of the glyph at
// pos. horizontalOffset is the offset of the glyph's line.
func CellOffset(s PlacementSettings, pos GridPosition, horizontalOffset, verticalOffset float32) math.Vec3 {
	cs := s.CharacterSpacing
	ls := s.LineSpacing

	// centre of the cell
	offset := math.NewVec3(cs*0.5, -ls*0.5, 0)

	// spacing padding for the aligned edge
	var pad math.Vec3
	switch s.HorizontalAlignment {
	case AlignmentCenter:
		pad.X = (cs - 1) * 0.5
	case AlignmentRight:
		pad.X = cs - 1
	}
	switch s.VerticalAlignment {
	case AlignmentMiddle:
		pad.Y = -(ls - 1) * 0.5
	case AlignmentBottom:
		pad.Y = -(ls - 1)
	}
	offset = offset.Add(pad)

	offset = offset.Add(math.NewVec3Right().MulScalar((float32(pos.X) + horizontalOffset) * cs))
	offset = offset.Add(math.NewVec3Down().MulScalar((float32(pos.Y) + verticalOffset) * ls))
	offset = offset.Add(math.NewVec3Left().MulScalar((cs - 1) * 0.5))
	offset = offset.Add(math.NewVec3Up().MulScalar((ls - 1) * 0.5))
	return offset
}

// BasePlacement derives the transform of the glyph at pos from the node's
// global transform and the layout.
func BasePlacement(global math.Mat4, s PlacementSettings, layout *Layout, pos GridPosition) math.Mat4 {
	var horizontalOffset float32
	if pos.Y >= 0 && pos.Y < len(layout.HorizontalOffsets) {
		horizontalOffset = layout.HorizontalOffsets[pos.Y]
	}
	return global.
		ScaledLocal(math.NewVec3One().MulScalar(s.FontSize)).
		TranslatedLocal(CellOffset(s, pos, horizontalOffset, layout.VerticalOffset))
}
