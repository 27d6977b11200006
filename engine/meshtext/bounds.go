package meshtext

import "github.com/spaghettifunk/meshtext/engine/math"

// BoundingCorners returns the corners of the rectangle the text block
// occupies, in the node's local space, in the order top-right, bottom-right,
// bottom-left, top-left. It only reads the current settings, so an editor
// overlay can call it at any time.
func (mt *MeshText) BoundingCorners() [4]math.Vec3 {
	lineCount := ComputeLayout(mt.text, mt.layoutSettings()).LineCount()
	return boundingCorners(mt.placementSettings(), mt.EvaluatedMaxCharacterWidth(), lineCount)
}

func boundingCorners(s PlacementSettings, maxWidth, lineCount int) [4]math.Vec3 {
	charSpacingPad := (s.CharacterSpacing - 1) * 0.5
	lineSpacingPad := (s.LineSpacing - 1) * 0.5

	width := float32(maxWidth)*s.CharacterSpacing - charSpacingPad*2
	height := float32(lineCount)*s.LineSpacing - lineSpacingPad*2

	var center math.Vec3
	halfWidth := float32(maxWidth) * s.CharacterSpacing * 0.5
	switch s.HorizontalAlignment {
	case AlignmentLeft:
		center.X = halfWidth - charSpacingPad
	case AlignmentRight:
		center.X = -halfWidth + charSpacingPad
	}
	halfHeight := float32(lineCount) * s.LineSpacing * 0.5
	switch s.VerticalAlignment {
	case AlignmentTop:
		center.Y = -halfHeight + lineSpacingPad
	case AlignmentBottom:
		center.Y = halfHeight - lineSpacingPad
	}

	corners := [4]math.Vec3{
		math.NewVec3(0.5, 0.5, 0),
		math.NewVec3(0.5, -0.5, 0),
		math.NewVec3(-0.5, -0.5, 0),
		math.NewVec3(-0.5, 0.5, 0),
	}
	size := math.NewVec3(width, height, 1)
	// The rect is anchored in font units: center and size are in cells and
	// the whole point is scaled by the font size, like the glyph placement.
	for i, c := range corners {
		corners[i] = center.Add(c.Mul(size)).MulScalar(s.FontSize)
	}
	return corners
}
