package loaders

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fzipp/bmfont"

	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

// BitmapFontLoader imports the character set of an AngelCode .fnt file. Each
// character gets a mesh named after its codepoint, so the host can pair it
// with the quad cut from the font sheet.
type BitmapFontLoader struct{}

func (fl *BitmapFontLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	font, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("bitmap font %s: %w", path, err)
	}

	codepoints := make([]rune, 0, len(font.Descriptor.Chars))
	for _, g := range font.Descriptor.Chars {
		codepoints = append(codepoints, rune(g.ID))
	}
	if len(codepoints) == 0 {
		return nil, fmt.Errorf("bitmap font %s: %w", path, core.ErrEmptyCharacterSet)
	}
	sort.Slice(codepoints, func(i, j int) bool { return codepoints[i] < codepoints[j] })

	var charset strings.Builder
	meshes := make([]*metadata.Mesh, 0, len(codepoints))
	for _, c := range codepoints {
		charset.WriteRune(c)
		meshes = append(meshes, metadata.NewMesh(fmt.Sprintf("%s/U+%04X", font.Descriptor.Info.Face, c)))
	}

	data := &metadata.MeshFontData{
		Name:            font.Descriptor.Info.Face,
		CharacterSet:    charset.String(),
		CharacterMeshes: meshes,
		SubstringMeshes: map[string]*metadata.Mesh{},
		CaseSensitive:   true,
	}
	return &metadata.Resource{
		Name:     data.Name,
		FullPath: path,
		Type:     metadata.ResourceTypeBitmapFont,
		Data:     data,
	}, nil
}

func (fl *BitmapFontLoader) Unload(resource *metadata.Resource) error {
	return unloadFont(resource)
}
