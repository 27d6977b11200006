package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/sfnt"

	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

// DefaultSystemFontCharacters is checked against the face when no character set is requested.
const DefaultSystemFontCharacters = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// SystemFontParams selects the characters looked up in a system font.
type SystemFontParams struct {
	Characters string
}

// SystemFontLoader reads a TrueType or OpenType file and keeps the requested
// characters the face has an outline for.
type SystemFontLoader struct{}

func (fl *SystemFontLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	characters := DefaultSystemFontCharacters
	if p, ok := params.(SystemFontParams); ok && p.Characters != "" {
		characters = p.Characters
	}

	data, err := ParseSystemFont(src, characters)
	if err != nil {
		return nil, fmt.Errorf("system font %s: %w", path, err)
	}
	if data.Name == "" {
		data.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &metadata.Resource{
		Name:     data.Name,
		FullPath: path,
		Type:     metadata.ResourceTypeSystemFont,
		Data:     data,
	}, nil
}

func (fl *SystemFontLoader) Unload(resource *metadata.Resource) error {
	return unloadFont(resource)
}

// ParseSystemFont builds a mesh font from raw font bytes. Characters mapped
// to glyph 0 (.notdef) are left out.
func ParseSystemFont(src []byte, characters string) (*metadata.MeshFontData, error) {
	f, err := sfnt.Parse(src)
	if err != nil {
		return nil, err
	}

	var buf sfnt.Buffer
	name, err := f.Name(&buf, sfnt.NameIDFull)
	if err != nil {
		core.LogDebug("system font has no full name: %s", err)
		name = ""
	}

	var charset strings.Builder
	var meshes []*metadata.Mesh
	seen := make(map[rune]bool)
	for _, c := range characters {
		if seen[c] {
			continue
		}
		seen[c] = true

		index, err := f.GlyphIndex(&buf, c)
		if err != nil {
			return nil, err
		}
		if index == 0 {
			continue
		}
		charset.WriteRune(c)
		meshes = append(meshes, metadata.NewMesh(fmt.Sprintf("%s/glyph-%d", name, index)))
	}
	if charset.Len() == 0 {
		return nil, core.ErrEmptyCharacterSet
	}

	return &metadata.MeshFontData{
		Name:            name,
		CharacterSet:    charset.String(),
		CharacterMeshes: meshes,
		SubstringMeshes: map[string]*metadata.Mesh{},
		CaseSensitive:   true,
	}, nil
}
