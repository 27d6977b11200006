package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

// meshFontFile is the on-disk shape of a mesh font definition.
type meshFontFile struct {
	Name         string `toml:"name" yaml:"name"`
	CharacterSet string `toml:"character_set" yaml:"character_set"`
	// Meshes names the mesh of each character, in character set order. An
	// empty name leaves the character without a glyph. When the list is empty
	// every character gets a mesh named after itself.
	Meshes        []string          `toml:"meshes" yaml:"meshes"`
	Substrings    map[string]string `toml:"substrings" yaml:"substrings"`
	CaseSensitive *bool             `toml:"case_sensitive" yaml:"case_sensitive"`
}

// MeshFontLoader reads mesh font definitions written in TOML or YAML.
type MeshFontLoader struct{}

func (ml *MeshFontLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file meshFontFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("mesh font %s: %w", path, core.ErrUnsupportedAsset)
	}
	if err != nil {
		return nil, fmt.Errorf("mesh font %s: %w", path, err)
	}

	fontData, err := file.build(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     fontData.Name,
		FullPath: path,
		Type:     metadata.ResourceTypeMeshFont,
		Data:     fontData,
	}, nil
}

func (ml *MeshFontLoader) Unload(resource *metadata.Resource) error {
	return unloadFont(resource)
}

func (f *meshFontFile) build(path string) (*metadata.MeshFontData, error) {
	if f.CharacterSet == "" {
		return nil, fmt.Errorf("mesh font %s: %w", path, core.ErrEmptyCharacterSet)
	}
	count := utf8.RuneCountInString(f.CharacterSet)
	if len(f.Meshes) > count {
		core.LogWarn("mesh font %s lists %d meshes for %d characters, extra meshes ignored", path, len(f.Meshes), count)
	}

	name := f.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	out := &metadata.MeshFontData{
		Name:            name,
		CharacterSet:    f.CharacterSet,
		CharacterMeshes: make([]*metadata.Mesh, 0, count),
		SubstringMeshes: make(map[string]*metadata.Mesh, len(f.Substrings)),
		CaseSensitive:   f.CaseSensitive == nil || *f.CaseSensitive,
	}

	i := 0
	for _, c := range f.CharacterSet {
		switch {
		case len(f.Meshes) == 0:
			out.CharacterMeshes = append(out.CharacterMeshes, metadata.NewMesh(string(c)))
		case i < len(f.Meshes) && f.Meshes[i] != "":
			out.CharacterMeshes = append(out.CharacterMeshes, metadata.NewMesh(f.Meshes[i]))
		default:
			out.CharacterMeshes = append(out.CharacterMeshes, nil)
		}
		i++
	}
	for substring, mesh := range f.Substrings {
		out.SubstringMeshes[substring] = metadata.NewMesh(mesh)
	}
	return out, nil
}

func unloadFont(resource *metadata.Resource) error {
	if resource == nil {
		return nil
	}
	if data, ok := resource.Data.(*metadata.MeshFontData); ok {
		data.CharacterMeshes = nil
		data.SubstringMeshes = nil
	}
	resource.Data = nil
	resource.FullPath = ""
	return nil
}
