package loaders

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/meshtext"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fontData(t *testing.T, res *metadata.Resource) *metadata.MeshFontData {
	t.Helper()
	data, ok := res.Data.(*metadata.MeshFontData)
	if !ok {
		t.Fatalf("resource data is %T", res.Data)
	}
	return data
}

const tomlFont = `
name = "blocky"
character_set = "abc"
meshes = ["glyph_a", "", "glyph_c"]
case_sensitive = false

[substrings]
"ab" = "ligature_ab"
`

const yamlFont = `
character_set: "xyz"
substrings:
  xy: ligature_xy
`

func TestMeshFontLoader(t *testing.T) {
	dir := t.TempDir()
	loader := &MeshFontLoader{}

	res, err := loader.Load(writeFile(t, dir, "blocky.toml", []byte(tomlFont)), metadata.ResourceTypeMeshFont, nil)
	if err != nil {
		t.Fatalf("Load(toml) error = %v", err)
	}
	data := fontData(t, res)
	if res.Name != "blocky" || data.CharacterSet != "abc" || data.CaseSensitive {
		t.Errorf("unexpected font %+v", data)
	}
	if len(data.CharacterMeshes) != 3 || data.CharacterMeshes[1] != nil {
		t.Fatalf("meshes = %v", data.CharacterMeshes)
	}
	if data.CharacterMeshes[2].Name != "glyph_c" {
		t.Errorf("mesh for c = %v", data.CharacterMeshes[2])
	}

	font := meshtext.NewFont(data)
	tests := []struct {
		c      rune
		wantOK bool
	}{
		{'a', true},
		{'A', true},
		{'b', false},
		{'d', false},
	}
	for _, tt := range tests {
		if _, ok := font.TryGetMeshForCharacter(tt.c); ok != tt.wantOK {
			t.Errorf("lookup %q = %v, want %v", tt.c, ok, tt.wantOK)
		}
	}
	if mesh, ok := font.TryGetMeshForSubstring("AB"); !ok || mesh.Name != "ligature_ab" {
		t.Errorf("substring lookup = %v, %v", mesh, ok)
	}

	res, err = loader.Load(writeFile(t, dir, "plain.yml", []byte(yamlFont)), metadata.ResourceTypeMeshFont, nil)
	if err != nil {
		t.Fatalf("Load(yaml) error = %v", err)
	}
	data = fontData(t, res)
	if res.Name != "plain" || !data.CaseSensitive || len(data.CharacterMeshes) != 3 {
		t.Errorf("unexpected font %+v", data)
	}
	if data.CharacterMeshes[0].Name != "x" || data.SubstringMeshes["xy"].Name != "ligature_xy" {
		t.Errorf("unexpected meshes %v %v", data.CharacterMeshes, data.SubstringMeshes)
	}

	if err := loader.Unload(res); err != nil || res.Data != nil || data.CharacterMeshes != nil {
		t.Errorf("Unload() left %v, %v", res.Data, err)
	}
}

func TestMeshFontLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	loader := &MeshFontLoader{}

	tests := []struct {
		name    string
		file    string
		data    string
		wantErr error
	}{
		{"empty character set", "empty.toml", `name = "x"`, core.ErrEmptyCharacterSet},
		{"unsupported extension", "font.json", `{}`, core.ErrUnsupportedAsset},
		{"broken toml", "broken.toml", `character_set = `, nil},
		{"missing file", "", "", os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "missing.toml")
			if tt.file != "" {
				path = writeFile(t, dir, tt.file, []byte(tt.data))
			}
			_, err := loader.Load(path, metadata.ResourceTypeMeshFont, nil)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSystemFontLoader(t *testing.T) {
	path := writeFile(t, t.TempDir(), "goregular.ttf", goregular.TTF)
	loader := &SystemFontLoader{}

	res, err := loader.Load(path, metadata.ResourceTypeSystemFont, SystemFontParams{Characters: "aab一"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	data := fontData(t, res)
	if data.CharacterSet != "ab" {
		t.Errorf("character set = %q, want %q", data.CharacterSet, "ab")
	}
	if len(data.CharacterMeshes) != 2 || res.Name == "" {
		t.Errorf("unexpected font %+v", data)
	}

	res, err = loader.Load(path, metadata.ResourceTypeSystemFont, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := fontData(t, res).CharacterSet; got != DefaultSystemFontCharacters {
		t.Errorf("default coverage = %q", got)
	}

	if _, err := ParseSystemFont(goregular.TTF, "一"); !errors.Is(err, core.ErrEmptyCharacterSet) {
		t.Errorf("error = %v, want %v", err, core.ErrEmptyCharacterSet)
	}
	if _, err := ParseSystemFont([]byte("not a font"), "a"); err == nil {
		t.Error("garbage parsed as a font")
	}
}

const fntDescriptor = `info face="Pixel" size=16 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=0 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=16 base=13 scaleW=32 scaleH=32 pages=1 packed=0 alphaChnl=0 redChnl=0 greenChnl=0 blueChnl=0
page id=0 file="pixel_0.png"
chars count=2
char id=66   x=8     y=0     width=8     height=8     xoffset=0     yoffset=0     xadvance=8     page=0  chnl=15
char id=65   x=0     y=0     width=8     height=8     xoffset=0     yoffset=0     xadvance=8     page=0  chnl=15
`

func TestBitmapFontLoader(t *testing.T) {
	dir := t.TempDir()
	page, err := os.Create(filepath.Join(dir, "pixel_0.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(page, image.NewNRGBA(image.Rect(0, 0, 32, 32))); err != nil {
		t.Fatal(err)
	}
	page.Close()
	path := writeFile(t, dir, "pixel.fnt", []byte(fntDescriptor))

	res, err := (&BitmapFontLoader{}).Load(path, metadata.ResourceTypeBitmapFont, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	data := fontData(t, res)
	if data.Name != "Pixel" || data.CharacterSet != "AB" {
		t.Errorf("font = %q with %q", data.Name, data.CharacterSet)
	}
	if len(data.CharacterMeshes) != 2 || data.CharacterMeshes[0].Name != "Pixel/U+0041" {
		t.Errorf("meshes = %v", data.CharacterMeshes)
	}

	if _, err := (&BitmapFontLoader{}).Load(filepath.Join(dir, "nope.fnt"), metadata.ResourceTypeBitmapFont, nil); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestTextConfigLoader(t *testing.T) {
	path := writeFile(t, t.TempDir(), "title.text.toml", []byte("text = \"title\"\nword_wrap = false\n"))
	res, err := (&TextConfigLoader{}).Load(path, metadata.ResourceTypeTextConfig, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg, ok := res.Data.(*meshtext.Config)
	if !ok {
		t.Fatalf("resource data is %T", res.Data)
	}
	if cfg.Text != "title" || cfg.WordWrap {
		t.Errorf("config = %+v", cfg)
	}
}
