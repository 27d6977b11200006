package meshtext

import (
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
	"golang.org/x/text/cases"
)

// Font maps characters to meshes. CharacterMeshes is parallel to the runes
// of CharacterSet: the mesh for a character is the one at the index of its
// first occurrence in the set.
type Font struct {
	Name            string
	CharacterSet    string
	CharacterMeshes []*metadata.Mesh
	// SubstringMeshes holds meshes for multi-character sequences such as
	// ligatures. Generation does not consult it yet.
	SubstringMeshes map[string]*metadata.Mesh
	CaseSensitive   bool

	foldedFor string
	folded    []string
}

// NewFont builds a Font from loader output.
func NewFont(data *metadata.MeshFontData) *Font {
	if data == nil {
		return nil
	}
	f := &Font{
		Name:            data.Name,
		CharacterSet:    data.CharacterSet,
		CharacterMeshes: data.CharacterMeshes,
		SubstringMeshes: data.SubstringMeshes,
		CaseSensitive:   data.CaseSensitive,
	}
	if f.SubstringMeshes == nil {
		f.SubstringMeshes = make(map[string]*metadata.Mesh)
	}
	return f
}

// TryGetMeshForCharacter returns the mesh bound to c. It fails when c is not
// in the character set or the mesh list is too short for its index.
func (f *Font) TryGetMeshForCharacter(c rune) (*metadata.Mesh, bool) {
	if f == nil {
		return nil, false
	}
	index := f.indexOf(c)
	if index == -1 || index >= len(f.CharacterMeshes) {
		return nil, false
	}
	mesh := f.CharacterMeshes[index]
	return mesh, mesh != nil
}

// TryGetMeshForSubstring looks up a multi-character glyph.
func (f *Font) TryGetMeshForSubstring(substring string) (*metadata.Mesh, bool) {
	if f == nil {
		return nil, false
	}
	if mesh, ok := f.SubstringMeshes[substring]; ok || f.CaseSensitive {
		return mesh, ok && mesh != nil
	}
	caser := cases.Fold()
	key := caser.String(substring)
	for s, mesh := range f.SubstringMeshes {
		if caser.String(s) == key {
			return mesh, mesh != nil
		}
	}
	return nil, false
}

// Len returns the number of characters the font can render.
func (f *Font) Len() int {
	n := 0
	for i := range []rune(f.CharacterSet) {
		if i < len(f.CharacterMeshes) && f.CharacterMeshes[i] != nil {
			n++
		}
	}
	return n
}

func (f *Font) indexOf(c rune) int {
	if f.CaseSensitive {
		i := 0
		for _, r := range f.CharacterSet {
			if r == c {
				return i
			}
			i++
		}
		return -1
	}

	caser := cases.Fold()
	target := caser.String(string(c))
	for i, s := range f.foldedSet(caser) {
		if s == target {
			return i
		}
	}
	return -1
}

// foldedSet caches the case-folded form of every rune of the character set,
// one entry per rune so indexes stay aligned with CharacterMeshes.
func (f *Font) foldedSet(caser cases.Caser) []string {
	if f.folded != nil && f.foldedFor == f.CharacterSet {
		return f.folded
	}
	runes := []rune(f.CharacterSet)
	folded := make([]string, len(runes))
	for i, r := range runes {
		folded[i] = caser.String(string(r))
	}
	f.folded = folded
	f.foldedFor = f.CharacterSet
	return folded
}
