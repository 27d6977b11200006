package metadata

/**
 * @brief The data every font loader produces. CharacterMeshes is parallel
 * to the runes of CharacterSet; SubstringMeshes maps multi-character
 * sequences (ligatures) to their own mesh.
 */
type MeshFontData struct {
	Name            string
	CharacterSet    string
	CharacterMeshes []*Mesh
	SubstringMeshes map[string]*Mesh
	CaseSensitive   bool
}
