package metadata

import "github.com/google/uuid"

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

// Material is a reference to a host material used as a surface override.
type Material struct {
	ID   uuid.UUID
	Name string
}

func NewMaterial(name string) *Material {
	return &Material{
		ID:   uuid.New(),
		Name: name,
	}
}

// Colour is a linear RGBA colour.
type Colour struct {
	R, G, B, A float32
}

var (
	ColourWhite = Colour{1, 1, 1, 1}
	ColourBlack = Colour{0, 0, 0, 1}
)
