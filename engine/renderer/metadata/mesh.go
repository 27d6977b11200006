package metadata

import "github.com/google/uuid"

// Mesh is a reference to a renderable mesh owned by the host. The text node
// never inspects it, it only binds it to instances.
type Mesh struct {
	ID   uuid.UUID
	Name string
}

func NewMesh(name string) *Mesh {
	return &Mesh{
		ID:   uuid.New(),
		Name: name,
	}
}

func (m *Mesh) String() string {
	if m == nil {
		return "<nil mesh>"
	}
	return m.Name
}
