package meshtext

import (
	"testing"

	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/renderer"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

const epsilon = 1e-5

func newTestFont(charset string) *Font {
	data := &metadata.MeshFontData{
		Name:            "test",
		CharacterSet:    charset,
		CaseSensitive:   true,
		SubstringMeshes: map[string]*metadata.Mesh{},
	}
	for _, r := range charset {
		data.CharacterMeshes = append(data.CharacterMeshes, metadata.NewMesh(string(r)))
	}
	return NewFont(data)
}

func newTestNode(t *testing.T, cfg *Config) (*MeshText, *renderer.MemoryServer, *core.EventBus) {
	t.Helper()
	server := renderer.NewMemoryServer()
	events := core.NewEventBus()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Font == nil {
		cfg.Font = newTestFont("abcdefghijklmnopqrstuvwxyz")
	}
	mt, err := New(server, cfg, events)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return mt, server, events
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
