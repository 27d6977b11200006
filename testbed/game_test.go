package testbed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/meshtext/engine"
	"github.com/spaghettifunk/meshtext/engine/math"
	"github.com/spaghettifunk/meshtext/engine/meshtext"
	"github.com/spaghettifunk/meshtext/engine/renderer"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

func runTestGame(t *testing.T, options *Options) (*TestGame, *engine.Engine, *renderer.MemoryServer) {
	t.Helper()
	server := renderer.NewMemoryServer()
	tg := NewTestGame(&engine.ApplicationConfig{Name: "testbed", MaxFrames: 3}, options)
	e, err := engine.New(tg.Game, server)
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	t.Cleanup(func() { _ = e.Shutdown() })
	if err := e.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return tg, e, server
}

func TestGameWithBuiltinFont(t *testing.T) {
	tg, _, server := runTestGame(t, &Options{Text: "hello world", Width: 4})
	state := tg.State.(*gameState)

	// Go Regular maps every character, the space included
	if n := len(state.node.Instances()); n != 11 {
		t.Errorf("got %d instances, want 11", n)
	}
	if n := len(server.Live()); n != 11 {
		t.Errorf("server has %d live instances, want 11", n)
	}
	if lines := state.node.Lines(); len(lines) != 3 {
		t.Errorf("lines = %q, want 3 lines", lines)
	}
	if state.frame != 3 {
		t.Errorf("rendered %d frames, want 3", state.frame)
	}
}

func TestGameReloadsConfigAndFont(t *testing.T) {
	dir := t.TempDir()
	fontPath := filepath.Join(dir, "blocky.toml")
	if err := os.WriteFile(fontPath, []byte(`character_set = "abc"`), 0o644); err != nil {
		t.Fatal(err)
	}

	tg, _, server := runTestGame(t, &Options{Text: "abcx", FontPath: fontPath})
	state := tg.State.(*gameState)
	if n := len(state.node.Instances()); n != 3 {
		t.Fatalf("got %d instances, want 3", n)
	}

	cfg, err := meshtext.ParseConfig([]byte("text = \"cab\"\nfont = \"" + filepath.ToSlash(fontPath) + "\"\nmaterial_override = \"glow\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	err = tg.OnReload(&metadata.Resource{Type: metadata.ResourceTypeTextConfig, FullPath: "title.text.toml", Data: cfg})
	if err != nil {
		t.Fatalf("OnReload(config) error = %v", err)
	}
	if state.node.Text() != "cab" {
		t.Errorf("text = %q, want cab", state.node.Text())
	}
	material := state.node.MaterialOverride()
	if material == nil || material.Name != "glow" {
		t.Fatalf("material override = %v", material)
	}
	for _, glyph := range state.node.Instances() {
		if s, _ := server.Instance(glyph.RID); s.Materials[0] != material {
			t.Errorf("instance %d not bound to the override", glyph.RID)
		}
	}

	if err := os.WriteFile(fontPath, []byte(`character_set = "abcx"`), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := tg.SystemManager.AssetManager.LoadAsset(fontPath, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := tg.OnReload(res); err != nil {
		t.Fatalf("OnReload(font) error = %v", err)
	}
	if _, ok := state.node.Font().TryGetMeshForCharacter('x'); !ok {
		t.Error("node still uses the old font")
	}
}

func TestGameRejectsInvalidWidth(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.text.toml")
	if err := os.WriteFile(cfgPath, []byte("max_character_width = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tg := NewTestGame(&engine.ApplicationConfig{Name: "testbed", MaxFrames: 1}, &Options{ConfigPath: cfgPath})
	e, err := engine.New(tg.Game, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Shutdown()
	if err := e.Initialize(); err == nil {
		t.Error("Initialize() accepted an invalid config")
	}
}

func TestGameSpinsTheNode(t *testing.T) {
	tg, _, _ := runTestGame(t, &Options{Text: "ab", Spin: 90})
	state := tg.State.(*gameState)

	before := state.node.Transform.GetWorld()
	if err := tg.Update(1); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	want := before.Mul(math.NewMat4AxisAngle(math.NewVec3Up(), math.DegToRad(90)))
	if got := state.node.Transform.GetWorld(); !got.Compare(want, 1e-4) {
		t.Errorf("world = %v, want %v", got.Data, want.Data)
	}
	// glyphs follow the node on the same frame
	glyph, _ := state.node.InstanceAt(0)
	if got, want := glyph.Base.Position(), math.NewVec3(0.5, -0.5, 0).Transform(want); !got.Compare(want, 1e-4) {
		t.Errorf("first glyph at %v, want %v", got, want)
	}
}
