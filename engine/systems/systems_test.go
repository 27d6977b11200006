package systems

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spaghettifunk/meshtext/engine/assets"
	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/renderer"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

func newSystems(t *testing.T) *SystemManager {
	t.Helper()
	am, err := assets.NewAssetManager()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = am.Close() })
	sm, err := NewSystemManager(renderer.NewMemoryServer(), am, 2)
	if err != nil {
		t.Fatalf("NewSystemManager() error = %v", err)
	}
	return sm
}

func writeFont(t *testing.T, dir, name, charset string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("character_set = \""+charset+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestJobSystem(t *testing.T) {
	if _, err := NewJobSystem(0, 1); !errors.Is(err, ErrNoWorkers) {
		t.Errorf("error = %v, want %v", err, ErrNoWorkers)
	}
	if _, err := NewJobSystem(1, -1); !errors.Is(err, ErrNegativeChannelSize) {
		t.Errorf("error = %v, want %v", err, ErrNegativeChannelSize)
	}

	js, err := NewJobSystem(3, 0)
	if err != nil {
		t.Fatal(err)
	}
	var completed, failed, finished atomic.Int32
	for i := 0; i < 10; i++ {
		err := js.Submit(JobTask{
			InputParams: i,
			OnStart: func(params interface{}) (interface{}, error) {
				if params.(int)%2 == 1 {
					return nil, errors.New("odd")
				}
				return params, nil
			},
			OnComplete:           func(interface{}) { completed.Add(1) },
			OnFailure:            func(error) { failed.Add(1) },
			OnCompletionCallback: func() { finished.Add(1) },
		})
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	if err := js.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if completed.Load() != 5 || failed.Load() != 5 || finished.Load() != 10 {
		t.Errorf("completed %d, failed %d, finished %d", completed.Load(), failed.Load(), finished.Load())
	}
	if err := js.Submit(JobTask{}); !errors.Is(err, ErrJobSystemShutdown) {
		t.Errorf("Submit() after Shutdown error = %v", err)
	}
}

func TestMaterialSystem(t *testing.T) {
	ms := NewMaterialSystem()
	if ms.Acquire("", true) != nil {
		t.Error("empty name should mean no material")
	}
	if ms.Acquire(metadata.DefaultMaterialName, true) != ms.GetDefault() {
		t.Error("default name did not return the default material")
	}

	glow := ms.Acquire("glow", true)
	if again := ms.Acquire("glow", true); again != glow {
		t.Error("second acquire returned a different material")
	}
	if ms.ReferenceCount("glow") != 2 {
		t.Errorf("reference count = %d, want 2", ms.ReferenceCount("glow"))
	}
	ms.Release("glow")
	ms.Release("glow")
	if ms.ReferenceCount("glow") != 0 {
		t.Errorf("reference count = %d after release", ms.ReferenceCount("glow"))
	}
	if fresh := ms.Acquire("glow", true); fresh == glow {
		t.Error("auto released material was kept")
	}

	kept := ms.Acquire("kept", false)
	ms.Release("kept")
	if ms.Acquire("kept", false) != kept {
		t.Error("material without auto release was dropped")
	}
}

func TestFontSystem(t *testing.T) {
	sm := newSystems(t)
	dir := t.TempDir()
	path := writeFont(t, dir, "blocky.toml", "abc")

	font, err := sm.FontSystem.Acquire(path, nil)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if _, ok := font.TryGetMeshForCharacter('b'); !ok {
		t.Error("loaded font has no mesh for b")
	}
	again, err := sm.FontSystem.Acquire(filepath.Join(dir, ".", "blocky.toml"), nil)
	if err != nil || again != font {
		t.Errorf("second Acquire() = %p, %v, want the shared font", again, err)
	}

	res, err := sm.AssetManager.LoadAsset(writeFont(t, dir, "blocky.toml", "xyz"), nil)
	if err != nil {
		t.Fatal(err)
	}
	reloaded, ok := sm.FontSystem.Reload(res)
	if !ok || reloaded == font {
		t.Fatalf("Reload() = %p, %v", reloaded, ok)
	}
	if _, ok := reloaded.TryGetMeshForCharacter('x'); !ok {
		t.Error("reloaded font has no mesh for x")
	}
	if _, ok := sm.FontSystem.Reload(&metadata.Resource{FullPath: "other.toml", Data: &metadata.MeshFontData{}}); ok {
		t.Error("Reload() of a font nobody holds succeeded")
	}

	sm.FontSystem.Release(path)
	if sm.FontSystem.Loaded() != 1 {
		t.Errorf("font unloaded while still referenced")
	}
	sm.FontSystem.Release(path)
	if sm.FontSystem.Loaded() != 0 {
		t.Errorf("font still loaded after last release")
	}

	if _, err := sm.FontSystem.Acquire(filepath.Join(dir, "missing.toml"), nil); !errors.Is(err, core.ErrAssetNotFound) {
		t.Errorf("error = %v, want %v", err, core.ErrAssetNotFound)
	}
}

func TestFontSystemPreload(t *testing.T) {
	sm := newSystems(t)
	dir := t.TempDir()
	paths := []string{
		writeFont(t, dir, "one.toml", "a"),
		writeFont(t, dir, "two.toml", "b"),
		writeFont(t, dir, "three.toml", "c"),
	}
	if err := sm.FontSystem.Preload(paths...); err != nil {
		t.Fatalf("Preload() error = %v", err)
	}
	if sm.FontSystem.Loaded() != 3 {
		t.Errorf("Loaded() = %d, want 3", sm.FontSystem.Loaded())
	}

	err := sm.FontSystem.Preload(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, core.ErrAssetNotFound) {
		t.Errorf("error = %v, want %v", err, core.ErrAssetNotFound)
	}

	if err := sm.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if sm.FontSystem.Loaded() != 0 {
		t.Errorf("fonts left after Shutdown: %d", sm.FontSystem.Loaded())
	}
}
