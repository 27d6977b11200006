package systems

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spaghettifunk/meshtext/engine/assets"
	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/meshtext"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

type FontLookup struct {
	ID             uint32
	ReferenceCount uint16
	Resource       *metadata.Resource
	Font           *meshtext.Font
}

// FontSystem loads fonts through the asset manager and shares them by path.
type FontSystem struct {
	mu           sync.Mutex
	ids          *core.IDAllocator
	fonts        map[string]*FontLookup
	assetManager *assets.AssetManager
	jobSystem    *JobSystem
}

func NewFontSystem(am *assets.AssetManager, js *JobSystem) *FontSystem {
	return &FontSystem{
		ids:          core.NewIDAllocator(),
		fonts:        make(map[string]*FontLookup),
		assetManager: am,
		jobSystem:    js,
	}
}

func fontKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Acquire returns the font stored at path, loading it on first use.
func (fs *FontSystem) Acquire(path string, params interface{}) (*meshtext.Font, error) {
	key := fontKey(path)

	fs.mu.Lock()
	if lookup, ok := fs.fonts[key]; ok {
		lookup.ReferenceCount++
		fs.mu.Unlock()
		return lookup.Font, nil
	}
	fs.mu.Unlock()

	res, font, err := fs.load(key, params)
	if err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	// another goroutine may have loaded it in the meantime
	lookup, ok := fs.fonts[key]
	if !ok {
		lookup = &FontLookup{Resource: res, Font: font}
		lookup.ID = fs.ids.Acquire(lookup)
		fs.fonts[key] = lookup
	}
	lookup.ReferenceCount++
	return lookup.Font, nil
}

func (fs *FontSystem) load(path string, params interface{}) (*metadata.Resource, *meshtext.Font, error) {
	res, err := fs.assetManager.LoadAsset(path, params)
	if err != nil {
		return nil, nil, err
	}
	data, ok := res.Data.(*metadata.MeshFontData)
	if !ok {
		return nil, nil, fmt.Errorf("%s is a %s, not a font: %w", path, res.Type, core.ErrUnsupportedAsset)
	}
	core.LogDebug("font '%s' loaded from %s (%d characters)", data.Name, path, len([]rune(data.CharacterSet)))
	return res, meshtext.NewFont(data), nil
}

// Preload loads every path on the job system and waits for all of them.
// Preloaded fonts are held once until released.
func (fs *FontSystem) Preload(paths ...string) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, path := range paths {
		wg.Add(1)
		err := fs.jobSystem.Submit(JobTask{
			InputParams: path,
			OnStart: func(params interface{}) (interface{}, error) {
				font, err := fs.Acquire(params.(string), nil)
				if err != nil {
					return nil, err
				}
				return font, nil
			},
			OnFailure: func(err error) {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			},
			OnCompletionCallback: wg.Done,
		})
		if err != nil {
			wg.Done()
			return err
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Reload swaps the font of an acquired path for the freshly loaded res.
// It returns the new font, or false when nothing holds that path.
func (fs *FontSystem) Reload(res *metadata.Resource) (*meshtext.Font, bool) {
	if res == nil {
		return nil, false
	}
	data, ok := res.Data.(*metadata.MeshFontData)
	if !ok {
		return nil, false
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	lookup, ok := fs.fonts[fontKey(res.FullPath)]
	if !ok {
		return nil, false
	}
	lookup.Resource = res
	lookup.Font = meshtext.NewFont(data)
	core.LogInfo("font '%s' reloaded", data.Name)
	return lookup.Font, true
}

// Release drops one reference to the font at path and unloads it when none
// is left.
func (fs *FontSystem) Release(path string) {
	key := fontKey(path)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	lookup, ok := fs.fonts[key]
	if !ok {
		core.LogWarn("tried to release non-existent font: '%s'", path)
		return
	}
	lookup.ReferenceCount--
	if lookup.ReferenceCount > 0 {
		return
	}
	fs.unload(key, lookup)
}

func (fs *FontSystem) unload(key string, lookup *FontLookup) {
	if err := fs.assetManager.UnloadAsset(lookup.Resource); err != nil {
		core.LogWarn("unload font %s: %s", key, err)
	}
	if err := fs.ids.Release(lookup.ID); err != nil {
		core.LogWarn("release font id %d: %s", lookup.ID, err)
	}
	delete(fs.fonts, key)
}

// Loaded reports how many fonts are currently held.
func (fs *FontSystem) Loaded() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.fonts)
}

func (fs *FontSystem) Shutdown() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for key, lookup := range fs.fonts {
		fs.unload(key, lookup)
	}
	return nil
}
