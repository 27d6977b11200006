package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/meshtext/engine/assets/loaders"
	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/renderer/metadata"
)

// TextConfigSuffix marks TOML files that hold a text node configuration
// rather than a mesh font.
const TextConfigSuffix = ".text.toml"

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// FnOnReload receives every asset the watcher reloaded. res is nil when err
// is set.
type FnOnReload func(res *metadata.Resource, err error)

type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
	watching bool
	onReload FnOnReload
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}

	// Register loaders
	am.RegisterLoader(metadata.ResourceTypeMeshFont, &loaders.MeshFontLoader{})
	am.RegisterLoader(metadata.ResourceTypeBitmapFont, &loaders.BitmapFontLoader{})
	am.RegisterLoader(metadata.ResourceTypeSystemFont, &loaders.SystemFontLoader{})
	am.RegisterLoader(metadata.ResourceTypeTextConfig, &loaders.TextConfigLoader{})

	return am, nil
}

// RegisterLoader sets the loader for assetType, replacing any previous one.
func (am *AssetManager) RegisterLoader(assetType metadata.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// LoadAsset loads the file at path with the loader registered for its type.
func (am *AssetManager) LoadAsset(path string, params interface{}) (*metadata.Resource, error) {
	assetType := DetermineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return nil, fmt.Errorf("%s: %w", path, core.ErrUnsupportedAsset)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", path, core.ErrAssetNotFound)
	}

	am.mutex.RLock()
	loader, loaderExists := am.loaders[assetType]
	am.mutex.RUnlock()
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type %s: %w", assetType, core.ErrUnsupportedAsset)
	}

	res, err := loader.Load(path, assetType, params)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()

	core.LogDebug("loaded %s asset %s", assetType, path)
	return res, nil
}

// UnloadAsset hands res back to its loader.
func (am *AssetManager) UnloadAsset(res *metadata.Resource) error {
	if res == nil {
		return nil
	}
	am.mutex.Lock()
	loader, ok := am.loaders[res.Type]
	delete(am.assets, res.FullPath)
	am.mutex.Unlock()
	if !ok {
		return fmt.Errorf("no loader registered for asset type %s: %w", res.Type, core.ErrUnsupportedAsset)
	}
	return loader.Unload(res)
}

// Asset returns what is known about a loaded asset.
func (am *AssetManager) Asset(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[path]
	return info, ok
}

// Watch starts watching dir and all its sub-directories. Every supported
// file that is created or written is reloaded and passed to onReload.
func (am *AssetManager) Watch(dir string, onReload FnOnReload) error {
	am.mutex.RLock()
	closed := am.isClosed
	am.mutex.RUnlock()
	if closed {
		return core.ErrWatcherClosed
	}
	if err := am.watchRecursive(dir, false); err != nil {
		return err
	}

	am.mutex.Lock()
	starting := !am.watching
	am.watching = true
	am.onReload = onReload
	am.mutex.Unlock()
	if starting {
		am.wg.Add(1)
		go am.start()
	}
	return nil
}

// Unwatch stops watching dir and all its sub-directories.
func (am *AssetManager) Unwatch(dir string) error {
	return am.watchRecursive(dir, true)
}

// Close stops the watcher. The manager can still load assets afterwards.
func (am *AssetManager) Close() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return core.ErrWatcherClosed
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	am.wg.Wait()
	return am.fsnotify.Close()
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, false); err != nil {
						core.LogWarn("watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("watcher: %s", err)

		case <-am.done:
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return nil
		}
		if unWatch {
			return am.fsnotify.Remove(walkPath)
		}
		return am.fsnotify.Add(walkPath)
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	if DetermineAssetType(path) == metadata.ResourceTypeNone {
		return
	}
	res, err := am.LoadAsset(path, nil)
	if err != nil {
		core.LogWarn("reload %s: %s", path, err)
	}

	am.mutex.RLock()
	onReload := am.onReload
	am.mutex.RUnlock()
	if onReload != nil {
		onReload(res, err)
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

// DetermineAssetType maps a file name to the resource type that loads it.
func DetermineAssetType(path string) metadata.ResourceType {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, TextConfigSuffix) {
		return metadata.ResourceTypeTextConfig
	}
	switch filepath.Ext(lower) {
	case ".toml", ".yaml", ".yml":
		return metadata.ResourceTypeMeshFont
	case ".fnt":
		return metadata.ResourceTypeBitmapFont
	case ".ttf", ".otf":
		return metadata.ResourceTypeSystemFont
	default:
		return metadata.ResourceTypeNone
	}
}
