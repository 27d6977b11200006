package core

import (
	"errors"
)

var (
	ErrInvalidMaxWidth   = errors.New("max character width must be at least 1")
	ErrUnknownAlignment  = errors.New("unknown alignment")
	ErrUnknownEffect     = errors.New("unknown text effect")
	ErrUnsupportedAsset  = errors.New("unsupported asset type")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrIDOutOfRange      = errors.New("identifier out of range")
	ErrIDNotInitialized  = errors.New("identifier allocator used before any id was acquired")
	ErrWatcherClosed     = errors.New("asset watcher already closed")
	ErrEmptyCharacterSet = errors.New("font has an empty character set")
)
