package engine

type ApplicationConfig struct {
	// The application name used in logs.
	Name string
	// Level of the shared logger ("debug", "info", ...). Empty keeps the default.
	LogLevel string
	// Directory watched for font and text config changes. Empty disables the watcher.
	AssetsDir string
	// Frames per second the loop is paced to. Zero runs unpaced.
	TargetFrameRate float64
	// Frames to run before stopping. Zero runs until Stop is called.
	MaxFrames uint64
	// Workers of the job system.
	Workers int
	// Capacity of the queue that hands watcher reloads to the frame loop.
	ReloadQueueSize int
}
