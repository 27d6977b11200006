/*
This is an example of application that will use the
engine package to lay out and animate a text node
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/spaghettifunk/meshtext/engine"
	"github.com/spaghettifunk/meshtext/engine/core"
	"github.com/spaghettifunk/meshtext/engine/renderer"
	"github.com/spaghettifunk/meshtext/testbed"
)

func main() {
	flags := pflag.NewFlagSet("meshtext", pflag.ExitOnError)
	text := flags.StringP("text", "t", "Hello MeshText", "text to lay out")
	configPath := flags.StringP("config", "c", "", "text node config file (TOML)")
	fontPath := flags.StringP("font", "f", "", "font file (.toml, .yaml, .fnt, .ttf, .otf); Go Regular when empty")
	width := flags.IntP("width", "w", 0, "max characters per line; 0 disables wrapping by width")
	wrap := flags.Bool("wrap", true, "break lines between words instead of between characters")
	frames := flags.Uint64P("frames", "n", 120, "frames to run; 0 runs until interrupted")
	fps := flags.Float64("fps", 60, "target frame rate; 0 runs unpaced")
	watch := flags.String("watch", "", "directory to watch for font and config changes")
	logEvery := flags.Uint64("log-every", 30, "log the layout every N frames")
	spin := flags.Float32("spin", 0, "turn the text around its up axis, in degrees per second")
	logLevel := flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	options := &testbed.Options{
		Text:       *text,
		ConfigPath: *configPath,
		FontPath:   *fontPath,
		Width:      *width,
		LogEvery:   *logEvery,
		Spin:       *spin,
	}
	// only override the config file when the flag was given
	if flags.Changed("wrap") || *configPath == "" {
		options.WordWrap = wrap
	}
	if !flags.Changed("text") && *configPath != "" {
		options.Text = ""
	}

	tb := testbed.NewTestGame(&engine.ApplicationConfig{
		Name:            "MeshText testbed",
		LogLevel:        *logLevel,
		AssetsDir:       *watch,
		TargetFrameRate: *fps,
		MaxFrames:       *frames,
		Workers:         2,
	}, options)

	engine, err := engine.New(tb.Game, renderer.NewMemoryServer())
	if err != nil {
		core.LogFatal("%s", err)
	}

	if err := engine.Initialize(); err != nil {
		_ = engine.Shutdown()
		core.LogFatal("%s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// stop goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		engine.Stop()
	}()

	// run engine
	runErr := engine.Run()
	if err := engine.Shutdown(); err != nil {
		core.LogError("%s", err)
	}
	if runErr != nil {
		core.LogFatal("%s", runErr)
	}
}
