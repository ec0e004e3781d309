//go:build !prod

package edgeentry

import (
	"os"

	"github.com/edgekit/go-edge-entry/internal/entrygen"
	"github.com/edgekit/go-edge-entry/internal/typeconverter"
)

// initDevTools initializes development tools (type converter, hot reload)
func (engine *Engine) initDevTools() error {
	// If running in production mode (APP_ENV), skip dev tools
	if os.Getenv("APP_ENV") == "production" {
		engine.Logger.Info("Running edge entry synthesizer in production mode")
		return nil
	}

	engine.Logger.Info("Running edge entry synthesizer in development mode")
	engine.Logger.Debug("Writing metadata type declarations")

	// Emit TypeScript declarations for the metadata side channel
	if err := typeconverter.Start(engine.Config.GeneratedTypesPath); err != nil {
		engine.Logger.Error("Failed to write metadata type declarations", "error", err)
		return err
	}

	for _, generator := range engine.Config.Generators {
		if err := generator.Generate(engine.Config); err != nil {
			engine.Logger.Error("Generator failed", "error", err)
			return err
		}
	}

	engine.Logger.Debug("Starting hot reload server")
	engine.HotReload = newHotReload(engine)
	engine.HotReload.Start()

	return nil
}

// stopHotReload stops the hot reload server (dev only)
func (engine *Engine) stopHotReload() {
	if engine.HotReload != nil {
		engine.Logger.Debug("Hot reload server stopping")
		engine.HotReload.Stop()
	}
}

// watchRoute registers a route's module files with the hot reload watcher
func (engine *Engine) watchRoute(opts entrygen.Options) {
	if engine.HotReload == nil {
		return
	}
	paths := append([]string{opts.AbsolutePagePath}, wrapperModulePaths(opts)...)
	engine.HotReload.Watch(paths)
}
