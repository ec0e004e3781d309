//go:build prod

package edgeentry

import "github.com/edgekit/go-edge-entry/internal/entrygen"

// initDevTools is a no-op in production builds
func (engine *Engine) initDevTools() error {
	engine.Logger.Info("Running edge entry synthesizer in production mode")
	return nil
}

// stopHotReload is a no-op in production builds
func (engine *Engine) stopHotReload() {
	// No hot reload in production
}

// watchRoute is a no-op in production builds
func (engine *Engine) watchRoute(opts entrygen.Options) {
	// No file watching in production
}
