package edgeentry

import (
	"context"
	"log/slog"
	"os"

	"github.com/edgekit/go-edge-entry/internal/cache"
)

// Engine synthesizes edge entry modules for the build pipeline. Individual
// syntheses are pure and independent; the engine adds the entry cache, the
// metadata type converter and the dev invalidation tooling around them.
type Engine struct {
	Logger    *slog.Logger
	Config    *Config
	Cache     cache.Cache
	HotReload *HotReload
}

// New creates a new edgeentry Engine instance
func New(config Config) (*Engine, error) {
	engine := &Engine{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Config: &config,
	}

	// Validate config first to set defaults
	err := config.Validate()
	if err != nil {
		engine.Logger.Error("Failed to validate config", "error", err)
		return nil, err
	}

	if err := os.Setenv("APP_ENV", config.AppEnv); err != nil {
		engine.Logger.Error("Failed to set APP_ENV environment variable", "error", err)
	}

	// Initialize the entry cache after validation (defaults are now set)
	engine.Cache, err = cache.NewCache(config.Cache)
	if err != nil {
		engine.Logger.Error("Failed to initialize entry cache", "error", err)
		return nil, err
	}
	engine.Logger.Debug("Initialized entry cache", "type", string(config.Cache.Type))

	// Initialize dev tools (type converter, hot reload) - no-op in prod builds
	if err := engine.initDevTools(); err != nil {
		return nil, err
	}

	return engine, nil
}

// Shutdown gracefully shuts down the engine and releases all resources.
// It should be called when the build pipeline is done synthesizing.
// The context can be used to set a timeout for the shutdown.
func (engine *Engine) Shutdown(ctx context.Context) error {
	engine.Logger.Info("Shutting down edge entry engine")

	// Clear the cache
	if engine.Cache != nil {
		engine.Cache.Clear()
		engine.Logger.Debug("Entry cache cleared")
	}

	// Stop hot reload server (dev only)
	engine.stopHotReload()

	engine.Logger.Info("edge entry engine shutdown complete")
	return nil
}
