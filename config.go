package edgeentry

import (
	"errors"

	"github.com/edgekit/go-edge-entry/internal/cache"
)

// Config configures the synthesizer engine.
type Config struct {
	// AppEnv is exported as the APP_ENV environment variable; "production"
	// disables all dev tooling.
	AppEnv string
	// VerifySyntax runs the esbuild parse check on every freshly synthesized
	// module. Defaults to on in development, off in production.
	VerifySyntax bool
	// GeneratedTypesPath is where dev mode writes the TypeScript
	// declarations for the metadata side channel.
	GeneratedTypesPath string
	// HotReloadAddr is the listen address of the dev websocket server that
	// notifies the build pipeline about invalidated pages.
	HotReloadAddr string
	// Cache selects the entry cache backend.
	Cache cache.CacheConfig
	// Generators run after dev tool initialization, in order.
	Generators []Generator
}

// Validate sets defaults
func (c *Config) Validate() error {
	if c.AppEnv == "" {
		c.AppEnv = "development"
	}
	if c.AppEnv != "production" {
		c.VerifySyntax = true
	}
	if c.GeneratedTypesPath == "" {
		c.GeneratedTypesPath = "./edgeentry_meta.ts"
	}
	if c.HotReloadAddr == "" {
		c.HotReloadAddr = "localhost:3001"
	}
	if c.Cache.Type == "" {
		c.Cache.Type = cache.CacheTypeLocal
	}
	if c.Cache.Type == cache.CacheTypeRedis && c.Cache.RedisAddr == "" {
		return errors.New("redis cache selected but no address configured")
	}
	return nil
}
