package edgeentry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgekit/go-edge-entry/internal/cache"
)

func TestConfigValidateDefaults(t *testing.T) {
	config := Config{}
	require.NoError(t, config.Validate())

	assert.Equal(t, "development", config.AppEnv)
	assert.True(t, config.VerifySyntax, "dev mode verifies by default")
	assert.Equal(t, "./edgeentry_meta.ts", config.GeneratedTypesPath)
	assert.Equal(t, "localhost:3001", config.HotReloadAddr)
	assert.Equal(t, cache.CacheTypeLocal, config.Cache.Type)
}

func TestConfigValidateProduction(t *testing.T) {
	config := Config{AppEnv: "production"}
	require.NoError(t, config.Validate())
	assert.False(t, config.VerifySyntax, "production leaves verification to the caller")
}

func TestConfigValidateRedisRequiresAddr(t *testing.T) {
	config := Config{Cache: cache.CacheConfig{Type: cache.CacheTypeRedis}}
	assert.Error(t, config.Validate())

	config = Config{Cache: cache.CacheConfig{Type: cache.CacheTypeRedis, RedisAddr: "localhost:6379"}}
	assert.NoError(t, config.Validate())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{
		AppEnv: "production",
		Cache:  cache.CacheConfig{Type: cache.CacheTypeRedis},
	})
	assert.Error(t, err)
}
