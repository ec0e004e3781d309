package cache

// Cache stores synthesized entry modules keyed by options fingerprint, plus
// the page-to-module-path mappings dev tooling uses to invalidate entries
// when files on disk change. Synthesis is deterministic, so sharing an entry
// between identical fingerprints is always safe.
type Cache interface {
	GetEntry(fingerprint string) (string, bool)
	SetEntry(fingerprint, source string)
	RemoveEntry(fingerprint string)

	SetPageModule(page, modulePath string)
	SetPageDependencies(page string, dependencies []string)
	SetPageFingerprint(page, fingerprint string)
	GetPageFingerprint(page string) (string, bool)
	GetPagesWithModule(modulePath string) []string
	GetAllPages() []string
	GetAllModulePaths() []string

	Clear()
}

// CacheType selects the cache implementation
type CacheType string

const (
	CacheTypeLocal CacheType = "local"
	CacheTypeRedis CacheType = "redis"
)

// CacheConfig configures the cache backend
type CacheConfig struct {
	Type          CacheType
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTLS      bool
}

// NewCache creates a cache based on the config
func NewCache(config CacheConfig) (Cache, error) {
	switch config.Type {
	case CacheTypeRedis:
		return NewRedisCache(RedisConfig{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
			UseTLS:   config.RedisTLS,
		})
	case CacheTypeLocal, "":
		return NewLocalCache(), nil
	default:
		return NewLocalCache(), nil
	}
}
