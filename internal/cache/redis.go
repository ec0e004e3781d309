package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache provides distributed caching via Redis, so concurrent build
// workers can share synthesized entries across processes.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// RedisConfig configures the Redis cache
type RedisConfig struct {
	Addr     string        // Redis address (e.g., "localhost:6379")
	Password string        // Redis password (empty for no auth)
	DB       int           // Redis database number
	TTL      time.Duration // Cache TTL (0 = no expiration)
	Prefix   string        // Key prefix (default: "edgeentry:")
	UseTLS   bool          // Enable TLS connection
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisConfig) (*RedisCache, error) {
	opts := &redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	}

	// Enable TLS if configured
	if config.UseTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = "edgeentry:"
	}

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		prefix: prefix,
	}, nil
}

// GetEntry retrieves a synthesized entry module from Redis
func (rc *RedisCache) GetEntry(fingerprint string) (string, bool) {
	ctx := context.Background()
	key := rc.prefix + "entry:" + fingerprint
	source, err := rc.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return source, true
}

// SetEntry stores a synthesized entry module in Redis
func (rc *RedisCache) SetEntry(fingerprint, source string) {
	ctx := context.Background()
	key := rc.prefix + "entry:" + fingerprint
	rc.client.Set(ctx, key, source, rc.ttl)
}

// RemoveEntry removes a synthesized entry module from Redis
func (rc *RedisCache) RemoveEntry(fingerprint string) {
	ctx := context.Background()
	key := rc.prefix + "entry:" + fingerprint
	rc.client.Del(ctx, key)
}

// SetPageModule maps a page to its primary module path
func (rc *RedisCache) SetPageModule(page, modulePath string) {
	ctx := context.Background()
	key := rc.prefix + "modules"
	rc.client.HSet(ctx, key, page, modulePath)
}

// SetPageDependencies stores the wrapper module paths a page references
func (rc *RedisCache) SetPageDependencies(page string, dependencies []string) {
	ctx := context.Background()
	key := rc.prefix + "deps:" + page
	data, _ := json.Marshal(dependencies)
	rc.client.Set(ctx, key, data, rc.ttl)
}

// SetPageFingerprint maps a page to the fingerprint of its last synthesis
func (rc *RedisCache) SetPageFingerprint(page, fingerprint string) {
	ctx := context.Background()
	key := rc.prefix + "fingerprints"
	rc.client.HSet(ctx, key, page, fingerprint)
}

// GetPageFingerprint returns the fingerprint of a page's last synthesis
func (rc *RedisCache) GetPageFingerprint(page string) (string, bool) {
	ctx := context.Background()
	key := rc.prefix + "fingerprints"
	fingerprint, err := rc.client.HGet(ctx, key, page).Result()
	if err != nil {
		return "", false
	}
	return fingerprint, true
}

// GetPagesWithModule returns pages whose primary module or dependencies
// reference the given path
func (rc *RedisCache) GetPagesWithModule(modulePath string) []string {
	ctx := context.Background()

	var pages []string
	modules, err := rc.client.HGetAll(ctx, rc.prefix+"modules").Result()
	if err != nil {
		return nil
	}
	for page, module := range modules {
		if module == modulePath {
			pages = append(pages, page)
		}
	}

	pattern := rc.prefix + "deps:*"
	var cursor uint64
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			break
		}

		for _, key := range keys {
			data, err := rc.client.Get(ctx, key).Bytes()
			if err != nil {
				continue
			}

			var deps []string
			if err := json.Unmarshal(data, &deps); err != nil {
				continue
			}

			for _, dep := range deps {
				if dep == modulePath {
					// Extract the page from the key
					page := key[len(rc.prefix+"deps:"):]
					pages = append(pages, page)
					break
				}
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return pages
}

// GetAllPages returns all pages with a synthesized entry
func (rc *RedisCache) GetAllPages() []string {
	ctx := context.Background()
	pages, err := rc.client.HKeys(ctx, rc.prefix+"modules").Result()
	if err != nil {
		return nil
	}
	return pages
}

// GetAllModulePaths returns every module path referenced by a synthesized
// page
func (rc *RedisCache) GetAllModulePaths() []string {
	ctx := context.Background()
	seen := make(map[string]bool)
	var paths []string

	modules, err := rc.client.HGetAll(ctx, rc.prefix+"modules").Result()
	if err == nil {
		for _, module := range modules {
			if !seen[module] {
				seen[module] = true
				paths = append(paths, module)
			}
		}
	}

	pattern := rc.prefix + "deps:*"
	var cursor uint64
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			break
		}

		for _, key := range keys {
			data, err := rc.client.Get(ctx, key).Bytes()
			if err != nil {
				continue
			}

			var deps []string
			if err := json.Unmarshal(data, &deps); err != nil {
				continue
			}

			for _, dep := range deps {
				if !seen[dep] {
					seen[dep] = true
					paths = append(paths, dep)
				}
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return paths
}

// Clear removes all edgeentry keys from cache
func (rc *RedisCache) Clear() {
	ctx := context.Background()
	pattern := rc.prefix + "*"
	var cursor uint64
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			break
		}

		if len(keys) > 0 {
			rc.client.Del(ctx, keys...)
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Stats returns cache statistics
func (rc *RedisCache) Stats(ctx context.Context) (map[string]interface{}, error) {
	info, err := rc.client.Info(ctx, "stats").Result()
	if err != nil {
		return nil, err
	}

	// Count edgeentry keys
	pattern := rc.prefix + "*"
	var count int64
	var cursor uint64
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		count += int64(len(keys))
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return map[string]interface{}{
		"type":       "redis",
		"key_count":  count,
		"prefix":     rc.prefix,
		"redis_info": info,
	}, nil
}
