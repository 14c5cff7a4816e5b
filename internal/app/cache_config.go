package app

import (
	"strings"
	"time"

	"github.com/charlesng35/kurukshetra/internal/cache"
)

const defaultSportCacheTTL = 5 * time.Minute

// RedisClientConfig converts the application cache configuration into the cache package representation.
func (c CacheConfig) RedisClientConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Address:  strings.TrimSpace(c.Redis.Address),
		Username: strings.TrimSpace(c.Redis.Username),
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		TLS:      c.Redis.TLS,
		Timeout:  c.Redis.Timeout,
	}
}

// SportListTTL is how long the public sport listing stays cached.
func (c CacheConfig) SportListTTL() time.Duration {
	if c.SportTTL <= 0 {
		return defaultSportCacheTTL
	}
	return c.SportTTL
}
