package checks

import (
	"context"
	"time"

	"github.com/charlesng35/kurukshetra/internal/monitoring"
)

const defaultRedisTimeout = 2 * time.Second

// RedisPinger is satisfied by cache.RedisStore.
type RedisPinger interface {
	Ping(ctx context.Context) error
}

// Redis returns a readiness probe for the shared cache. A disabled cache
// reports up; an enabled one that failed to connect reports degraded, since
// the database fallback keeps the API serving.
func Redis(client RedisPinger, enabled bool, timeout time.Duration) monitoring.Check {
	return monitoring.NewCheck("redis", func(ctx context.Context) monitoring.ProbeResult {
		if !enabled {
			return monitoring.ProbeResult{Status: monitoring.StatusUp, Details: "redis disabled"}
		}
		if client == nil {
			return monitoring.ProbeResult{Status: monitoring.StatusDegraded, Details: "redis unavailable, using database cache"}
		}

		start := time.Now()
		probeCtx, cancel := context.WithTimeout(ctx, chooseTimeout(timeout, defaultRedisTimeout))
		defer cancel()

		result := monitoring.ResultFromError("redis", client.Ping(probeCtx), time.Since(start))
		if result.Status == monitoring.StatusDown {
			result.Status = monitoring.StatusDegraded
		}
		return result
	})
}
