package checks

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/internal/models"
	"github.com/charlesng35/kurukshetra/internal/monitoring"
)

const defaultDatabaseTimeout = 2 * time.Second

// requiredTables are the tables the public API reads from.
var requiredTables = []struct {
	name  string
	model any
}{
	{"users", &models.User{}},
	{"sports", &models.Sport{}},
	{"matches", &models.Match{}},
	{"events", &models.Event{}},
}

// Database returns a readiness probe that pings the connection and then
// confirms migrations have created the core tables. A reachable database
// with missing tables reports degraded.
func Database(db *gorm.DB, timeout time.Duration) monitoring.Check {
	return monitoring.NewCheck("database", func(ctx context.Context) monitoring.ProbeResult {
		if db == nil {
			return monitoring.ProbeResult{Status: monitoring.StatusDown, Details: "database not configured"}
		}

		start := time.Now()
		probeCtx, cancel := context.WithTimeout(ctx, chooseTimeout(timeout, defaultDatabaseTimeout))
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(probeCtx)
		}
		if err != nil {
			return monitoring.ResultFromError("database", err, time.Since(start))
		}

		migrator := db.WithContext(probeCtx).Migrator()
		var missing []string
		for _, table := range requiredTables {
			if !migrator.HasTable(table.model) {
				missing = append(missing, table.name)
			}
		}

		result := monitoring.ProbeResult{Component: "database", Status: monitoring.StatusUp, Duration: time.Since(start)}
		if len(missing) > 0 {
			result.Status = monitoring.StatusDegraded
			result.Details = "missing tables: " + strings.Join(missing, ", ")
		}
		return result
	})
}

func chooseTimeout(provided, fallback time.Duration) time.Duration {
	if provided <= 0 {
		return fallback
	}
	return provided
}
