package checks

import (
	"context"
	"strings"
	"time"

	"github.com/charlesng35/kurukshetra/internal/monitoring"
)

const defaultMaintenanceMaxAge = 6 * time.Hour

// Maintenance reports whether scheduled jobs ran recently and without
// repeated failures. A zero maxAge uses six hours.
func Maintenance(tracker *monitoring.JobTracker, maxAge time.Duration) monitoring.Check {
	if maxAge <= 0 {
		maxAge = defaultMaintenanceMaxAge
	}

	return monitoring.NewCheck("maintenance", func(context.Context) monitoring.ProbeResult {
		if tracker == nil {
			return monitoring.ProbeResult{Status: monitoring.StatusUp, Details: "maintenance disabled"}
		}

		now := time.Now()
		status := monitoring.StatusUp
		var problems []string

		for _, job := range tracker.Jobs() {
			switch {
			case job.TotalRuns == 0:
				problems = append(problems, job.Job+": pending first run")
			case job.ConsecutiveFailures > 0:
				status = monitoring.Worst(status, monitoring.StatusDegraded)
				problems = append(problems, job.Job+": "+job.LastError)
			case now.Sub(job.LastRunAt) > maxAge:
				status = monitoring.Worst(status, monitoring.StatusDegraded)
				problems = append(problems, job.Job+": stale run "+job.LastRunAt.UTC().Format(time.RFC3339))
			}
		}

		return monitoring.ProbeResult{Status: status, Details: strings.Join(problems, "; ")}
	})
}
