package monitoring

import (
	"sort"
	"sync"
	"time"

	"github.com/charlesng35/kurukshetra/pkg/metrics"
)

// JobSummary is the recorded history of one scheduled maintenance job.
type JobSummary struct {
	Job                 string        `json:"job"`
	TotalRuns           uint64        `json:"totalRuns"`
	Failures            uint64        `json:"failures"`
	ConsecutiveFailures uint64        `json:"consecutiveFailures"`
	LastRunAt           time.Time     `json:"lastRunAt"`
	LastDuration        time.Duration `json:"lastDuration"`
	LastError           string        `json:"lastError,omitempty"`
}

// JobTracker records maintenance runs for the health probe. It is safe for
// concurrent use.
type JobTracker struct {
	mu   sync.Mutex
	jobs map[string]*JobSummary
	now  func() time.Time
}

// NewJobTracker constructs an empty tracker.
func NewJobTracker() *JobTracker {
	return &JobTracker{jobs: make(map[string]*JobSummary), now: time.Now}
}

// Register makes job visible before its first run.
func (t *JobTracker) Register(job string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entry(job)
}

// Record stores the outcome of one run and counts it in Prometheus.
func (t *JobTracker) Record(job string, err error, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	metrics.MaintenanceRuns.WithLabelValues(job, result).Inc()

	t.mu.Lock()
	defer t.mu.Unlock()

	summary := t.entry(job)
	summary.TotalRuns++
	summary.LastRunAt = t.now()
	summary.LastDuration = duration
	if err != nil {
		summary.Failures++
		summary.ConsecutiveFailures++
		summary.LastError = err.Error()
		return
	}
	summary.ConsecutiveFailures = 0
	summary.LastError = ""
}

// Jobs returns a copy of every tracked job, ordered by name.
func (t *JobTracker) Jobs() []JobSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]JobSummary, 0, len(t.jobs))
	for _, summary := range t.jobs {
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Job < out[j].Job })
	return out
}

func (t *JobTracker) entry(job string) *JobSummary {
	summary, ok := t.jobs[job]
	if !ok {
		summary = &JobSummary{Job: job}
		t.jobs[job] = summary
	}
	return summary
}
