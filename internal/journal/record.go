package journal

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Record is one persisted zone sync run.
type Record struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Domain     string    `json:"domain"`
	Root       string    `json:"root,omitempty"`
	Leases     string    `json:"leases,omitempty"`
	Sources    []string  `json:"sources,omitempty"`
	Records    int       `json:"records"`
	DryRun     bool      `json:"dry_run"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}
