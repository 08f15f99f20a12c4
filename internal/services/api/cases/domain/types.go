// Package domain holds case entities and ports
package domain

import (
	"time"

	"casework/internal/core/analytics"
)

// Case is one uploaded document under analysis
type Case struct {
	ID        string           `json:"case_id"`
	UserID    string           `json:"-"`
	Filename  string           `json:"filename"`
	Status    analytics.Status `json:"status"`
	RiskScore *float64         `json:"risk_score,omitempty"`
	Signals   map[string]any   `json:"signals,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Job lifecycle states
const (
	JobQueued  = "queued"
	JobRunning = "running"
	JobDone    = "done"
	JobFailed  = "failed"
)

// AnalysisJob tracks one queued analysis run for a case
type AnalysisJob struct {
	ID         string     `json:"job_id"`
	CaseID     string     `json:"case_id"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// CacheKey builds the per user aggregation cache key
// the exact form is load bearing: mutation hooks and the cache-aside
// reader must agree on it for invalidation to work
func CacheKey(userID string) string { return "cases:" + userID }

// Record normalizes a case into the aggregation engine input shape
func (c Case) Record() analytics.CaseRecord {
	return analytics.CaseRecord{
		CaseID:    c.ID,
		Status:    c.Status,
		RiskScore: c.RiskScore,
		Signals:   c.Signals,
		CreatedAt: c.CreatedAt,
	}
}
