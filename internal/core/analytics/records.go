// Package analytics aggregates case records into dashboard-ready summaries
// all functions are pure and never mutate their input
package analytics

import (
	"math"
	"time"
)

// Status is the case lifecycle state
type Status string

// Case lifecycle states
const (
	StatusPending   Status = "pending"
	StatusAnalyzing Status = "analyzing"
	StatusAnalyzed  Status = "analyzed"
	StatusFailed    Status = "failed"
)

// CaseRecord is the normalized engine input
// Signals may carry a "detector_breakdown" sub-mapping from detector name
// to {score, ...}; only analyzed records contribute to score statistics
type CaseRecord struct {
	CaseID    string         `json:"case_id"`
	Status    Status         `json:"status"`
	RiskScore *float64       `json:"risk_score,omitempty"`
	Signals   map[string]any `json:"signals,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// scored reports whether the record contributes to score statistics
func (r CaseRecord) scored() bool {
	return r.Status == StatusAnalyzed && r.RiskScore != nil
}

// round1 rounds to one decimal, half away from zero
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// asFloat coerces the numeric shapes jsonb decoding can produce
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
