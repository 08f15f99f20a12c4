package domain

import (
	"context"

	"casework/internal/core/analytics"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	List(ctx context.Context, userID string) ([]Case, error)
	Get(ctx context.Context, userID, caseID string) (Case, error)
	CreateFromUpload(ctx context.Context, userID, filename string, content []byte) (Case, error)
	QueueAnalysis(ctx context.Context, userID, caseID string) (AnalysisJob, error)
	Job(ctx context.Context, userID, jobID string) (AnalysisJob, error)
}

// RecordSource yields normalized records for aggregation
type RecordSource interface {
	ListRecords(ctx context.Context, userID string) ([]analytics.CaseRecord, error)
}

// Invalidator drops cached aggregation inputs after a mutation commits
type Invalidator interface {
	Invalidate(key string)
}
