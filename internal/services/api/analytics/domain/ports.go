// Package domain holds analytics ports
package domain

import (
	"context"

	"casework/internal/core/analytics"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Summary(ctx context.Context, userID string) (analytics.Summary, error)
	RiskDistribution(ctx context.Context, userID string) (analytics.RiskDistribution, error)
	SignalBreakdown(ctx context.Context, userID string) ([]analytics.SignalStat, error)
}
