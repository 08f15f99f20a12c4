package module

import (
	"context"

	"casework/internal/core/analytics"
	analyticssvc "casework/internal/services/api/analytics/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptAnalyticsPort exposes service methods as module ports for cross-module usage
type adaptAnalyticsPort struct{ svc analyticssvc.Service }

func (a adaptAnalyticsPort) Summary(ctx context.Context, userID string) (analytics.Summary, error) {
	return a.svc.Summary(ctx, userID)
}

func (a adaptAnalyticsPort) RiskDistribution(
	ctx context.Context, userID string,
) (analytics.RiskDistribution, error) {
	return a.svc.RiskDistribution(ctx, userID)
}

func (a adaptAnalyticsPort) SignalBreakdown(ctx context.Context, userID string) ([]analytics.SignalStat, error) {
	return a.svc.SignalBreakdown(ctx, userID)
}
