package module

import (
	"context"

	"casework/internal/core/analytics"
	casessvc "casework/internal/services/api/cases/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptCasesPort exposes the record source for cross-module usage
type adaptCasesPort struct{ svc casessvc.Service }

// ListRecords yields the user's cases in aggregation engine shape
func (a adaptCasesPort) ListRecords(ctx context.Context, userID string) ([]analytics.CaseRecord, error) {
	return a.svc.ListRecords(ctx, userID)
}
