// Package http provides http transport for analytics
package http

import (
	stdhttp "net/http"

	"casework/internal/modkit/httpkit"
	svc "casework/internal/services/api/analytics/service"
)

// Register mounts analytics endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/summary", h.summary)
	httpkit.Get(r, "/risk-distribution", h.riskDistribution)
	httpkit.Get(r, "/signals", h.signals)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /analytics/summary Analytics analyticsSummary
// @Summary Dashboard summary aggregate
// @Tags Analytics
// @Produce json
// @Success 200 {object} analytics.Summary "ok"
// @Router /analytics/summary [get]
func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	uid := httpkit.MustUser(r)
	return h.svc.Summary(r.Context(), uid)
}

// swagger:route GET /analytics/risk-distribution Analytics analyticsRiskDistribution
// @Summary Risk score distribution
// @Tags Analytics
// @Produce json
// @Success 200 {object} analytics.RiskDistribution "ok"
// @Router /analytics/risk-distribution [get]
func (h *handlers) riskDistribution(r *stdhttp.Request) (any, error) {
	uid := httpkit.MustUser(r)
	return h.svc.RiskDistribution(r.Context(), uid)
}

// swagger:route GET /analytics/signals Analytics analyticsSignals
// @Summary Per detector signal breakdown
// @Tags Analytics
// @Produce json
// @Success 200 {array} analytics.SignalStat "ok"
// @Router /analytics/signals [get]
func (h *handlers) signals(r *stdhttp.Request) (any, error) {
	uid := httpkit.MustUser(r)
	stats, err := h.svc.SignalBreakdown(r.Context(), uid)
	if err != nil {
		return nil, err
	}
	return map[string]any{"signals": stats}, nil
}
