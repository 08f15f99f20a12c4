// Package service contains the cache-aside analytics coordinator
package service

import (
	"context"
	"time"

	"casework/internal/core/analytics"
	"casework/internal/core/cache"
	"casework/internal/services/api/analytics/domain"
	casesdomain "casework/internal/services/api/cases/domain"
)

// cacheTTL bounds how long one user's normalized records are served from cache
const cacheTTL = 30 * time.Second

// Service defines the analytics service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the analytics service
// reads go cache first; misses pull from the record source outside any lock
// and populate the cache, accepting last-writer-wins on concurrent misses
type Svc struct {
	cache  *cache.Store[[]analytics.CaseRecord]
	source casesdomain.RecordSource

	// now is a seam for tests
	now func() time.Time
}

// New constructs an analytics service over a shared cache and record source
func New(c *cache.Store[[]analytics.CaseRecord], source casesdomain.RecordSource) *Svc {
	if c == nil {
		panic("analytics.Service requires a non nil cache Store")
	}
	if source == nil {
		panic("analytics.Service requires a non nil RecordSource")
	}
	return &Svc{cache: c, source: source, now: time.Now}
}

// cachedRecords implements the fetch-or-compute path for one user
// errors from the source propagate unchanged and nothing is cached
func (s *Svc) cachedRecords(ctx context.Context, userID string) ([]analytics.CaseRecord, error) {
	key := casesdomain.CacheKey(userID)
	if recs, ok := s.cache.Get(key); ok {
		return recs, nil
	}

	recs, err := s.source.ListRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, recs, cacheTTL)
	return recs, nil
}

// Summary returns the composite dashboard aggregate for the user
func (s *Svc) Summary(ctx context.Context, userID string) (analytics.Summary, error) {
	recs, err := s.cachedRecords(ctx, userID)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.ComputeSummary(recs, s.now()), nil
}

// RiskDistribution returns the bucketed risk score distribution for the user
func (s *Svc) RiskDistribution(ctx context.Context, userID string) (analytics.RiskDistribution, error) {
	recs, err := s.cachedRecords(ctx, userID)
	if err != nil {
		return analytics.RiskDistribution{}, err
	}
	return analytics.ComputeRiskDistribution(recs), nil
}

// SignalBreakdown returns per detector stats for the user
func (s *Svc) SignalBreakdown(ctx context.Context, userID string) ([]analytics.SignalStat, error) {
	recs, err := s.cachedRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeSignalBreakdown(recs), nil
}
