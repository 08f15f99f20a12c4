package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"casework/internal/core/analytics"
	pnet "casework/internal/platform/net"
	phttp "casework/internal/platform/net/http"
)

type fakeSvc struct {
	summary analytics.Summary
	dist    analytics.RiskDistribution
	stats   []analytics.SignalStat
	lastUID string
}

func (f *fakeSvc) Summary(_ context.Context, uid string) (analytics.Summary, error) {
	f.lastUID = uid
	return f.summary, nil
}

func (f *fakeSvc) RiskDistribution(_ context.Context, uid string) (analytics.RiskDistribution, error) {
	f.lastUID = uid
	return f.dist, nil
}

func (f *fakeSvc) SignalBreakdown(_ context.Context, uid string) ([]analytics.SignalStat, error) {
	f.lastUID = uid
	return f.stats, nil
}

// withUser injects an authenticated user the way the auth middleware does
func withUser(uid string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), uid)))
		})
	}
}

func newServer(t *testing.T, svc *fakeSvc) *httptest.Server {
	t.Helper()
	mux := chi.NewMux()
	r := phttp.AdaptChi(mux)
	r.Use(withUser("u1"))
	Register(r, svc)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string) map[string]any {
	t.Helper()
	resp, err := stdhttp.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestSignalsWrapsStatsInObject(t *testing.T) {
	svc := &fakeSvc{stats: []analytics.SignalStat{{
		Name:           "credential_leak",
		TriggeredCount: 2,
		MaxScore:       50,
		AvgScore:       37.5,
		CaseIDs:        []string{"c1", "c2"},
	}}}
	ts := newServer(t, svc)

	body := getJSON(t, ts.URL+"/signals")
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected envelope data object, got %T", body["data"])
	}
	sigs, ok := data["signals"].([]any)
	if !ok || len(sigs) != 1 {
		t.Fatalf("expected signals array with 1 entry, got %v", data["signals"])
	}
	first := sigs[0].(map[string]any)
	if first["name"] != "credential_leak" {
		t.Fatalf("unexpected signal entry: %v", first)
	}
	if svc.lastUID != "u1" {
		t.Fatalf("handler did not pass the authenticated user, got %q", svc.lastUID)
	}
}

func TestRiskDistributionReturnsBuckets(t *testing.T) {
	svc := &fakeSvc{dist: analytics.RiskDistribution{
		Distribution:  analytics.BucketCounts{Low: 1, Critical: 2},
		TotalAnalyzed: 3,
		AverageScore:  61.7,
		MinScore:      10,
		MaxScore:      92,
	}}
	ts := newServer(t, svc)

	body := getJSON(t, ts.URL+"/risk-distribution")
	data := body["data"].(map[string]any)
	dist, ok := data["distribution"].(map[string]any)
	if !ok {
		t.Fatalf("expected distribution object, got %v", data)
	}
	if dist["low"] != float64(1) || dist["critical"] != float64(2) {
		t.Fatalf("unexpected buckets: %v", dist)
	}
	if data["total_analyzed"] != float64(3) {
		t.Fatalf("unexpected total: %v", data["total_analyzed"])
	}
}

func TestSummaryReturnsEnvelope(t *testing.T) {
	svc := &fakeSvc{summary: analytics.Summary{TotalCases: 4}}
	ts := newServer(t, svc)

	body := getJSON(t, ts.URL+"/summary")
	if body["status_code"] != float64(200) || body["status"] != stdhttp.StatusText(stdhttp.StatusOK) {
		t.Fatalf("unexpected envelope: %v", body)
	}
	data := body["data"].(map[string]any)
	if data["total_cases"] != float64(4) {
		t.Fatalf("unexpected summary: %v", data)
	}
}
