package analytics

import "time"

// topSignalCount bounds the signals included in the summary
const topSignalCount = 5

// TrendWindow counts activity inside a trailing window
type TrendWindow struct {
	CasesCreated  int     `json:"cases_created"`
	CasesAnalyzed int     `json:"cases_analyzed"`
	AverageScore  float64 `json:"average_score"`
}

// Trends holds the trailing 7 and 30 day windows
type Trends struct {
	Last7Days  TrendWindow `json:"last_7_days"`
	Last30Days TrendWindow `json:"last_30_days"`
}

// Cohort groups scored cases by risk bucket
type Cohort struct {
	Name         string  `json:"name"`
	Cases        int     `json:"cases"`
	AverageScore float64 `json:"average_score"`
}

// Summary is the composite dashboard aggregate
type Summary struct {
	TotalCases       int              `json:"total_cases"`
	StatusCounts     map[string]int   `json:"status_counts"`
	RiskDistribution RiskDistribution `json:"risk_distribution"`
	TopSignals       []SignalStat     `json:"top_signals"`
	Trends           Trends           `json:"trends"`
	Cohorts          []Cohort         `json:"cohorts"`
}

// ComputeSummary composes the distribution and signal breakdown with status
// counts, trailing trend windows keyed on CreatedAt relative to now, and
// score-bucket cohorts. Score statistics keep the analyzed-only filter.
func ComputeSummary(records []CaseRecord, now time.Time) Summary {
	out := Summary{
		TotalCases:       len(records),
		StatusCounts:     map[string]int{},
		RiskDistribution: ComputeRiskDistribution(records),
		Cohorts:          []Cohort{},
	}

	signals := ComputeSignalBreakdown(records)
	if len(signals) > topSignalCount {
		signals = signals[:topSignalCount]
	}
	out.TopSignals = signals

	for _, rec := range records {
		out.StatusCounts[string(rec.Status)]++
	}

	out.Trends = Trends{
		Last7Days:  trendWindow(records, now, 7*24*time.Hour),
		Last30Days: trendWindow(records, now, 30*24*time.Hour),
	}

	out.Cohorts = cohorts(records)
	return out
}

// trendWindow aggregates records created within the trailing window
func trendWindow(records []CaseRecord, now time.Time, window time.Duration) TrendWindow {
	cutoff := now.Add(-window)

	var tw TrendWindow
	var sum float64
	var scored int
	for _, rec := range records {
		if rec.CreatedAt.Before(cutoff) || rec.CreatedAt.After(now) {
			continue
		}
		tw.CasesCreated++
		if rec.Status == StatusAnalyzed {
			tw.CasesAnalyzed++
		}
		if rec.scored() {
			sum += *rec.RiskScore
			scored++
		}
	}
	if scored > 0 {
		tw.AverageScore = round1(sum / float64(scored))
	}
	return tw
}

// cohorts groups scored cases by risk bucket in severity order
func cohorts(records []CaseRecord) []Cohort {
	type accum struct {
		count int
		sum   float64
	}
	byBucket := map[string]*accum{}

	for _, rec := range records {
		if !rec.scored() {
			continue
		}
		name := Bucket(*rec.RiskScore)
		acc := byBucket[name]
		if acc == nil {
			acc = &accum{}
			byBucket[name] = acc
		}
		acc.count++
		acc.sum += *rec.RiskScore
	}

	out := []Cohort{}
	for _, name := range []string{"low", "medium", "high", "critical"} {
		acc := byBucket[name]
		if acc == nil {
			continue
		}
		out = append(out, Cohort{
			Name:         name,
			Cases:        acc.count,
			AverageScore: round1(acc.sum / float64(acc.count)),
		})
	}
	return out
}
