package analytics

// BucketCounts are the four disjoint risk score buckets
type BucketCounts struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// RiskDistribution summarizes scored analyzed cases
// Average is rounded to one decimal; all stats are 0 when nothing scored
type RiskDistribution struct {
	Distribution  BucketCounts `json:"distribution"`
	TotalAnalyzed int          `json:"total_analyzed"`
	AverageScore  float64      `json:"average_score"`
	MinScore      float64      `json:"min_score"`
	MaxScore      float64      `json:"max_score"`
}

// Bucket names the bucket a score falls into
// boundaries are lower-inclusive, the top bucket is closed at 100
func Bucket(score float64) string {
	switch {
	case score >= 75:
		return "critical"
	case score >= 50:
		return "high"
	case score >= 25:
		return "medium"
	default:
		return "low"
	}
}

// ComputeRiskDistribution buckets analyzed, scored records and tracks
// running sum, min, and max over the included scores
func ComputeRiskDistribution(records []CaseRecord) RiskDistribution {
	var out RiskDistribution
	var sum float64

	for _, rec := range records {
		if !rec.scored() {
			continue
		}
		score := *rec.RiskScore

		switch Bucket(score) {
		case "critical":
			out.Distribution.Critical++
		case "high":
			out.Distribution.High++
		case "medium":
			out.Distribution.Medium++
		default:
			out.Distribution.Low++
		}

		if out.TotalAnalyzed == 0 || score < out.MinScore {
			out.MinScore = score
		}
		if score > out.MaxScore {
			out.MaxScore = score
		}
		sum += score
		out.TotalAnalyzed++
	}

	if out.TotalAnalyzed > 0 {
		out.AverageScore = round1(sum / float64(out.TotalAnalyzed))
	}
	return out
}
