package analytics

import "sort"

// sampleCap bounds the case ids kept per detector
const sampleCap = 10

// SignalStat is the per detector aggregate
// CaseIDs holds the first triggering cases in insertion order, capped
type SignalStat struct {
	Name           string   `json:"name"`
	TriggeredCount int      `json:"triggered_count"`
	MaxScore       float64  `json:"max_score"`
	AvgScore       float64  `json:"avg_score"`
	CaseIDs        []string `json:"case_ids"`
}

// signalAccum carries the running total that is dropped from the output
type signalAccum struct {
	stat  SignalStat
	total float64
}

// ComputeSignalBreakdown aggregates detector_breakdown entries across
// analyzed records. A detector is triggered for a case only when its
// score is positive; malformed detector entries are skipped, never fatal.
// Output is sorted by triggered count descending, stable by first-seen order.
func ComputeSignalBreakdown(records []CaseRecord) []SignalStat {
	byName := map[string]*signalAccum{}
	var order []string

	for _, rec := range records {
		if rec.Status != StatusAnalyzed || len(rec.Signals) == 0 {
			continue
		}
		breakdown, ok := rec.Signals["detector_breakdown"].(map[string]any)
		if !ok {
			continue
		}

		// iterate names sorted so first-seen order is deterministic
		names := make([]string, 0, len(breakdown))
		for name := range breakdown {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			data, ok := breakdown[name].(map[string]any)
			if !ok {
				continue
			}
			score, ok := asFloat(data["score"])
			if !ok {
				score = 0
			}

			acc := byName[name]
			if acc == nil {
				acc = &signalAccum{stat: SignalStat{Name: name, CaseIDs: []string{}}}
				byName[name] = acc
				order = append(order, name)
			}

			if score > 0 {
				acc.stat.TriggeredCount++
				acc.total += score
				if score > acc.stat.MaxScore {
					acc.stat.MaxScore = score
				}
				if len(acc.stat.CaseIDs) < sampleCap {
					acc.stat.CaseIDs = append(acc.stat.CaseIDs, rec.CaseID)
				}
			}
		}
	}

	out := make([]SignalStat, 0, len(order))
	for _, name := range order {
		acc := byName[name]
		if acc.stat.TriggeredCount > 0 {
			acc.stat.AvgScore = round1(acc.total / float64(acc.stat.TriggeredCount))
		}
		out = append(out, acc.stat)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TriggeredCount > out[j].TriggeredCount
	})
	return out
}
