// Package detector implements heuristic risk scoring over document text
// each detector scans folded text for a weighted keyword class and yields
// a sub-score; the set combines sub-scores into an overall risk score
package detector

import "strings"

// Score is a single detector's contribution for one document
type Score struct {
	Score   float64  `json:"score"`
	Matched []string `json:"matched,omitempty"`
}

// Result is the full scoring outcome for one document
type Result struct {
	RiskScore float64          `json:"risk_score"`
	Breakdown map[string]Score `json:"detector_breakdown"`
}

// Detector is one named keyword class with a per-hit weight
type Detector struct {
	Name     string
	Weight   float64
	Keywords []string
}

// Set runs a fixed detector collection over documents
type Set struct {
	detectors []Detector
}

// maximum a single detector can contribute
const perDetectorCap = 100

// Default returns the built in detector collection
func Default() *Set {
	return NewSet(
		Detector{
			Name:   "credential_leak",
			Weight: 25,
			Keywords: []string{
				"password", "passphrase", "api key", "apikey",
				"secret key", "private key", "access token",
			},
		},
		Detector{
			Name:   "financial_fraud",
			Weight: 20,
			Keywords: []string{
				"wire transfer", "offshore", "shell company", "launder",
				"untraceable", "cash only", "backdated",
			},
		},
		Detector{
			Name:   "pii_exposure",
			Weight: 15,
			Keywords: []string{
				"social security", "ssn", "passport number", "date of birth",
				"driver license", "bank account number",
			},
		},
		Detector{
			Name:   "urgency_pressure",
			Weight: 10,
			Keywords: []string{
				"act now", "immediately", "final notice", "last chance",
				"do not tell", "keep this confidential",
			},
		},
	)
}

// NewSet builds a Set from explicit detectors, mostly for tests
func NewSet(detectors ...Detector) *Set {
	return &Set{detectors: detectors}
}

// Run scores text against every detector in the set
// the overall risk score is the capped sum of sub-scores, clamped to [0,100]
func (s *Set) Run(text string) Result {
	folded := fold(text)

	out := Result{Breakdown: make(map[string]Score, len(s.detectors))}
	for _, d := range s.detectors {
		ds := d.score(folded)
		out.Breakdown[d.Name] = ds
		out.RiskScore += ds.Score
	}
	if out.RiskScore > 100 {
		out.RiskScore = 100
	}
	return out
}

// score counts keyword occurrences and weighs them, capped per detector
func (d Detector) score(folded string) Score {
	var sc Score
	for _, kw := range d.Keywords {
		n := strings.Count(folded, kw)
		if n == 0 {
			continue
		}
		sc.Score += float64(n) * d.Weight
		sc.Matched = append(sc.Matched, kw)
	}
	if sc.Score > perDetectorCap {
		sc.Score = perDetectorCap
	}
	return sc
}
