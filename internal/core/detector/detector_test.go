package detector

import (
	"strings"
	"testing"
)

func TestRunScoresKeywordClasses(t *testing.T) {
	s := Default()

	res := s.Run("Please wire transfer the funds to our offshore account. Keep this confidential.")

	ff := res.Breakdown["financial_fraud"]
	if ff.Score != 40 {
		t.Fatalf("financial_fraud score = %v, want 40", ff.Score)
	}
	if len(ff.Matched) != 2 {
		t.Fatalf("financial_fraud matched = %v", ff.Matched)
	}
	up := res.Breakdown["urgency_pressure"]
	if up.Score != 10 {
		t.Fatalf("urgency_pressure score = %v, want 10", up.Score)
	}
	if res.RiskScore != 50 {
		t.Fatalf("risk score = %v, want 50", res.RiskScore)
	}
}

func TestRunCleanTextScoresZero(t *testing.T) {
	s := Default()
	res := s.Run("Quarterly report attached for your review.")
	if res.RiskScore != 0 {
		t.Fatalf("risk score = %v, want 0", res.RiskScore)
	}
	for name, ds := range res.Breakdown {
		if ds.Score != 0 || len(ds.Matched) != 0 {
			t.Fatalf("%s = %+v, want zero", name, ds)
		}
	}
}

func TestRunFoldsCaseAndWidth(t *testing.T) {
	s := NewSet(Detector{Name: "d", Weight: 5, Keywords: []string{"password"}})

	// mixed case plus fullwidth forms should still match
	res := s.Run("PASSWORD and ｐａｓｓｗｏｒｄ")
	if res.Breakdown["d"].Score != 10 {
		t.Fatalf("score = %v, want 10", res.Breakdown["d"].Score)
	}
}

func TestOverallScoreClampedTo100(t *testing.T) {
	s := Default()
	text := strings.Repeat("password wire transfer ssn act now ", 50)
	res := s.Run(text)
	if res.RiskScore != 100 {
		t.Fatalf("risk score = %v, want 100", res.RiskScore)
	}
	for name, ds := range res.Breakdown {
		if ds.Score > perDetectorCap {
			t.Fatalf("%s exceeded per-detector cap: %v", name, ds.Score)
		}
	}
}
