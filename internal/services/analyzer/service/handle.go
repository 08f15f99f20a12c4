package service

import (
	"context"
	"time"

	"casework/internal/core/detector"
	"casework/internal/modkit/repokit"
	"casework/internal/platform/logger"
	dom "casework/internal/services/analyzer/domain"
)

// handleJob scores one leased job and persists the outcome
// Scoring failures are terminal for the case: the job and case both move to
// failed so the upload can be retried explicitly rather than looping forever
func (s *Svc) handleJob(ctx context.Context, j dom.Job) error {
	res := s.det.Run(j.ExtractedText)

	breakdown := make(map[string]any, len(res.Breakdown))
	for name, sc := range res.Breakdown {
		breakdown[name] = map[string]any{
			"score":   sc.Score,
			"matched": sc.Matched,
		}
	}
	signals := map[string]any{"detector_breakdown": breakdown}

	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		return s.binder.Bind(q).CompleteJob(ctx, j.JobID, j.CaseID, res.RiskScore, signals)
	})
	if err != nil {
		if ferr := s.repo.FailJob(ctx, j.JobID, j.CaseID, err.Error()); ferr != nil {
			return ferr
		}
		return err
	}

	s.emitEvents(ctx, j, res)
	return nil
}

// emitEvents ships per-detector score rows to clickhouse when a sink is wired
// best effort: analytical events never fail the job
func (s *Svc) emitEvents(ctx context.Context, j dom.Job, res detector.Result) {
	if s.sink == nil || len(res.Breakdown) == 0 {
		return
	}
	now := time.Now().UTC()
	rows := make([][]any, 0, len(res.Breakdown))
	for name, sc := range res.Breakdown {
		triggered := uint8(0)
		if sc.Score > 0 {
			triggered = 1
		}
		rows = append(rows, []any{j.CaseID, j.UserID, name, sc.Score, triggered, res.RiskScore, now})
	}
	if err := s.sink.Insert(ctx, "detector_events", rows); err != nil {
		logger.Named("analyzer-worker").Warn().Err(err).
			Str("case_id", j.CaseID).
			Msg("detector event insert failed")
	}
}
