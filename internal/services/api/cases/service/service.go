// Package service contains case workflows
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"casework/internal/core/analytics"
	"casework/internal/modkit/repokit"
	perr "casework/internal/platform/errors"
	"casework/internal/services/api/cases/domain"
	"casework/internal/services/api/cases/repo"
)

// maxUploadBytes caps document content accepted from uploads
const maxUploadBytes = 10 << 20

// Service defines the cases service contract
type Service interface {
	domain.ServicePort
	domain.RecordSource
}

// Svc implements the cases service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cache  domain.Invalidator
}

// New constructs a cases service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cache domain.Invalidator) *Svc {
	if db == nil {
		panic("cases.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("cases.Service requires a non nil Repo binder")
	}
	if cache == nil {
		panic("cases.Service requires a non nil cache Invalidator")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, cache: cache}
}

// List returns the user's cases newest first
func (s *Svc) List(ctx context.Context, userID string) ([]domain.Case, error) {
	out, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, perr.FromPostgres(err, "cases.list")
	}
	return out, nil
}

// Get returns one case scoped to the user
func (s *Svc) Get(ctx context.Context, userID, caseID string) (domain.Case, error) {
	c, err := s.Repo.GetByUser(ctx, userID, caseID)
	if err != nil {
		return domain.Case{}, perr.FromPostgres(err, "cases.get")
	}
	return c, nil
}

// CreateFromUpload stores an uploaded document as a pending case
// the user's aggregation cache key is invalidated after the insert commits
func (s *Svc) CreateFromUpload(ctx context.Context, userID, filename string, content []byte) (domain.Case, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return domain.Case{}, perr.Validationf("filename is required")
	}
	if len(content) == 0 {
		return domain.Case{}, perr.Validationf("uploaded file is empty")
	}
	if len(content) > maxUploadBytes {
		return domain.Case{}, perr.Validationf("uploaded file exceeds %d bytes", maxUploadBytes)
	}

	now := time.Now().UTC()
	c := domain.Case{
		ID:        uuid.NewString(),
		UserID:    userID,
		Filename:  filename,
		Status:    analytics.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	text := strings.ToValidUTF8(string(content), "")

	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Insert(ctx, c, text)
	})
	if err != nil {
		return domain.Case{}, perr.FromPostgres(err, "cases.upload")
	}

	// after commit, before returning: the next read must observe fresh data
	s.cache.Invalidate(domain.CacheKey(userID))
	return c, nil
}

// QueueAnalysis inserts a queued job and flips the case to analyzing
// the user's aggregation cache key is invalidated after the tx commits
func (s *Svc) QueueAnalysis(ctx context.Context, userID, caseID string) (domain.AnalysisJob, error) {
	job := domain.AnalysisJob{
		ID:        uuid.NewString(),
		CaseID:    caseID,
		Status:    domain.JobQueued,
		CreatedAt: time.Now().UTC(),
	}

	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		c, err := r.GetByUser(ctx, userID, caseID)
		if err != nil {
			return err
		}
		if c.Status == analytics.StatusAnalyzing {
			return perr.Conflictf("case %s is already being analyzed", caseID)
		}
		if err := r.InsertJob(ctx, job); err != nil {
			return err
		}
		return r.SetStatus(ctx, caseID, string(analytics.StatusAnalyzing))
	})
	if err != nil {
		return domain.AnalysisJob{}, perr.FromPostgres(err, "cases.analyze")
	}

	s.cache.Invalidate(domain.CacheKey(userID))
	return job, nil
}

// Job returns one analysis job scoped to the user
func (s *Svc) Job(ctx context.Context, userID, jobID string) (domain.AnalysisJob, error) {
	j, err := s.Repo.JobByUser(ctx, userID, jobID)
	if err != nil {
		return domain.AnalysisJob{}, perr.FromPostgres(err, "cases.job")
	}
	return j, nil
}

// ListRecords normalizes the user's cases into aggregation engine input
func (s *Svc) ListRecords(ctx context.Context, userID string) ([]analytics.CaseRecord, error) {
	cs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]analytics.CaseRecord, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Record())
	}
	return out, nil
}
