package service

import (
	"context"
	"testing"

	"casework/internal/core/analytics"
	"casework/internal/modkit/repokit"
	perr "casework/internal/platform/errors"
	"casework/internal/platform/store"
	"casework/internal/platform/testkit"
	"casework/internal/services/api/cases/domain"
	"casework/internal/services/api/cases/repo"
)

// fakeDB satisfies TxRunner; Tx just runs the callback against itself
// the query surface is never reached because the fake repo short circuits
type fakeDB struct{}

func (fakeDB) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (fakeDB) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (fakeDB) QueryRow(context.Context, string, ...any) store.Row             { return nil }
func (fakeDB) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return fn(fakeDB{})
}

type fakeRepo struct {
	cases map[string]domain.Case

	inserted  []domain.Case
	jobs      []domain.AnalysisJob
	statuses  map[string]string
	listErr   error
	getErr    error
	insertErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{cases: map[string]domain.Case{}, statuses: map[string]string{}}
}

func (f *fakeRepo) ListByUser(_ context.Context, userID string) ([]domain.Case, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Case
	for _, c := range f.cases {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByUser(_ context.Context, userID, caseID string) (domain.Case, error) {
	if f.getErr != nil {
		return domain.Case{}, f.getErr
	}
	c, ok := f.cases[caseID]
	if !ok || c.UserID != userID {
		return domain.Case{}, perr.NotFoundf("case %s", caseID)
	}
	return c, nil
}

func (f *fakeRepo) Insert(_ context.Context, c domain.Case, _ string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, c)
	f.cases[c.ID] = c
	return nil
}

func (f *fakeRepo) SetStatus(_ context.Context, caseID, status string) error {
	f.statuses[caseID] = status
	return nil
}

func (f *fakeRepo) InsertJob(_ context.Context, j domain.AnalysisJob) error {
	f.jobs = append(f.jobs, j)
	return nil
}

func (f *fakeRepo) JobByUser(_ context.Context, _, jobID string) (domain.AnalysisJob, error) {
	for _, j := range f.jobs {
		if j.ID == jobID {
			return j, nil
		}
	}
	return domain.AnalysisJob{}, perr.NotFoundf("job %s", jobID)
}

type fakeBinder struct{ r *fakeRepo }

func (b fakeBinder) Bind(repokit.Queryer) repo.Repo { return b.r }

type fakeInvalidator struct{ keys []string }

func (f *fakeInvalidator) Invalidate(key string) { f.keys = append(f.keys, key) }

func newSvc(r *fakeRepo) (*Svc, *fakeInvalidator) {
	inv := &fakeInvalidator{}
	return New(fakeDB{}, fakeBinder{r: r}, inv), inv
}

func TestNewPanicsOnNilDependencies(t *testing.T) {
	r := newFakeRepo()
	inv := &fakeInvalidator{}

	testkit.MustPanic(t, func() { New(nil, fakeBinder{r: r}, inv) })
	testkit.MustPanic(t, func() { New(fakeDB{}, nil, inv) })
	testkit.MustPanic(t, func() { New(fakeDB{}, fakeBinder{r: r}, nil) })
	testkit.MustNotPanic(t, func() { New(fakeDB{}, fakeBinder{r: r}, inv) })
}

func TestCreateFromUploadInsertsPendingAndInvalidates(t *testing.T) {
	r := newFakeRepo()
	s, inv := newSvc(r)

	c, err := s.CreateFromUpload(context.Background(), "u1", "contract.txt", []byte("wire transfer now"))
	if err != nil {
		t.Fatalf("CreateFromUpload: %v", err)
	}
	if c.Status != analytics.StatusPending {
		t.Fatalf("expected pending status, got %q", c.Status)
	}
	if c.ID == "" {
		t.Fatalf("expected generated case id")
	}
	if len(r.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(r.inserted))
	}
	if len(inv.keys) != 1 || inv.keys[0] != domain.CacheKey("u1") {
		t.Fatalf("expected invalidation of %q, got %v", domain.CacheKey("u1"), inv.keys)
	}
}

func TestCreateFromUploadValidation(t *testing.T) {
	r := newFakeRepo()
	s, inv := newSvc(r)
	ctx := context.Background()

	cases := []struct {
		name     string
		filename string
		content  []byte
	}{
		{"empty filename", "   ", []byte("x")},
		{"empty content", "a.txt", nil},
		{"oversize content", "a.txt", make([]byte, maxUploadBytes+1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateFromUpload(ctx, "u1", tc.filename, tc.content)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
	if len(r.inserted) != 0 {
		t.Fatalf("nothing should be inserted on validation failure")
	}
	if len(inv.keys) != 0 {
		t.Fatalf("cache must not be invalidated on validation failure")
	}
}

func TestCreateFromUploadInsertFailureSkipsInvalidation(t *testing.T) {
	r := newFakeRepo()
	r.insertErr = perr.Internalf("disk full")
	s, inv := newSvc(r)

	if _, err := s.CreateFromUpload(context.Background(), "u1", "a.txt", []byte("x")); err == nil {
		t.Fatalf("expected insert error")
	}
	if len(inv.keys) != 0 {
		t.Fatalf("cache invalidation must only happen after a successful commit")
	}
}

func TestQueueAnalysisHappyPath(t *testing.T) {
	r := newFakeRepo()
	r.cases["c1"] = domain.Case{ID: "c1", UserID: "u1", Status: analytics.StatusPending}
	s, inv := newSvc(r)

	job, err := s.QueueAnalysis(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("QueueAnalysis: %v", err)
	}
	if job.Status != domain.JobQueued || job.CaseID != "c1" {
		t.Fatalf("unexpected job: %+v", job)
	}
	if r.statuses["c1"] != string(analytics.StatusAnalyzing) {
		t.Fatalf("expected case flipped to analyzing, got %q", r.statuses["c1"])
	}
	if len(inv.keys) != 1 || inv.keys[0] != domain.CacheKey("u1") {
		t.Fatalf("expected invalidation after queueing, got %v", inv.keys)
	}
}

func TestQueueAnalysisConflictWhenAlreadyAnalyzing(t *testing.T) {
	r := newFakeRepo()
	r.cases["c1"] = domain.Case{ID: "c1", UserID: "u1", Status: analytics.StatusAnalyzing}
	s, inv := newSvc(r)

	_, err := s.QueueAnalysis(context.Background(), "u1", "c1")
	if err == nil {
		t.Fatalf("expected conflict")
	}
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("expected conflict code, got %v", err)
	}
	if len(r.jobs) != 0 {
		t.Fatalf("no job should be recorded on conflict")
	}
	if len(inv.keys) != 0 {
		t.Fatalf("cache must not be invalidated on conflict")
	}
}

func TestQueueAnalysisUnknownCaseIsNotFound(t *testing.T) {
	r := newFakeRepo()
	s, _ := newSvc(r)

	_, err := s.QueueAnalysis(context.Background(), "u1", "nope")
	if err == nil {
		t.Fatalf("expected not found")
	}
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestListRecordsNormalizesCases(t *testing.T) {
	r := newFakeRepo()
	score := 42.0
	r.cases["c1"] = domain.Case{
		ID: "c1", UserID: "u1",
		Status:    analytics.StatusAnalyzed,
		RiskScore: &score,
		Signals:   map[string]any{"detector_breakdown": map[string]any{}},
	}
	s, _ := newSvc(r)

	recs, err := s.ListRecords(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].CaseID != "c1" || recs[0].RiskScore == nil || *recs[0].RiskScore != 42 {
		t.Fatalf("unexpected record: %+v", recs[0])
	}
}
