//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"casework/internal/platform/store"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

var schemaDDL = []string{`
create table cases (
	id uuid primary key,
	user_id text not null,
	filename text not null default '',
	status text not null,
	risk_score double precision,
	signals jsonb,
	extracted_text text,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
)`, `
create table analysis_jobs (
	id uuid primary key,
	case_id uuid not null references cases(id),
	status text not null,
	error text,
	created_at timestamptz not null default now(),
	started_at timestamptz,
	finished_at timestamptz
)`}

func seedCaseWithJob(
	t *testing.T, ctx context.Context, q store.RowQuerier,
	caseID, jobID, jobStatus, startedAgo string,
) {
	t.Helper()
	if _, err := q.Exec(ctx,
		`insert into cases (id, user_id, status, extracted_text) values ($1, 'u1', 'analyzing', 'wire transfer')`,
		caseID,
	); err != nil {
		t.Fatalf("seed case %s: %v", caseID, err)
	}
	started := "null"
	if startedAgo != "" {
		started = fmt.Sprintf("now() - interval '%s'", startedAgo)
	}
	sql := fmt.Sprintf(
		`insert into analysis_jobs (id, case_id, status, started_at) values ($1, $2, $3, %s)`,
		started,
	)
	if _, err := q.Exec(ctx, sql, jobID, caseID, jobStatus); err != nil {
		t.Fatalf("seed job %s: %v", jobID, err)
	}
}

func TestLeaseJobs_ReclaimsExpiredLeases_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "casework-analyzer-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	for _, ddl := range schemaDDL {
		if _, err := st.PG.Exec(ctx, ddl); err != nil {
			t.Fatalf("schema: %v", err)
		}
	}

	const (
		queuedCase = "0f9e7a4e-1c7e-4a83-a2ff-6dcae4a8f6c1"
		queuedJob  = "11111111-1111-4111-8111-111111111111"
		staleCase  = "55c9c09f-3a9a-4d9f-9a4a-0b4d3c2c9f02"
		staleJob   = "22222222-2222-4222-8222-222222222222"
		freshCase  = "7cf0a1be-95b1-4f4d-b6cd-1f6d6c8b1a77"
		freshJob   = "33333333-3333-4333-8333-333333333333"
	)

	// one queued job, one running job past its lease, one freshly leased
	seedCaseWithJob(t, ctx, st.PG, queuedCase, queuedJob, "queued", "")
	seedCaseWithJob(t, ctx, st.PG, staleCase, staleJob, "running", "5 minutes")
	seedCaseWithJob(t, ctx, st.PG, freshCase, freshJob, "running", "1 second")

	r := NewPG().Bind(st.PG)

	jobs, err := r.LeaseJobs(ctx, 10, time.Minute)
	if err != nil {
		t.Fatalf("LeaseJobs: %v", err)
	}
	got := map[string]bool{}
	for _, j := range jobs {
		got[j.JobID] = true
		if j.ExtractedText != "wire transfer" {
			t.Fatalf("expected case text on job %s, got %q", j.JobID, j.ExtractedText)
		}
	}
	if len(jobs) != 2 || !got[queuedJob] || !got[staleJob] {
		t.Fatalf("expected queued+expired jobs, got %v", got)
	}
	if got[freshJob] {
		t.Fatalf("a live lease must not be taken over")
	}

	// everything is freshly leased now, a second pass finds nothing
	again, err := r.LeaseJobs(ctx, 10, time.Minute)
	if err != nil {
		t.Fatalf("LeaseJobs second pass: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected no leasable jobs, got %d", len(again))
	}

	// close out the reclaimed jobs and verify the case rows follow
	sig := map[string]any{"detector_breakdown": map[string]any{}}
	if err := r.CompleteJob(ctx, queuedJob, queuedCase, 12.5, sig); err != nil {
		t.Fatalf("CompleteJob: %v", err)
	}
	if err := r.FailJob(ctx, staleJob, staleCase, "worker lost"); err != nil {
		t.Fatalf("FailJob: %v", err)
	}

	var caseStatus, jobStatus string
	if err := st.PG.QueryRow(ctx,
		`select c.status, j.status from cases c join analysis_jobs j on j.case_id = c.id where c.id = $1`,
		queuedCase,
	).Scan(&caseStatus, &jobStatus); err != nil {
		t.Fatalf("read back completed: %v", err)
	}
	if caseStatus != "analyzed" || jobStatus != "done" {
		t.Fatalf("unexpected completed state: case=%s job=%s", caseStatus, jobStatus)
	}
	if err := st.PG.QueryRow(ctx,
		`select c.status, j.status from cases c join analysis_jobs j on j.case_id = c.id where c.id = $1`,
		staleCase,
	).Scan(&caseStatus, &jobStatus); err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if caseStatus != "failed" || jobStatus != "failed" {
		t.Fatalf("unexpected failed state: case=%s job=%s", caseStatus, jobStatus)
	}
}
