// Package repo provides postgres access for the analyzer worker
package repo

import (
	"context"
	"time"

	"casework/internal/modkit/repokit"
	"casework/internal/platform/store"
	"casework/internal/services/analyzer/domain"
)

// Repo is the analyzer persistence surface
type Repo interface {
	LeaseJobs(ctx context.Context, limit int, leaseFor time.Duration) ([]domain.Job, error)
	CompleteJob(ctx context.Context, jobID, caseID string, riskScore float64, signals map[string]any) error
	FailJob(ctx context.Context, jobID, caseID, msg string) error
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// LeaseJobs flips a batch of queued jobs to running and returns them
// skip locked keeps concurrent workers from fighting over the same rows.
// Running jobs whose lease window has elapsed are leased again, so work
// stranded by a crashed or shut down worker is picked back up
func (r *queries) LeaseJobs(ctx context.Context, limit int, leaseFor time.Duration) ([]domain.Job, error) {
	const sql = `
update analysis_jobs j
set status = 'running', started_at = now()
from (
	select id, case_id
	from analysis_jobs
	where status = 'queued'
	   or (status = 'running' and started_at < now() - $2::interval)
	order by created_at
	for update skip locked
	limit $1
) p
join cases c on c.id = p.case_id
where j.id = p.id
returning j.id::text, c.id::text, c.user_id, coalesce(c.extracted_text, '')
`
	rows, err := r.q.Query(ctx, sql, limit, leaseFor.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(&j.JobID, &j.CaseID, &j.UserID, &j.ExtractedText); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// CompleteJob records the scoring outcome and closes the job
func (r *queries) CompleteJob(
	ctx context.Context, jobID, caseID string, riskScore float64, signals map[string]any,
) error {
	const caseSQL = `
update cases
set status = 'analyzed', risk_score = $2, signals = $3, updated_at = now()
where id = $1
`
	if err := store.ExecAffectingOne(ctx, r.q, caseSQL, caseID, riskScore, signals); err != nil {
		return err
	}
	const jobSQL = `
update analysis_jobs
set status = 'done', finished_at = now()
where id = $1
`
	_, err := r.q.Exec(ctx, jobSQL, jobID)
	return err
}

// FailJob marks both the job and its case failed
func (r *queries) FailJob(ctx context.Context, jobID, caseID, msg string) error {
	const caseSQL = `
update cases
set status = 'failed', updated_at = now()
where id = $1
`
	if err := store.ExecAffectingOne(ctx, r.q, caseSQL, caseID); err != nil {
		return err
	}
	const jobSQL = `
update analysis_jobs
set status = 'failed', error = $2, finished_at = now()
where id = $1
`
	_, err := r.q.Exec(ctx, jobSQL, jobID, msg)
	return err
}
