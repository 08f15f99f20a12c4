// Package repo provides postgres access for cases
package repo

import (
	"context"

	"casework/internal/modkit/repokit"
	"casework/internal/platform/store"
	"casework/internal/services/api/cases/domain"
)

// Repo is the minimal persistence surface for cases
type Repo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Case, error)
	GetByUser(ctx context.Context, userID, caseID string) (domain.Case, error)
	Insert(ctx context.Context, c domain.Case, extractedText string) error
	SetStatus(ctx context.Context, caseID, status string) error
	InsertJob(ctx context.Context, j domain.AnalysisJob) error
	JobByUser(ctx context.Context, userID, jobID string) (domain.AnalysisJob, error)
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

const caseCols = `id::text, user_id, filename, status, risk_score, signals, created_at, updated_at`

func scanCase(row repokit.Row) (domain.Case, error) {
	var c domain.Case
	err := row.Scan(
		&c.ID, &c.UserID, &c.Filename, &c.Status,
		&c.RiskScore, &c.Signals, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *queries) ListByUser(ctx context.Context, userID string) ([]domain.Case, error) {
	const sql = `
select ` + caseCols + `
from cases
where user_id = $1
order by created_at desc
`
	return store.Many(ctx, r.q, store.BinderFunc[domain.Case](scanCase), sql, userID)
}

func (r *queries) GetByUser(ctx context.Context, userID, caseID string) (domain.Case, error) {
	const sql = `
select ` + caseCols + `
from cases
where user_id = $1 and id = $2
`
	return store.One(ctx, r.q, store.BinderFunc[domain.Case](scanCase), sql, userID, caseID)
}

func (r *queries) Insert(ctx context.Context, c domain.Case, extractedText string) error {
	const sql = `
insert into cases (id, user_id, filename, status, signals, extracted_text, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, $7)
`
	_, err := r.q.Exec(ctx, sql,
		c.ID, c.UserID, c.Filename, string(c.Status), c.Signals, extractedText, c.CreatedAt,
	)
	return err
}

func (r *queries) SetStatus(ctx context.Context, caseID, status string) error {
	const sql = `
update cases set status = $2, updated_at = now()
where id = $1
`
	return store.ExecAffectingOne(ctx, r.q, sql, caseID, status)
}

func (r *queries) InsertJob(ctx context.Context, j domain.AnalysisJob) error {
	const sql = `
insert into analysis_jobs (id, case_id, status, created_at)
values ($1, $2, $3, $4)
`
	_, err := r.q.Exec(ctx, sql, j.ID, j.CaseID, j.Status, j.CreatedAt)
	return err
}

func (r *queries) JobByUser(ctx context.Context, userID, jobID string) (domain.AnalysisJob, error) {
	const sql = `
select j.id::text, j.case_id::text, j.status, coalesce(j.error, ''),
       j.created_at, j.started_at, j.finished_at
from analysis_jobs j
join cases c on c.id = j.case_id
where c.user_id = $1 and j.id = $2
`
	return store.One(ctx, r.q, store.BinderFunc[domain.AnalysisJob](scanJob), sql, userID, jobID)
}

func scanJob(row repokit.Row) (domain.AnalysisJob, error) {
	var j domain.AnalysisJob
	err := row.Scan(
		&j.ID, &j.CaseID, &j.Status, &j.Error,
		&j.CreatedAt, &j.StartedAt, &j.FinishedAt,
	)
	return j, err
}
