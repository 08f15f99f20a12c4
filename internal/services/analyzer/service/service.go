// Package service implements the analyzer worker
package service

import (
	"context"

	"casework/internal/core/detector"
	"casework/internal/modkit"
	"casework/internal/modkit/repokit"
	"casework/internal/platform/store"

	dom "casework/internal/services/analyzer/domain"
	arepo "casework/internal/services/analyzer/repo"
)

// Service is the worker port
type Service interface {
	dom.WorkerPort
}

// Config controls the worker
type Config struct {
	Concurrency    int
	QueueTakeBatch int
}

// Svc implements the analyzer worker
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[arepo.Repo]
	repo   arepo.Repo

	det  *detector.Set
	sink store.Clickhouse // optional event sink, may be nil
	cfg  Config
}

// New constructs the service
func New(deps modkit.Deps, cfg Config) *Svc {
	b := arepo.NewPG()
	// a wedged scoring write should fail the job, not stall the whole worker
	db := repokit.WithBeginHooks(deps.PG, func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, "set local statement_timeout = '5s'")
		return err
	})
	return &Svc{
		db:     db,
		binder: b,
		repo:   b.Bind(deps.PG),
		det:    detector.Default(),
		sink:   deps.CH,
		cfg:    cfg,
	}
}
