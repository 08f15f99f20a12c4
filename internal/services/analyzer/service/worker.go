package service

import (
	"context"
	"time"

	"casework/internal/platform/logger"
)

// jobLeaseFor bounds how long a leased job may sit in running before
// another worker may take it over
const jobLeaseFor = 60 * time.Second

// Run starts the worker loop to process queued analysis jobs
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("analyzer-worker")
	sem := make(chan struct{}, max(1, s.cfg.Concurrency))
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// lease a small batch; process concurrently with a simple semaphore
			jobs, err := s.repo.LeaseJobs(ctx, s.cfg.QueueTakeBatch, jobLeaseFor)
			if err != nil {
				log.Error().Err(err).Msg("lease jobs failed")
				continue
			}
			for i := range jobs {
				sem <- struct{}{}
				j := jobs[i]
				go func() {
					defer func() { <-sem }()
					if err := s.handleJob(ctx, j); err != nil {
						log.Warn().Err(err).Str("job_id", j.JobID).Msg("job failed")
					}
				}()
			}
		}
	}
}
