package module

import (
	"casework/internal/platform/config"
)

// Options controls the analyzer worker
type Options struct {
	Concurrency    int
	QueueTakeBatch int
}

// FromConfig reads with ANALYZER_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("ANALYZER_")
	return Options{
		Concurrency:    c.MayInt("WORKER_CONCURRENCY", 4),
		QueueTakeBatch: c.MayInt("QUEUE_TAKE_BATCH", 32),
	}
}
