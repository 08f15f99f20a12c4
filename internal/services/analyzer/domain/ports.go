// Package domain defines the analyzer worker contract
package domain

import "context"

// Job is one leased analysis unit with everything scoring needs
type Job struct {
	JobID         string
	CaseID        string
	UserID        string
	ExtractedText string
}

// WorkerPort runs the analyzer loop until the context ends
type WorkerPort interface {
	Run(ctx context.Context) error
}
