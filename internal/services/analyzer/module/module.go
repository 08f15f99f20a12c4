// Package module wires the analyzer worker service and exposes its ports
package module

import (
	"casework/internal/modkit"
	"casework/internal/modkit/httpkit"
	"casework/internal/services/analyzer/service"
)

// Module defines the analyzer worker module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the analyzer worker module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.Concurrency != 0 {
		opts.Concurrency = overrides.Concurrency
	}
	if overrides.QueueTakeBatch != 0 {
		opts.QueueTakeBatch = overrides.QueueTakeBatch
	}

	svc := service.New(deps, service.Config{
		Concurrency:    opts.Concurrency,
		QueueTakeBatch: opts.QueueTakeBatch,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Worker: svc}
	return m
}

// Ports returns the module ports (Worker)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "analyzer" }

// Prefix returns the module config prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
