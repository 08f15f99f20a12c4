// Package module wires cases into the API using modkit
package module

import (
	"net/http"

	modkit "casework/internal/modkit"
	"casework/internal/modkit/httpkit"
	str "casework/internal/platform/strings"
	casesdomain "casework/internal/services/api/cases/domain"
	caseshttp "casework/internal/services/api/cases/http"
	casesrepo "casework/internal/services/api/cases/repo"
	casessvc "casework/internal/services/api/cases/service"
)

// Module implements the cases module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc casessvc.Service
}

// Ports declares the injected dependencies for this module
type Ports struct {
	Cache casesdomain.Invalidator
}

// New constructs the cases module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("cases"),
		modkit.WithPrefix("/cases"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Cache == nil {
		panic("cases module requires a cache Invalidator port")
	}

	svc := casessvc.New(deps.PG, casesrepo.NewPG(), injected.Cache)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptCasesPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		caseshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
