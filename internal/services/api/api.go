// Package api provides the HTTP API for the application
package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"casework/internal/platform/config"
	perr "casework/internal/platform/errors"
	"casework/internal/platform/logger"
	phttp "casework/internal/platform/net/http"
	"casework/internal/platform/store"

	"casework/internal/modkit"
	"casework/internal/modkit/httpkit"
	"casework/internal/modkit/module"
	"casework/internal/modkit/swaggerkit"

	"casework/internal/core/analytics"
	"casework/internal/core/cache"

	analyticsmod "casework/internal/services/api/analytics/module"
	casesdomain "casework/internal/services/api/cases/domain"
	casesmod "casework/internal/services/api/cases/module"
	metamod "casework/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// one shared aggregation cache per process; cases invalidates it on
	// mutation, analytics reads through it
	recordCache := cache.New[[]analytics.CaseRecord]()

	// Construct cases first and extract its record source port
	cases := casesmod.New(
		deps,
		modkit.WithPorts(casesmod.Ports{Cache: recordCache}),
	)
	source := module.MustPortsOf[casesdomain.RecordSource](cases)

	analyticsM := analyticsmod.New(
		deps,
		modkit.WithPorts(analyticsmod.Ports{
			Cache:  recordCache,
			Source: source,
		}),
	)

	authed := httpkit.NewPortFunc(tokenParser(opt.Config))

	mods := []module.Module{
		metamod.New(deps),
		cases,
		analyticsM,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())
		}

		// meta stays open, everything else requires a bearer token
		mods[0].MountRoutes(api)
		httpkit.Protected(api, authed, func(pr httpkit.Router) {
			cases.MountRoutes(pr)
			analyticsM.MountRoutes(pr)
		})
	})
}

// tokenParser validates "user.signature" bearer tokens with an HMAC secret
// the signature is hex(hmac_sha256(secret, userID))
func tokenParser(cfg config.Conf) httpkit.TokenFunc {
	secret := cfg.MustString("AUTH_SECRET")
	return func(token string) (string, error) {
		i := strings.LastIndexByte(token, '.')
		if i <= 0 || i == len(token)-1 {
			return "", perr.Unauthorizedf("malformed token")
		}
		uid, sig := token[:i], token[i+1:]

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(uid))
		want := hex.EncodeToString(mac.Sum(nil))
		if !hmac.Equal([]byte(sig), []byte(want)) {
			return "", perr.Unauthorizedf("bad signature")
		}
		return uid, nil
	}
}
