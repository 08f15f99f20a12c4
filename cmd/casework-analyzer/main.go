package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"casework/internal/modkit"
	"casework/internal/modkit/module"
	"casework/internal/modkit/repokit"
	"casework/internal/platform/config"
	"casework/internal/platform/logger"
	"casework/internal/platform/store"

	analyzermod "casework/internal/services/analyzer/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "casework-analyzer",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled:    chCfg.MayBool("ENABLED", false),
			URL:        chCfg.MayString("DBURL", ""),
			ClientName: "casework",
			ClientTag:  "analyzer",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(context.Background(), st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		fConc  = flag.Int("concurrency", 4, "worker concurrency")
		fBatch = flag.Int("batch", 32, "DB lease batch size per poll")
	)
	flag.Parse()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	// export as env so the module can also read via FromConfig
	mustSetEnv("ANALYZER_WORKER_CONCURRENCY", fmt.Sprintf("%d", *fConc))
	mustSetEnv("ANALYZER_QUEUE_TAKE_BATCH", fmt.Sprintf("%d", *fBatch))

	mod := analyzermod.New(deps, analyzermod.Options{
		Concurrency:    *fConc,
		QueueTakeBatch: *fBatch,
	})
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[analyzermod.Ports](mod)

	if err := ports.Worker.Run(context.Background()); err != nil {
		l.Fatal().Err(err).Msg("analyzer worker failed")
	}
}
