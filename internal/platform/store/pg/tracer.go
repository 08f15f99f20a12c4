package pg

import (
	"context"
	"strings"

	"casework/internal/platform/logger"
)

// zerologTracer logs finished statements at debug, slow ones at warn
type zerologTracer struct {
	log logger.Logger
}

// Tracer builds a QueryTracer backed by the given logger
func Tracer(log logger.Logger) QueryTracer {
	return &zerologTracer{log: log}
}

// Trace implements QueryTracer
func (t *zerologTracer) Trace(ctx context.Context, td TraceData) {
	ev := t.log.Debug()
	slow := td.SlowMs > 0 && td.Duration.Milliseconds() >= int64(td.SlowMs)
	if slow {
		ev = t.log.Warn().Bool("slow", true)
	}
	if td.Err != nil {
		ev = t.log.Error().Err(td.Err)
	}

	ev.Str("sql", compact(td.SQL)).
		Int("args", len(td.Args)).
		Dur("duration", td.Duration).
		Msg("pg query")
}

// compact collapses whitespace so multi line SQL logs on one line
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
