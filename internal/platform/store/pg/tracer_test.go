package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"select 1", "select 1"},
		{"  select   1  ", "select 1"},
		{"SELECT\t*\nFROM\r\tcases WHERE  a =  1", "SELECT * FROM cases WHERE a = 1"},
		{"", ""},
	}
	for i, c := range cases {
		if got := compact(c.in); got != c.want {
			t.Fatalf("case %d: compact(%q) = %q, want %q", i, c.in, got, c.want)
		}
	}
}

func TestTracer_LevelsAndFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf))

	type logLine struct {
		Level string `json:"level"`
		Slow  bool   `json:"slow"`
		SQL   string `json:"sql"`
		Args  int    `json:"args"`
		Error string `json:"error"`
	}
	decode := func() logLine {
		t.Helper()
		var ll logLine
		if err := json.Unmarshal(buf.Bytes(), &ll); err != nil {
			t.Fatalf("decode log line: %v (%s)", err, buf.String())
		}
		return ll
	}

	// fast statement logs at debug
	buf.Reset()
	tr.Trace(context.Background(), TraceData{
		SQL:      "select *\nfrom cases",
		Args:     []any{"u1"},
		Duration: 3 * time.Millisecond,
		SlowMs:   500,
	})
	ll := decode()
	if ll.Level != "debug" || ll.Slow {
		t.Fatalf("expected fast debug line, got %+v", ll)
	}
	if ll.SQL != "select * from cases" || ll.Args != 1 {
		t.Fatalf("unexpected fields: %+v", ll)
	}

	// slow statement logs at warn with slow=true
	buf.Reset()
	tr.Trace(context.Background(), TraceData{
		SQL:      "select 1",
		Duration: 800 * time.Millisecond,
		SlowMs:   500,
	})
	ll = decode()
	if ll.Level != "warn" || !ll.Slow {
		t.Fatalf("expected slow warn line, got %+v", ll)
	}

	// errors log at error level regardless of duration
	buf.Reset()
	tr.Trace(context.Background(), TraceData{
		SQL:      "select 1",
		Duration: time.Millisecond,
		SlowMs:   500,
		Err:      errors.New("boom"),
	})
	ll = decode()
	if ll.Level != "error" || ll.Error != "boom" {
		t.Fatalf("expected error line, got %+v", ll)
	}
}
