package http

import (
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "casework/internal/platform/errors"
)

func writeError(t *testing.T, err error) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodGet, "/x", nil)
	Handle(func(r *stdhttp.Request) Response { return Error(err) })(rec, req)

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec, env
}

func TestErrorEnvelopeKeepsDomainMessage(t *testing.T) {
	rec, env := writeError(t, perr.NotFoundf("case %s not found", "c1"))

	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if env.Code != perr.ErrorCodeNotFound {
		t.Fatalf("unexpected code: %v", env.Code)
	}
	if env.Error != "case c1 not found" {
		t.Fatalf("domain message must survive, got %q", env.Error)
	}
}

func TestErrorEnvelopeMasksUnexpectedMessage(t *testing.T) {
	rec, env := writeError(t, errors.New("pq: connection refused to 10.0.0.3"))

	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if env.Code != perr.ErrorCodeUnknown {
		t.Fatalf("unexpected code: %v", env.Code)
	}
	if env.Error != stdhttp.StatusText(stdhttp.StatusInternalServerError) {
		t.Fatalf("internal detail leaked on the wire: %q", env.Error)
	}
}

func TestRespondErrorMasksUnexpectedMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodGet, "/x", nil)
	RespondError(rec, req, perr.DBf("tx deadlock on cases"))

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if env.Error != stdhttp.StatusText(stdhttp.StatusInternalServerError) {
		t.Fatalf("db detail leaked on the wire: %q", env.Error)
	}
}
