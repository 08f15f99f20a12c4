package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "casework/internal/platform/errors"
)

type uploadReq struct {
	Filename string `json:"filename" validate:"required,min=1,max=255"`
	Note     string `json:"note"     validate:"omitempty,max=1000"`
}

func TestParseJSON_ValidBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/cases", strings.NewReader(`{"filename":"contract.pdf"}`))

	got, err := ParseJSON[uploadReq](r)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.Filename != "contract.pdf" {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestParseJSON_ValidationFailureUsesJSONNames(t *testing.T) {
	r := httptest.NewRequest("POST", "/cases", strings.NewReader(`{"note":"x"}`))

	_, err := ParseJSON[uploadReq](r)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation code, got %v", err)
	}
	// message should reference the json field name, not the Go field name
	if !strings.Contains(err.Error(), "filename") {
		t.Fatalf("expected message to name the json field, got %q", err.Error())
	}
}

func TestParseJSON_UnknownFieldRejected(t *testing.T) {
	r := httptest.NewRequest("POST", "/cases", strings.NewReader(`{"filename":"a","bogus":1}`))

	_, err := ParseJSON[uploadReq](r)
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/cases", strings.NewReader(`{"filename":`))

	_, err := ParseJSON[uploadReq](r)
	if err == nil {
		t.Fatalf("expected decode error")
	}
}
