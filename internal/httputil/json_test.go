package httputil

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
)

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	body := io.NopCloser(strings.NewReader(`{"name":"ok","bogus":1}`))

	if err := DecodeJSON(body, &dst); !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error for unknown field, got %v", err)
	}
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	var dst struct{}
	if err := DecodeJSON(io.NopCloser(strings.NewReader("")), &dst); !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error for empty body, got %v", err)
	}
}

func TestWriteErrorUsesServiceErrorStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, apperrors.NotFound("habit"))

	if rec.Code != 404 {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] != "habit not found" {
		t.Fatalf("unexpected error message %v", resp["error"])
	}
	if resp["code"] != string(apperrors.CodeNotFound) {
		t.Fatalf("unexpected code %v", resp["code"])
	}
}

func TestWriteErrorMasksUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, io.ErrUnexpectedEOF)

	if rec.Code != 500 {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "unexpected EOF") {
		t.Fatalf("expected internal detail to be masked, got %s", rec.Body.String())
	}
}
