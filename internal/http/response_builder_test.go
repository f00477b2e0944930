package http

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONResponseBuilder_Defaults(t *testing.T) {
	rec := httptest.NewRecorder()
	NewJSONResponse().Body(map[string]int{"id": 1}).Write(rec)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != "{\"id\":1}\n" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestJSONResponseBuilder_Headers(t *testing.T) {
	rec := httptest.NewRecorder()
	NewJSONResponse().Status(http.StatusAccepted).Header("X-Custom", "yes").Write(rec)

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Custom") != "yes" {
		t.Error("custom header missing")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		builder *JSONResponseBuilder
		status  int
		message string
	}{
		{"bad request", BadRequestError("bad"), http.StatusBadRequest, "bad"},
		{"not found", NotFoundError("category not found: Pets"), http.StatusNotFound, "category not found: Pets"},
		{"internal", InternalServerError("boom"), http.StatusInternalServerError, "boom"},
		{"unavailable", ServiceUnavailableError("down"), http.StatusServiceUnavailable, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.builder.Write(rec)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.message {
				t.Errorf("error = %q, want %q", body.Error, tt.message)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Message("Deleted successfully").Write(rec)

	if rec.Body.String() != "{\"message\":\"Deleted successfully\"}\n" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestJSONResponseBuilder_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(math.Inf(1)).Write(rec)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
