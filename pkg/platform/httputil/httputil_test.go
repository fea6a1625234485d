package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "minehub/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error is opaque", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("pq: connection refused"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body Envelope
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body.Message != "internal server error" {
			t.Fatalf("expected opaque message, got %q", body.Message)
		}
	})

	t.Run("not found carries message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeNotFound, "There is no employee with a name matching Jane Doe."))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}

		var body Envelope
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body.Code != 404 {
			t.Fatalf("expected code 404, got %d", body.Code)
		}
		if body.Message == "" {
			t.Fatal("expected message to be preserved")
		}
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeConflict, "Department 'Operations' already exists."))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
	})

	t.Run("validation errors use the errors array", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.NewValidation(
			"The amount of leave days cannot be 0 (zero).",
			"LeaveType must be between 2 and 20 characters.",
		))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body ValidationEnvelope
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(body.Errors) != 2 {
			t.Fatalf("expected 2 errors, got %d", len(body.Errors))
		}
	})
}
