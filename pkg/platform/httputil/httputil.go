// Package httputil centralizes JSON response writing and domain error
// translation so every handler produces the same envelopes.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "minehub/pkg/domain-errors"
)

// Envelope is the JSON shape for single-message outcomes.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ValidationEnvelope carries one entry per failed rule.
type ValidationEnvelope struct {
	Code   int      `json:"code"`
	Errors []string `json:"errors"`
}

// MessageResponse is the success envelope for mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a 200 success envelope with a confirmation message.
func WriteMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, MessageResponse{Message: message})
}

// WriteError translates a domain error into a status code and envelope.
// Invalid-argument errors use the {code, errors} shape; everything else uses
// {code, message}. Non-domain errors surface as an opaque 500.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if dErrors.HasCode(err, dErrors.CodeInvalidArgument) {
		WriteJSON(w, status, ValidationEnvelope{Code: status, Errors: dErrors.MessagesOf(err)})
		return
	}
	msg := "internal server error"
	if status != http.StatusInternalServerError {
		msgs := dErrors.MessagesOf(err)
		if len(msgs) > 0 {
			msg = msgs[0]
		}
	}
	WriteJSON(w, status, Envelope{Code: status, Message: msg})
}

// StatusOf maps a domain error code to an HTTP status.
func StatusOf(err error) int {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Decode reads a JSON request body into T, reporting malformed bodies as
// invalid-argument so the caller can hand them straight to WriteError.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, dErrors.Wrap(err, dErrors.CodeInvalidArgument, "request body is not valid JSON")
	}
	return v, nil
}
