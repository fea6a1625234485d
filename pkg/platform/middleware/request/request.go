// Package request provides middleware that stamps each request with an ID and
// arrival time. Handlers and services read both through pkg/requestcontext.
package request

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"minehub/pkg/requestcontext"
)

// HeaderRequestID is echoed back to the client for correlation.
const HeaderRequestID = "X-Request-Id"

// ID assigns a UUID to each request unless the client supplied one, and pins
// the request arrival time so every read in the request sees the same clock.
func ID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), id)
		ctx = requestcontext.WithTime(ctx, time.Now())

		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
