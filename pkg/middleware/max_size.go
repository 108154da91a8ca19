package middleware

import (
	"net/http"

	"laundry/pkg/logger"
)

const MsgRequestTooLarge = "Request body too large"

// MaxRequestSize rejects bodies that announce more than limit bytes and caps
// the rest, so a lying Content-Length still fails in the decoder.
func MaxRequestSize(limit int64, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				log.Warn("Request body too large",
					"request_id", RequestIDFrom(r.Context()),
					"content_length", r.ContentLength,
					"limit", limit,
					"path", r.URL.Path,
				)
				writeEnvelope(w, log, MsgRequestTooLarge, http.StatusRequestEntityTooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
