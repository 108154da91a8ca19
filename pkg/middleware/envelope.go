package middleware

import (
	"net/http"

	httputil "laundry/pkg/http"
	"laundry/pkg/logger"
)

// writeEnvelope answers with the same envelope the handlers use so that
// clients see one response shape, also for requests the chain rejects.
func writeEnvelope(w http.ResponseWriter, log *logger.Logger, message string, statusCode int) {
	if err := httputil.WriteResponse(w, httputil.BuildErrorResponse(message, statusCode)); err != nil && log != nil {
		log.Error("failed to write response", "operation", "WriteResponse", "error", err)
	}
}
