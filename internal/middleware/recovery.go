package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/2beens/myniu/internal/telemetry/metrics"
	"github.com/2beens/myniu/pkg"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a panicking handler into a 500 JSON response carrying
// the request id, so the failure can be found in the logs.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				// let net/http abort the connection
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				requestID := RequestIDFromContext(req.Context())
				log.WithFields(log.Fields{
					"request_id": requestID,
					"method":     req.Method,
					"path":       req.URL.Path,
					"panic":      fmt.Sprint(recovered),
				}).Errorf("handler panic\n%s", debug.Stack())

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error", requestID)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
