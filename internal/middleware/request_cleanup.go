package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// maxDrainBytes bounds how much of an unread request body is discarded
// before the connection is given back for reuse.
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest discards what the handler left unread of the request
// body and closes it, so keep-alive connections can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			if n, err := io.CopyN(io.Discard, r.Body, maxDrainBytes); err == nil {
				log.Tracef("request body of %s not fully drained after %d bytes", r.URL.Path, n)
			}
			_ = r.Body.Close()
		})
	}
}
