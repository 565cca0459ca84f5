// Package recovery converts handler panics into logged 500 responses.
package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	respond "github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/api/respond"
)

// Middleware keeps one panicking request from taking the server down. The
// stack is logged server-side; the client sees only the plain 500 envelope.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			log.Error().
				Interface("panic", rec).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Str("remote", r.RemoteAddr).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			respond.WriteError(w, http.StatusInternalServerError, "")
		}()
		next.ServeHTTP(w, r)
	})
}
