package recovery

import (
	"fmt"
	"log/slog"
	"net/http"
)

// NewRecoveryMiddleware converts panics during request handling into the
// same JSON error shape the rest of the API uses.
func NewRecoveryMiddleware(writeError func(w http.ResponseWriter, err error)) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					slog.Error("Panic during request handling",
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
					)
					writeError(w, fmt.Errorf("%v", rec))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
