package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware logs a panic with its stack and hands the response to onPanic.
func RecoveryMiddleware(logger *slog.Logger, onPanic http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"url", r.URL.String(),
						"stack", string(debug.Stack()))

					if onPanic == nil {
						http.Error(w, "Internal server error", http.StatusInternalServerError)
						return
					}
					onPanic(w, r)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
