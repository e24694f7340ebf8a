package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Logger returns a request logging middleware using zerolog. Server
// errors are logged at error level and rejected requests (including
// failed API-key checks) at warn, so scanning noise against the
// honeypot stands out from legitimate evaluator traffic.
func Logger(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()

				var evt *zerolog.Event
				switch {
				case status >= http.StatusInternalServerError:
					evt = logger.Error()
				case status >= http.StatusBadRequest:
					evt = logger.Warn()
				default:
					evt = logger.Info()
				}

				evt.
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", status).
					Int("bytes", ww.BytesWritten()).
					Dur("latency", time.Since(start)).
					Str("request_id", middleware.GetReqID(r.Context())).
					Str("client_ip", RealIP(r)).
					Bool("api_key_present", r.Header.Get(APIKeyHeader) != "").
					Msg("request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
