package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vibebase/vibebase/internal/server/ipgeo"
	"github.com/vibebase/vibebase/internal/server/reqctx"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs every request with method, path, status, latency, client
// IP and country when geolocation is configured. geo may be nil.
func RequestLogger(geo *ipgeo.Checker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ip := reqctx.GetClientIP(r)
			ctx := reqctx.WithClientIP(r.Context(), ip)
			country := ""
			if geo != nil {
				country = geo.CountryCode(ip)
				ctx = reqctx.WithCountryCode(ctx, country)
			}
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))
			slog.InfoContext(ctx, "HTTP",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"dur", time.Since(start).Round(time.Millisecond),
				"ip", ip,
				"country", country)
		})
	}
}
