package middleware

import (
	"net/http"
	"strconv"
	"time"

	"medicine-tracker/internal/metrics"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Metrics registra contador/latencia/in-flight por request.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.HTTPRequestInFlight.Inc()
		defer metrics.HTTPRequestInFlight.Dec()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// path crudo, no el patrón de chi: el cardinality es chico acá
		metrics.HTTPRequestTotals.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}
