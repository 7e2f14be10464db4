package middlewarectx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/gymflowhq/gymflow/internal/metrics"
)

// MetricsMiddleware записывает счётчик и длительность каждого запроса.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		metrics.RecordHTTPRequest(r.Method, r.URL.Path,
			strconv.Itoa(ww.Status()), time.Since(start).Seconds())
	})
}
