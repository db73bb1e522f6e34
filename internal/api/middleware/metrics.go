package middleware

import (
	"net/http"
	"sync/atomic"
)

// MetricsCollector counts requests by outcome. The counters are owned by the
// caller so the /metrics handler can read them without this package.
type MetricsCollector struct {
	requestCount *atomic.Int64
	clientErrors *atomic.Int64
	serverErrors *atomic.Int64
}

func NewMetricsCollector(requestCount, clientErrors, serverErrors *atomic.Int64) *MetricsCollector {
	return &MetricsCollector{
		requestCount: requestCount,
		clientErrors: clientErrors,
		serverErrors: serverErrors,
	}
}

func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mc.requestCount.Add(1)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		switch {
		case rw.statusCode >= 500:
			mc.serverErrors.Add(1)
		case rw.statusCode >= 400:
			mc.clientErrors.Add(1)
		}
	})
}
