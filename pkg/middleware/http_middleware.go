package middleware

import (
	"context"
	"net/http"
	"time"

	"sellsheet_api/metrics"
)

// responseWriter оборачивает http.ResponseWriter для сохранения кода ответа.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// PrometheusMiddleware records inbound requests under the given service label.
func PrometheusMiddleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		metrics.RecordRequest(service, r.URL.Path, rw.status, time.Since(start))
	})
}

type operationKey struct{}

// WithOperation names the remote call for metrics, e.g. the BaseLinker method,
// since several operations may share one URL.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey{}, operation)
}

func operation(r *http.Request) string {
	if op, ok := r.Context().Value(operationKey{}).(string); ok && op != "" {
		return op
	}
	return r.URL.Path
}

// MetricsTransport records outbound requests. Transport errors count as status 0.
type MetricsTransport struct {
	Service string
	Next    http.RoundTripper
}

func NewMetricsTransport(service string, next http.RoundTripper) *MetricsTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &MetricsTransport{Service: service, Next: next}
}

func (t *MetricsTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Next.RoundTrip(r)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	metrics.RecordRequest(t.Service, operation(r), status, time.Since(start))
	return resp, err
}
