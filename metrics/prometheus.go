package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	remoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sellsheet_remote_requests_total",
			Help: "Total number of requests to remote APIs.",
		},
		[]string{"service", "method", "status"},
	)
	remoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sellsheet_remote_request_duration_seconds",
			Help:    "Histogram of remote API request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"service", "method", "status"},
	)
	translatedFeatures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sellsheet_translated_features_total",
			Help: "Features translated, by resolver tier.",
		},
		[]string{"tier"},
	)
	aiFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sellsheet_ai_failures_total",
			Help: "Recovered AI translation failures.",
		},
		[]string{"operation"},
	)
	catalogCreations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sellsheet_catalog_creations_total",
			Help: "Catalog entries created on a miss.",
		},
		[]string{"catalog"},
	)
	assembledProducts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sellsheet_assembled_products_total",
			Help: "Product assembly outcomes.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(remoteRequestsTotal, remoteRequestDuration)
	prometheus.MustRegister(translatedFeatures, aiFailures, catalogCreations, assembledProducts)
}

// RecordRequest записывает метрики для запроса к внешнему API.
func RecordRequest(service, method string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	remoteRequestsTotal.WithLabelValues(service, method, status).Inc()
	remoteRequestDuration.WithLabelValues(service, method, status).Observe(duration.Seconds())
}

func RecordTranslation(tier string, count int) {
	if count <= 0 {
		return
	}
	translatedFeatures.WithLabelValues(tier).Add(float64(count))
}

func RecordAIFailure(operation string) {
	aiFailures.WithLabelValues(operation).Inc()
}

func RecordCatalogCreation(catalog string) {
	catalogCreations.WithLabelValues(catalog).Inc()
}

func RecordAssembly(ok bool) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	assembledProducts.WithLabelValues(status).Inc()
}

// classifyStatus классифицирует HTTP-статус код в строку.
func classifyStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// MetricsHandler возвращает HTTP-обработчик для экспорта метрик Prometheus.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
