package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса (HTTP + БД)
type Metrics struct {
	ServiceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBConnections     *prometheus.GaugeVec
	DBWaitCount       prometheus.Gauge
	DBWaitDurationSec prometheus.Gauge
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре
// (в тестах используется отдельный prometheus.NewRegistry)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		ServiceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Общее количество HTTP-запросов",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Длительность HTTP-запросов в секундах",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Длительность SQL-запросов в секундах",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Количество ошибок SQL-запросов",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Состояние пула соединений (open, in_use, idle)",
			ConstLabels: constLabels,
		}, []string{"state"}),

		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_wait_count",
			Help:        "Количество ожиданий свободного соединения",
			ConstLabels: constLabels,
		}),

		DBWaitDurationSec: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_wait_duration_seconds",
			Help:        "Суммарное время ожидания свободного соединения",
			ConstLabels: constLabels,
		}),
	}
}
