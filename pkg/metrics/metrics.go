package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec

	dbConnectionsOpen  *prometheus.GaugeVec
	dbConnectionsIdle  *prometheus.GaugeVec
	dbConnectionsInUse *prometheus.GaugeVec

	appointmentsCreated  *prometheus.CounterVec
	notificationsTotal   *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		dbQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		dbConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		dbConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		dbConnectionsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		appointmentsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Total number of appointments created",
			ConstLabels: constLabels,
		}, []string{"service_id"}),

		notificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_sent_total",
			Help:        "Total number of notification emails dispatched",
			ConstLabels: constLabels,
		}, []string{"type"}),

		notificationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notification_failures_total",
			Help:        "Total number of notification emails that failed to send",
			ConstLabels: constLabels,
		}, []string{"type"}),
	}
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает метрики запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats записывает состояние пула соединений
func (m *Metrics) SetDBPoolStats(dbName string, open, idle, inUse int) {
	m.dbConnectionsOpen.WithLabelValues(dbName).Set(float64(open))
	m.dbConnectionsIdle.WithLabelValues(dbName).Set(float64(idle))
	m.dbConnectionsInUse.WithLabelValues(dbName).Set(float64(inUse))
}

// IncAppointmentCreated инкрементирует счетчик созданных записей
func (m *Metrics) IncAppointmentCreated(serviceID string) {
	m.appointmentsCreated.WithLabelValues(serviceID).Inc()
}

// IncNotificationSent инкрементирует счетчик отправленных уведомлений
func (m *Metrics) IncNotificationSent(notificationType string) {
	m.notificationsTotal.WithLabelValues(notificationType).Inc()
}

// IncNotificationFailed инкрементирует счетчик неудачных уведомлений
func (m *Metrics) IncNotificationFailed(notificationType string) {
	m.notificationFailures.WithLabelValues(notificationType).Inc()
}
