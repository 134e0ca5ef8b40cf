package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "launchpath"

// Metrics agrupa los colectores Prometheus del servicio. Un *Metrics nil es valido y no registra nada.
type Metrics struct {
	checkIns        *prometheus.CounterVec
	rankings        prometheus.Counter
	commitments     *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registra los colectores en reg. Usar un registry nuevo por test evita registros duplicados.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkins_total",
			Help:      "Check-ins processed, by classified signal and chosen adjustment.",
		}, []string{"signal", "adjustment"}),
		rankings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rankings_total",
			Help:      "Path fit rankings computed.",
		}),
		commitments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commitments_total",
			Help:      "Users committing to a business path.",
		}, []string{"path"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	for _, c := range []prometheus.Collector{m.checkIns, m.rankings, m.commitments, m.requestDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew es New que entra en panico ante errores de registro.
func MustNew(reg prometheus.Registerer) *Metrics {
	m, err := New(reg)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Metrics) ObserveCheckIn(signal, adjustment string) {
	if m == nil {
		return
	}
	m.checkIns.WithLabelValues(signal, adjustment).Inc()
}

func (m *Metrics) ObserveRanking() {
	if m == nil {
		return
	}
	m.rankings.Inc()
}

func (m *Metrics) ObserveCommitment(pathID string) {
	if m == nil {
		return
	}
	m.commitments.WithLabelValues(pathID).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
