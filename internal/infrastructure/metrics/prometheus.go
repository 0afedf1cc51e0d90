// Package metrics exporta contadores Prometheus del flujo de pedidos y de la API HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Kirana-api/internal/application/ports"
)

var _ ports.OrderMetrics = (*Prometheus)(nil)

const namespace = "kirana"

// Prometheus implementa ports.OrderMetrics con un registro propio (no el global).
type Prometheus struct {
	registry *prometheus.Registry

	parseTotal      *prometheus.CounterVec
	fallbackTotal   *prometheus.CounterVec
	linesTotal      *prometheus.CounterVec
	settlementTotal *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewPrometheus registra los colectores de la aplicación y los del runtime de Go.
func NewPrometheus() *Prometheus {
	p := &Prometheus{registry: prometheus.NewRegistry()}

	p.parseTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "order",
		Name:      "parse_total",
		Help:      "Pedidos interpretados por origen (local, fallback, none).",
	}, []string{"source"})

	p.fallbackTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "order",
		Name:      "fallback_total",
		Help:      "Resultados del intérprete de respaldo.",
	}, []string{"status"})

	p.linesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "order",
		Name:      "lines_total",
		Help:      "Líneas de pedido despachadas o fallidas.",
	}, []string{"result"})

	p.settlementTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "settlements_total",
		Help:      "Abonos de fiado por tipo (full, partial).",
	}, []string{"kind"})

	p.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duración de las peticiones HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	p.registry.MustRegister(
		p.parseTotal,
		p.fallbackTotal,
		p.linesTotal,
		p.settlementTotal,
		p.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) ParseOutcome(source string) { p.parseTotal.WithLabelValues(source).Inc() }

func (p *Prometheus) FallbackOutcome(status string) { p.fallbackTotal.WithLabelValues(status).Inc() }

func (p *Prometheus) LineFulfilled(ok bool) {
	result := "failed"
	if ok {
		result = "sold"
	}
	p.linesTotal.WithLabelValues(result).Inc()
}

func (p *Prometheus) Settlement(kind string) { p.settlementTotal.WithLabelValues(kind).Inc() }

// ObserveHTTP registra la duración de una petición. route es la plantilla (/api/dues/:customer), no la URL.
func (p *Prometheus) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	p.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato Prometheus.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry registro interno (tests).
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }
