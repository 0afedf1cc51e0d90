package ports

// OrderMetrics contadores del flujo de pedidos. La implementación Prometheus vive en infrastructure/metrics.
type OrderMetrics interface {
	// ParseOutcome source: local | fallback | none.
	ParseOutcome(source string)
	// FallbackOutcome status: matched | empty | unavailable.
	FallbackOutcome(status string)
	// LineFulfilled ok=false cuando la línea falla (stock insuficiente u otro error).
	LineFulfilled(ok bool)
	// Settlement kind: full | partial.
	Settlement(kind string)
}

// NoopMetrics descarta todas las métricas.
type NoopMetrics struct{}

func (NoopMetrics) ParseOutcome(string)    {}
func (NoopMetrics) FallbackOutcome(string) {}
func (NoopMetrics) LineFulfilled(bool)     {}
func (NoopMetrics) Settlement(string)      {}
