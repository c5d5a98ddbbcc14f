package session

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeNoop    = "noop"
)

// Metrics collects session command outcomes
type Metrics struct {
	commands      *prometheus.CounterVec
	authenticated prometheus.Gauge
}

func (m *Metrics) observe(command, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, outcome).Inc()
}

func (m *Metrics) setAuthenticated(authenticated bool) {
	if m == nil {
		return
	}
	if authenticated {
		m.authenticated.Set(1)
		return
	}
	m.authenticated.Set(0)
}

// NewMetrics creates and registers session metrics
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	ret := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crmsession",
			Subsystem: "session",
			Name:      "commands_total",
			Help:      "Session commands by outcome.",
		}, []string{"command", "outcome"}),
		authenticated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crmsession",
			Subsystem: "session",
			Name:      "authenticated",
			Help:      "1 when the session holds a verified credential.",
		}),
	}
	for _, collector := range []prometheus.Collector{ret.commands, ret.authenticated} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
