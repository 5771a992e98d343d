// Package metrics holds the Prometheus instruments of the session client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Action outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Session tracks session actions and whether a user is signed in.
type Session struct {
	Actions        *prometheus.CounterVec
	ActionDuration *prometheus.HistogramVec
	SignedIn       prometheus.Gauge
}

// New registers the session instruments with reg.
func New(reg prometheus.Registerer) *Session {
	f := promauto.With(reg)
	return &Session{
		Actions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "authsession_actions_total",
			Help: "Session actions by action and outcome",
		}, []string{"action", "outcome"}),
		ActionDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "authsession_action_duration_seconds",
			Help:    "Duration of session actions, including simulated latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}, []string{"action"}),
		SignedIn: f.NewGauge(prometheus.GaugeOpts{
			Name: "authsession_signed_in",
			Help: "1 while a user is signed in",
		}),
	}
}

// ObserveAction records one finished action.
// Call with time.Now() taken at the start of the action.
func (m *Session) ObserveAction(action, outcome string, start time.Time) {
	m.Actions.WithLabelValues(action, outcome).Inc()
	m.ActionDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}

func (m *Session) SetSignedIn(signedIn bool) {
	if signedIn {
		m.SignedIn.Set(1)
		return
	}
	m.SignedIn.Set(0)
}
