package console

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes recorded for console actions.
const (
	outcomeOK        = "ok"
	outcomeInvalid   = "invalid"
	outcomeDuplicate = "duplicate"
	outcomeError     = "error"
)

var actionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "console",
	Name:      "actions_total",
	Help:      "Console form actions by action and outcome.",
}, []string{"action", "outcome"})

func countAction(action, outcome string) {
	actionsTotal.WithLabelValues(action, outcome).Inc()
}
