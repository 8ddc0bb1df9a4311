package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// authzDecisions counts authorization outcomes per action so denial spikes
// are visible without log diving.
var authzDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "taskforge",
		Name:      "authz_decisions_total",
		Help:      "Authorization decisions by action and outcome.",
	},
	[]string{"action", "outcome"},
)
