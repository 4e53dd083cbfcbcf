package moderation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var warningsIssued = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pancywarden_warnings_issued_total",
	Help: "Number of warnings recorded in the ledger",
})

var escalationsTriggered = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pancywarden_escalations_total",
	Help: "Number of escalations fired by guild policies",
}, []string{"action"})

var platformActionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pancywarden_platform_action_failures_total",
	Help: "Number of moderation actions rejected by the platform",
}, []string{"action"})

var persistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pancywarden_persistence_failures_total",
	Help: "Number of mutations that could not be persisted",
}, []string{"store"})
