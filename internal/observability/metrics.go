package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Domain counters. Label values are closed enums, so cardinality is fixed.
var (
	// CheckInsSubmitted counts check-ins accepted by the submission use case.
	CheckInsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "radar_checkins_submitted_total",
		Help: "Total number of daily check-ins submitted.",
	})

	// PrioritiesCreated counts priority records created, singly or in bulk.
	PrioritiesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "radar_priorities_created_total",
		Help: "Total number of priorities created.",
	})

	// PriorityStatusChanges counts transitions by the status entered.
	PriorityStatusChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "radar_priority_status_changes_total",
		Help: "Total number of priority status changes by resulting status.",
	}, []string{"status"})

	// FOIARequests counts information requests filed by urgency tier.
	FOIARequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "radar_foia_requests_total",
		Help: "Total number of public-records requests filed by urgency.",
	}, []string{"urgency"})
)

func init() {
	prometheus.MustRegister(CheckInsSubmitted, PrioritiesCreated, PriorityStatusChanges, FOIARequests)
}
