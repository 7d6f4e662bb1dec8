package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Donation flow
	IntentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_intents_created_total",
			Help: "Payment intents created at the gateway",
		},
	)
	DonationsSucceeded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "donations_succeeded_total",
			Help: "Donations verified and written to the ledger",
		},
	)
	DonationsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "donations_failed_total",
			Help: "Confirmation attempts that failed verification",
		},
	)

	// Moderation
	ModerationActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "message_moderation_actions_total",
			Help: "Donor message moderation actions",
		},
		[]string{"action"}, // approve|reject
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(IntentsCreated)
	prometheus.MustRegister(DonationsSucceeded)
	prometheus.MustRegister(DonationsFailed)
	prometheus.MustRegister(ModerationActions)
	prometheus.MustRegister(WorkerQueueDepth)
}
