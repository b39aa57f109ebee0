package helpscan

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var (
	helpFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpscan_help_fetch_total",
			Help: "Total number of help text fetches",
		},
		[]string{"status"}, // success or error
	)

	helpFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "helpscan_help_fetch_duration_seconds",
			Help:    "Time taken by the help source to return a help text",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	commandResolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpscan_commands_resolved_total",
			Help: "Total number of command tree resolutions",
		},
		[]string{"status"}, // success or error
	)

	subcommandOmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "helpscan_subcommands_omitted_total",
			Help: "Subcommands dropped because they could not be resolved",
		},
	)
)
