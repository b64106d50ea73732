package fetcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess   = "success"
	outcomeRetryable = "retryable_failure"
	outcomeFatal     = "fatal_failure"
)

var attemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "site_api_fetch_attempts_total",
		Help: "HTTP fetch attempts against external providers, by outcome.",
	},
	[]string{"outcome"},
)
