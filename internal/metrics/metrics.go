package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal counts search requests accepted by the session.
	SearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsight_searches_total",
		Help: "Number of search requests processed.",
	})

	// ProviderFailures counts per-provider fetch errors. Failures are
	// absorbed by the aggregator, so the counter is the main signal that a
	// provider is unhealthy.
	ProviderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsight_provider_failures_total",
		Help: "Number of failed provider fetches.",
	}, []string{"provider"})

	// SynthesisFallbacks counts reports built from the deterministic
	// fallback instead of model output.
	SynthesisFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsight_synthesis_fallbacks_total",
		Help: "Number of reports synthesized via the deterministic fallback.",
	})

	// CaptureFailures counts screenshot or content captures that errored.
	CaptureFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsight_capture_failures_total",
		Help: "Number of failed page captures.",
	})
)
