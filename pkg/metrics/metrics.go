// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package metrics provides Prometheus instrumentation for passkey ceremony
// outcomes. It exposes attempt counters and duration histograms so operators
// can watch registration and login health across a deployment.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all passkey metrics
	Namespace = "passkey"

	// Label names
	LabelCeremony = "ceremony"
	LabelResult   = "result"

	// Ceremony names
	CeremonyRegistration   = "registration"
	CeremonyAuthentication = "authentication"

	// Result values
	ResultDone     = "done"
	ResultFailed   = "failed"
	ResultDeclined = "declined"
)

var (
	// CeremoniesTotal tracks ceremony attempts by ceremony and terminal result.
	CeremoniesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ceremonies_total",
			Help:      "Total number of ceremony attempts by ceremony and result",
		},
		[]string{LabelCeremony, LabelResult},
	)

	// CeremonyDuration tracks end-to-end ceremony duration in seconds.
	// Buckets cover the human-in-the-loop latencies of authenticator prompts.
	CeremonyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "ceremony_duration_seconds",
			Help:      "End-to-end ceremony duration in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{LabelCeremony},
	)

	// enabled tracks whether metrics collection is enabled
	enabled atomic.Bool
)

func init() {
	// Metrics are enabled by default
	enabled.Store(true)
}

// RecordCeremony records one ceremony attempt with its terminal result and
// end-to-end duration in seconds.
func RecordCeremony(ceremony, result string, duration float64) {
	if !enabled.Load() {
		return
	}
	CeremoniesTotal.WithLabelValues(ceremony, result).Inc()
	CeremonyDuration.WithLabelValues(ceremony).Observe(duration)
}

// Enable enables metrics collection.
func Enable() {
	enabled.Store(true)
}

// Disable disables metrics collection.
// Useful for testing or when metrics are not desired.
func Disable() {
	enabled.Store(false)
}

// IsEnabled returns whether metrics collection is currently enabled.
func IsEnabled() bool {
	return enabled.Load()
}
