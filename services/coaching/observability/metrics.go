// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the coaching
// service. Metrics are exposed on /metrics; all operations are
// thread-safe via Prometheus's internal locking.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace  = "ongoza"
	coachingSubsystem = "coaching"
)

// CoachingMetrics holds the Prometheus metrics for coaching sessions.
//
// All helper methods are nil-safe so handlers can run without metrics
// in tests.
type CoachingMetrics struct {
	// SessionsTotal counts coaching sessions by provider and status.
	// Labels: provider (deepseek, claude), status (success, error)
	SessionsTotal *prometheus.CounterVec

	// AdviceFallbacksTotal counts sessions where the model output could
	// not be parsed and the fixed fallback advice was served.
	AdviceFallbacksTotal prometheus.Counter

	// AggregationDefaultsTotal counts requests where a progress read
	// failed and the default learner state was used.
	AggregationDefaultsTotal prometheus.Counter

	// ProviderLatencySeconds measures the provider completion call.
	// Labels: provider
	ProviderLatencySeconds *prometheus.HistogramVec
}

// InitMetrics creates and registers all coaching metrics on the default
// registry. Call once at startup; a second call panics on duplicate
// registration.
func InitMetrics() *CoachingMetrics {
	return &CoachingMetrics{
		SessionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: coachingSubsystem,
				Name:      "sessions_total",
				Help:      "Total coaching sessions by provider and status",
			},
			[]string{"provider", "status"},
		),

		AdviceFallbacksTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: coachingSubsystem,
				Name:      "advice_fallbacks_total",
				Help:      "Sessions served the fixed fallback advice document",
			},
		),

		AggregationDefaultsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: coachingSubsystem,
				Name:      "aggregation_defaults_total",
				Help:      "Requests that fell back to the default learner state",
			},
		),

		ProviderLatencySeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: coachingSubsystem,
				Name:      "provider_latency_seconds",
				Help:      "Provider completion call latency in seconds",
				Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"provider"},
		),
	}
}

// RecordSession records a finished (or failed) coaching session.
func (m *CoachingMetrics) RecordSession(provider string, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	m.SessionsTotal.WithLabelValues(provider, status).Inc()
}

// RecordFallback records that the fallback advice document was served.
func (m *CoachingMetrics) RecordFallback() {
	if m == nil {
		return
	}
	m.AdviceFallbacksTotal.Inc()
}

// RecordAggregationDefault records an aggregation degradation.
func (m *CoachingMetrics) RecordAggregationDefault() {
	if m == nil {
		return
	}
	m.AggregationDefaultsTotal.Inc()
}

// RecordProviderLatency records the duration of one completion call.
func (m *CoachingMetrics) RecordProviderLatency(provider string, d time.Duration) {
	if m == nil {
		return
	}
	m.ProviderLatencySeconds.WithLabelValues(provider).Observe(d.Seconds())
}
