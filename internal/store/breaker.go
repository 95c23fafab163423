// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package store

import (
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/shopcierge/insights/internal/config"
	"github.com/shopcierge/insights/internal/logging"
	"github.com/shopcierge/insights/internal/obs"
)

// newBreaker builds the circuit breaker protecting one collection's
// queries. The breaker opens after the configured consecutive failure
// count and transitions are surfaced in both logs and metrics.
func newBreaker[T any](collection string, cfg config.MongoConfig) *gobreaker.CircuitBreaker[T] {
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:    collection,
		Timeout: cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			obs.RecordBreakerStateChange(name, to.String())
			logging.Warn().
				Str("collection", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("source circuit breaker state change")
		},
	})
}
