// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopcierge/insights/internal/config"
	"github.com/shopcierge/insights/internal/middleware"
)

// NewRouter assembles the HTTP routing tree: global middleware, the
// versioned API routes, and the Prometheus exposition endpoint.
func NewRouter(handler *Handler, cfg config.APIConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}
		r.Use(middleware.Prometheus)

		r.Get("/health", handler.Health)
		r.Get("/metrics", handler.ListMetrics)
		r.Get("/metrics/{name}", handler.GetMetric)
		r.Get("/funnel", handler.Funnel)
		r.Get("/breakdowns/{label}", handler.Breakdown)
	})

	// Prometheus exposition, outside the rate-limited API tree so
	// scrapers are never throttled.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
