// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

// Package api provides the HTTP surface of the Insights server: the
// KPI metric endpoints, the conversion funnel, topic breakdowns, and
// health checks, all wrapped in the standard APIResponse envelope.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shopcierge/insights/internal/engine"
	"github.com/shopcierge/insights/internal/logging"
	"github.com/shopcierge/insights/internal/models"
	"github.com/shopcierge/insights/internal/obs"
)

// MetricEngine is the engine surface the handlers depend on. The
// concrete *engine.Engine satisfies it; tests substitute fakes.
type MetricEngine interface {
	Compute(ctx context.Context, req engine.Request) (*models.MetricResult, error)
	Funnel(ctx context.Context, tenantID string, startDate, endDate *time.Time) ([]models.FunnelStage, error)
	Breakdown(ctx context.Context, tenantID, label string, startDate, endDate *time.Time) ([]models.CategoryCount, error)
	Definitions() []models.MetricInfo
}

// HealthChecker reports backing-store health for the readiness probe.
type HealthChecker func(ctx context.Context) error

// Handler serves the Insights API endpoints.
type Handler struct {
	engine MetricEngine
	health HealthChecker
}

// NewHandler creates the API handler. healthCheck may be nil, in which
// case readiness always reports healthy.
func NewHandler(metricEngine MetricEngine, healthCheck HealthChecker) *Handler {
	return &Handler{engine: metricEngine, health: healthCheck}
}

// ListMetrics returns the metric catalog.
func (h *Handler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, h.engine.Definitions(), start)
}

// GetMetric computes a single metric for the tenant's window.
func (h *Handler) GetMetric(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")

	q := parseWindowQuery(r)
	if apiErr := validateRequest(&q); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	startDate, endDate, err := q.dates()
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	ctx := logging.ContextWithTenantID(r.Context(), q.ShopID)
	result, err := h.engine.Compute(ctx, engine.Request{
		TenantID:  q.ShopID,
		Metric:    name,
		StartDate: startDate,
		EndDate:   endDate,
	})
	obs.ObserveMetricCompute(name, time.Since(start), err)
	if err != nil {
		h.respondEngineError(w, ctx, err)
		return
	}

	respondSuccess(w, result, start)
}

// Funnel returns the conversion funnel stage counts.
func (h *Handler) Funnel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q := parseWindowQuery(r)
	if apiErr := validateRequest(&q); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	startDate, endDate, err := q.dates()
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	ctx := logging.ContextWithTenantID(r.Context(), q.ShopID)
	stages, err := h.engine.Funnel(ctx, q.ShopID, startDate, endDate)
	if err != nil {
		h.respondEngineError(w, ctx, err)
		return
	}

	respondSuccess(w, stages, start)
}

// Breakdown returns chat counts grouped by a classification label.
func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	label := chi.URLParam(r, "label")

	q := parseWindowQuery(r)
	if apiErr := validateRequest(&q); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	startDate, endDate, err := q.dates()
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	ctx := logging.ContextWithTenantID(r.Context(), q.ShopID)
	breakdown, err := h.engine.Breakdown(ctx, q.ShopID, label, startDate, endDate)
	if err != nil {
		h.respondEngineError(w, ctx, err)
		return
	}

	respondSuccess(w, breakdown, start)
}

// Health reports liveness and, when a health check is wired, store
// readiness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := map[string]string{"status": "healthy"}
	if h.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := h.health(ctx); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
			respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
				Status: "error",
				Data:   map[string]string{"status": "unhealthy"},
				Metadata: models.Metadata{
					Timestamp: time.Now(),
				},
				Error: &models.APIError{
					Code:    "SOURCE_ERROR",
					Message: "record store unavailable",
				},
			})
			return
		}
	}

	respondSuccess(w, status, start)
}

// respondEngineError maps engine errors to HTTP responses.
func (h *Handler) respondEngineError(w http.ResponseWriter, ctx context.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrUnknownMetric):
		respondError(w, http.StatusNotFound, "UNKNOWN_METRIC", err.Error(), nil)
	case errors.Is(err, engine.ErrUnknownLabel):
		respondError(w, http.StatusNotFound, "UNKNOWN_LABEL", err.Error(), nil)
	case errors.Is(err, engine.ErrMissingTenant):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	default:
		logging.Ctx(ctx).Error().Err(err).Msg("metric computation failed")
		respondError(w, http.StatusBadGateway, "SOURCE_ERROR", "failed to query record store", err)
	}
}
