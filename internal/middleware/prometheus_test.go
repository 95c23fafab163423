// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/shopcierge/insights/internal/obs"
)

func TestPrometheusRecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Prometheus)
	r.Get("/api/v1/metrics/{name}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	before := testutil.ToFloat64(
		obs.HTTPRequestsTotal.WithLabelValues("/api/v1/metrics/{name}", "GET", "200"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/metrics/total_chats", nil))

	after := testutil.ToFloat64(
		obs.HTTPRequestsTotal.WithLabelValues("/api/v1/metrics/{name}", "GET", "200"))
	if after != before+1 {
		t.Errorf("route pattern counter = %v, want %v", after, before+1)
	}
}

func TestPrometheusCapturesStatusCode(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Prometheus)
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	before := testutil.ToFloat64(obs.HTTPRequestsTotal.WithLabelValues("/boom", "GET", "500"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	after := testutil.ToFloat64(obs.HTTPRequestsTotal.WithLabelValues("/boom", "GET", "500"))
	if after != before+1 {
		t.Errorf("status 500 counter = %v, want %v", after, before+1)
	}
}
