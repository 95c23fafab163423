// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/shopcierge/insights/internal/config"
	"github.com/shopcierge/insights/internal/engine"
	"github.com/shopcierge/insights/internal/models"
)

const testShop = "65a0000000000000000000aa"

// fakeEngine implements MetricEngine with function fields so each test
// controls exactly one behavior.
type fakeEngine struct {
	computeFn   func(ctx context.Context, req engine.Request) (*models.MetricResult, error)
	funnelFn    func(ctx context.Context, tenantID string, start, end *time.Time) ([]models.FunnelStage, error)
	breakdownFn func(ctx context.Context, tenantID, label string, start, end *time.Time) ([]models.CategoryCount, error)
}

func (f *fakeEngine) Compute(ctx context.Context, req engine.Request) (*models.MetricResult, error) {
	return f.computeFn(ctx, req)
}

func (f *fakeEngine) Funnel(ctx context.Context, tenantID string, start, end *time.Time) ([]models.FunnelStage, error) {
	return f.funnelFn(ctx, tenantID, start, end)
}

func (f *fakeEngine) Breakdown(ctx context.Context, tenantID, label string, start, end *time.Time) ([]models.CategoryCount, error) {
	return f.breakdownFn(ctx, tenantID, label, start, end)
}

func (f *fakeEngine) Definitions() []models.MetricInfo {
	return []models.MetricInfo{
		{Name: "total_chats", DisplayName: "Total Chats", Category: "Engagement", LookbackDays: 7},
		{Name: "total_revenue", DisplayName: "Total Revenue", Category: "Revenue", LookbackDays: 30},
	}
}

func testRouter(e MetricEngine, health HealthChecker) http.Handler {
	return NewRouter(NewHandler(e, health), config.APIConfig{
		CORSOrigins:     []string{"*"},
		RateLimitReqs:   0,
		RateLimitWindow: time.Minute,
		RequestTimeout:  10 * time.Second,
	})
}

func doRequest(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, models.APIResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

func TestListMetrics(t *testing.T) {
	h := testRouter(&fakeEngine{}, nil)

	rec, resp := doRequest(t, h, "/api/v1/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.Status != "success" {
		t.Errorf("status field = %q, want success", resp.Status)
	}

	infos, ok := resp.Data.([]interface{})
	if !ok || len(infos) != 2 {
		t.Fatalf("data = %#v, want 2 catalog entries", resp.Data)
	}
}

func TestGetMetricSuccess(t *testing.T) {
	trend := "100.00"
	var gotReq engine.Request
	e := &fakeEngine{
		computeFn: func(_ context.Context, req engine.Request) (*models.MetricResult, error) {
			gotReq = req
			return &models.MetricResult{
				Category: "Engagement",
				Name:     "Total Chats",
				Value:    float64(10),
				Trend:    &trend,
				ChartData: []models.SeriesPoint{
					{Key: "2024-01-01", Value: float64(10)},
				},
			}, nil
		},
	}
	h := testRouter(e, nil)

	path := fmt.Sprintf("/api/v1/metrics/total_chats?shop_id=%s&start_date=2024-01-01&end_date=2024-01-07", testShop)
	rec, resp := doRequest(t, h, path)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if gotReq.TenantID != testShop || gotReq.Metric != "total_chats" {
		t.Errorf("engine request = %+v", gotReq)
	}
	if gotReq.StartDate == nil || gotReq.StartDate.Format("2006-01-02") != "2024-01-01" {
		t.Errorf("start date = %v", gotReq.StartDate)
	}
	if gotReq.EndDate == nil || gotReq.EndDate.Format("2006-01-02") != "2024-01-07" {
		t.Errorf("end date = %v", gotReq.EndDate)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data = %#v", resp.Data)
	}
	if data["trend"] != "100.00" {
		t.Errorf("trend = %v, want 100.00", data["trend"])
	}
}

func TestGetMetricRequiresShopID(t *testing.T) {
	h := testRouter(&fakeEngine{}, nil)

	rec, resp := doRequest(t, h, "/api/v1/metrics/total_chats")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
	}
}

func TestGetMetricRejectsBadDates(t *testing.T) {
	h := testRouter(&fakeEngine{}, nil)

	tests := []string{
		"/api/v1/metrics/total_chats?shop_id=" + testShop + "&start_date=01/02/2024",
		"/api/v1/metrics/total_chats?shop_id=" + testShop + "&start_date=2024-01-07&end_date=2024-01-01",
	}
	for _, path := range tests {
		rec, resp := doRequest(t, h, path)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
		if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("%s: error = %+v", path, resp.Error)
		}
	}
}

func TestGetMetricUnknownMetric(t *testing.T) {
	e := &fakeEngine{
		computeFn: func(_ context.Context, req engine.Request) (*models.MetricResult, error) {
			return nil, fmt.Errorf("%w: %q", engine.ErrUnknownMetric, req.Metric)
		},
	}
	h := testRouter(e, nil)

	rec, resp := doRequest(t, h, "/api/v1/metrics/nope?shop_id="+testShop)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "UNKNOWN_METRIC" {
		t.Errorf("error = %+v, want UNKNOWN_METRIC", resp.Error)
	}
}

func TestGetMetricSourceError(t *testing.T) {
	e := &fakeEngine{
		computeFn: func(_ context.Context, _ engine.Request) (*models.MetricResult, error) {
			return nil, errors.New("query chats: connection reset")
		},
	}
	h := testRouter(e, nil)

	rec, resp := doRequest(t, h, "/api/v1/metrics/total_chats?shop_id="+testShop)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "SOURCE_ERROR" {
		t.Errorf("error = %+v, want SOURCE_ERROR", resp.Error)
	}
}

func TestFunnelEndpoint(t *testing.T) {
	e := &fakeEngine{
		funnelFn: func(_ context.Context, tenantID string, _, _ *time.Time) ([]models.FunnelStage, error) {
			if tenantID != testShop {
				t.Errorf("tenant = %q", tenantID)
			}
			return []models.FunnelStage{
				{Stage: "Chats Started", Count: 10},
				{Stage: "Visitor Engaged", Count: 6},
			}, nil
		},
	}
	h := testRouter(e, nil)

	rec, resp := doRequest(t, h, "/api/v1/funnel?shop_id="+testShop)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	stages, ok := resp.Data.([]interface{})
	if !ok || len(stages) != 2 {
		t.Fatalf("data = %#v, want 2 stages", resp.Data)
	}
}

func TestBreakdownUnknownLabel(t *testing.T) {
	e := &fakeEngine{
		breakdownFn: func(_ context.Context, _, label string, _, _ *time.Time) ([]models.CategoryCount, error) {
			return nil, fmt.Errorf("%w: %q", engine.ErrUnknownLabel, label)
		},
	}
	h := testRouter(e, nil)

	rec, resp := doRequest(t, h, "/api/v1/breakdowns/colors?shop_id="+testShop)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "UNKNOWN_LABEL" {
		t.Errorf("error = %+v, want UNKNOWN_LABEL", resp.Error)
	}
}

func TestHealthHealthy(t *testing.T) {
	h := testRouter(&fakeEngine{}, func(context.Context) error { return nil })

	rec, resp := doRequest(t, h, "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestHealthUnhealthy(t *testing.T) {
	h := testRouter(&fakeEngine{}, func(context.Context) error {
		return errors.New("server selection timeout")
	})

	rec, resp := doRequest(t, h, "/api/v1/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "SOURCE_ERROR" {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	h := testRouter(&fakeEngine{}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestPrometheusExposition(t *testing.T) {
	h := testRouter(&fakeEngine{}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty exposition body")
	}
}
