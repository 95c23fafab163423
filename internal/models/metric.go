// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package models

// SeriesPoint is one point of a metric time series. Key is a calendar day
// in "YYYY-MM-DD" form (or a window-range string for whole-window points).
// Value is a number for most metrics and a "H:MM" duration string for
// duration metrics.
type SeriesPoint struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// MetricResult is the uniform KPI response envelope: the scalar value for
// the current window, the period-over-period trend as a signed percentage
// formatted to two decimals, and the daily chart series.
//
// ChartData never spans more than the current window's day count; metrics
// with an omit-zero chart policy may produce fewer points.
type MetricResult struct {
	Category  string        `json:"category"`
	Name      string        `json:"name"`
	Value     interface{}   `json:"value"`
	Trend     *string       `json:"trend"`
	ChartData []SeriesPoint `json:"chartData"`
}

// FunnelStage is one step of the conversion funnel. Counts are computed
// independently per stage; callers must not assume a monotonic decrease.
type FunnelStage struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// CategoryCount is one category of a label breakdown, carrying a single
// whole-window aggregate point rather than a daily series.
type CategoryCount struct {
	Category string        `json:"category"`
	Series   []SeriesPoint `json:"series"`
}

// MetricInfo describes one entry of the metric catalog for discovery.
type MetricInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Category     string `json:"category"`
	LookbackDays int    `json:"lookbackDays"`
}
