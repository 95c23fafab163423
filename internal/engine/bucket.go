// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package engine

import (
	"github.com/shopcierge/insights/internal/models"
)

// FillPolicy controls how days without data appear in a chart series.
type FillPolicy int

const (
	// FillZeros emits a zero-valued point for every day without data.
	FillZeros FillPolicy = iota

	// OmitZeros drops zero-valued days from the chart entirely. The days
	// still count toward the scalar total (as zero); only the series is
	// thinned.
	OmitZeros
)

// ValueFormatter converts a raw per-day float into the value carried by a
// series point: a rounded number for most metrics, a "H:MM" string for
// duration metrics.
type ValueFormatter func(v float64) interface{}

// Bucketize expands per-day values into an ordered daily series covering
// every calendar day of the window, applying the fill policy and formatter.
// Keys are unique and ascending; empty windows yield an empty series.
func Bucketize(w Window, byDay map[string]float64, fill FillPolicy, format ValueFormatter) []models.SeriesPoint {
	days := w.Days()
	series := make([]models.SeriesPoint, 0, len(days))
	for _, day := range days {
		v := byDay[day]
		if fill == OmitZeros && v == 0 {
			continue
		}
		series = append(series, models.SeriesPoint{Key: day, Value: format(v)})
	}
	return series
}
