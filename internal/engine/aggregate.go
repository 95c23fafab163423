// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package engine

import (
	"fmt"
	"math"
	"time"
)

// Sample is one extracted observation: an instant, a numeric value, and an
// optional distinguishing key for distinct-count aggregation. Extractors
// emit samples; reducers fold them.
type Sample struct {
	At    time.Time
	Value float64
	Key   string
}

// reduction is the outcome of folding one window's samples: the scalar
// total plus the per-day values the bucketizer expands into a series.
type reduction struct {
	total float64
	byDay map[string]float64
}

func dayKey(t time.Time) string { return t.UTC().Format(DayKeyFormat) }

// reduceSum folds samples into per-day sums and an overall sum. Count
// metrics are sums of unit-valued samples, so this reducer serves both
// shapes and guarantees sum(series) == total.
func reduceSum(samples []Sample, w Window) reduction {
	r := reduction{byDay: make(map[string]float64)}
	for _, s := range samples {
		if !w.Contains(s.At) {
			continue
		}
		r.byDay[dayKey(s.At)] += s.Value
		r.total += s.Value
	}
	return r
}

// reduceDistinct counts distinct sample keys overall and per day. Samples
// with an empty key are skipped. A key seen on two days counts once in the
// total but once per day in the series, so the series may sum to more than
// the total.
func reduceDistinct(samples []Sample, w Window) reduction {
	r := reduction{byDay: make(map[string]float64)}
	seen := make(map[string]struct{})
	seenByDay := make(map[string]map[string]struct{})
	for _, s := range samples {
		if s.Key == "" || !w.Contains(s.At) {
			continue
		}
		if _, ok := seen[s.Key]; !ok {
			seen[s.Key] = struct{}{}
			r.total++
		}
		day := dayKey(s.At)
		if seenByDay[day] == nil {
			seenByDay[day] = make(map[string]struct{})
		}
		if _, ok := seenByDay[day][s.Key]; !ok {
			seenByDay[day][s.Key] = struct{}{}
			r.byDay[day]++
		}
	}
	return r
}

// reduceRatio divides two co-grouped sums day by day. Days with a zero
// denominator yield 0 rather than NaN or infinity. The overall value is the
// true ratio of totals (sum/sum), not the mean of the daily ratios: the two
// differ whenever daily denominators are uneven, and this engine uses
// sum/sum throughout. With percent set, values are scaled by 100.
func reduceRatio(num, denom []Sample, w Window, percent bool) reduction {
	scale := 1.0
	if percent {
		scale = 100.0
	}

	n := reduceSum(num, w)
	d := reduceSum(denom, w)

	r := reduction{byDay: make(map[string]float64)}
	for day, dv := range d.byDay {
		if dv == 0 {
			r.byDay[day] = 0
			continue
		}
		r.byDay[day] = n.byDay[day] / dv * scale
	}
	if d.total != 0 {
		r.total = n.total / d.total * scale
	}
	return r
}

// reduceAvg averages sample values per day and overall. The overall value
// is the mean across all matching samples (sum/sum), not the mean of the
// daily means. Used for average-duration metrics with values in seconds.
func reduceAvg(samples []Sample, w Window) reduction {
	r := reduction{byDay: make(map[string]float64)}
	sums := make(map[string]float64)
	counts := make(map[string]float64)
	var sum, count float64
	for _, s := range samples {
		if !w.Contains(s.At) {
			continue
		}
		day := dayKey(s.At)
		sums[day] += s.Value
		counts[day]++
		sum += s.Value
		count++
	}
	for day, c := range counts {
		r.byDay[day] = sums[day] / c
	}
	if count > 0 {
		r.total = sum / count
	}
	return r
}

// round2 rounds to two decimal places, normalizing negative zero.
func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

// formatNumber is the ValueFormatter for numeric metrics.
func formatNumber(v float64) interface{} { return round2(v) }

// formatDurationSeconds renders a duration given in seconds as "H:MM".
// The zero representation is "0:00". Sub-minute remainders truncate, so
// 3599s renders as "0:59".
func formatDurationSeconds(v float64) interface{} {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0:00"
	}
	total := int(v)
	return fmt.Sprintf("%d:%02d", total/3600, (total%3600)/60)
}
