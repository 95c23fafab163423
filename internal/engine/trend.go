// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package engine

import (
	"strconv"
)

// Trend computes the signed percentage change from previous to current.
//
// Zero-division policy: a zero previous total yields 100 when the current
// total is positive and 0 otherwise, so a metric appearing from nothing
// reads as +100% rather than infinity. With clamp set the magnitude is
// capped at 100 in either direction; the cap is a per-metric policy flag,
// not an incidental rounding artifact.
func Trend(current, previous float64, clamp bool) float64 {
	var trend float64
	switch {
	case previous == 0 && current > 0:
		trend = 100
	case previous == 0:
		trend = 0
	default:
		trend = (current - previous) / previous * 100
	}

	if clamp {
		if trend > 100 {
			trend = 100
		} else if trend < -100 {
			trend = -100
		}
	}
	return trend
}

// FormatTrend renders a trend percentage to two decimal places, e.g.
// "100.00" or "-12.50".
func FormatTrend(trend float64) string {
	return strconv.FormatFloat(round2(trend), 'f', 2, 64)
}
