// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package engine

import (
	"testing"
)

func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		clamp    bool
		want     float64
	}{
		{"both zero", 0, 0, false, 0},
		{"appeared from nothing", 10, 0, false, 100},
		{"appeared from nothing clamped", 500, 0, true, 100},
		{"unchanged", 7, 7, false, 0},
		{"doubled", 10, 5, false, 100},
		{"halved", 5, 10, false, -50},
		{"dropped to zero", 0, 8, false, -100},
		{"tripled unclamped", 30, 10, false, 200},
		{"tripled clamped", 30, 10, true, 100},
		{"large drop clamped", 1, 1000, true, -99.9},
		{"fractional", 11, 8, false, 37.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Trend(tt.current, tt.previous, tt.clamp); got != tt.want {
				t.Errorf("Trend(%v, %v, %v) = %v, want %v", tt.current, tt.previous, tt.clamp, got, tt.want)
			}
		})
	}
}

func TestFormatTrend(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{100, "100.00"},
		{-50, "-50.00"},
		{37.5, "37.50"},
		{33.333333, "33.33"},
		{-12.346, "-12.35"},
	}

	for _, tt := range tests {
		if got := FormatTrend(tt.in); got != tt.want {
			t.Errorf("FormatTrend(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
