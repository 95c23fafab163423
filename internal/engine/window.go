// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package engine

import (
	"time"
)

// DayKeyFormat is the calendar-day key format used for all daily series.
const DayKeyFormat = "2006-01-02"

// Window is a half-open time interval [Start, End) used to scope record
// queries and aggregation. All window arithmetic is done in UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start. Negative for degenerate windows.
func (w Window) Duration() time.Duration { return w.End.Sub(w.Start) }

// Empty reports whether the window contains no instants. A window whose
// start is at or after its end yields zero totals and empty series
// downstream; it is never an error.
func (w Window) Empty() bool { return !w.Start.Before(w.End) }

// Contains reports whether t falls inside the half-open interval.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Days returns the ordered calendar-day keys covered by the window,
// inclusive of both the start day and the day containing the last instant
// before End. Returns nil for empty windows.
func (w Window) Days() []string {
	if w.Empty() {
		return nil
	}
	first := w.Start.UTC().Truncate(24 * time.Hour)
	// End is exclusive: the last covered day is the day of End-1ns, so an
	// explicit end date of 2024-01-08T00:00Z covers through 2024-01-07.
	last := w.End.UTC().Add(-time.Nanosecond).Truncate(24 * time.Hour)

	var days []string
	for d := first; !d.After(last); d = d.Add(24 * time.Hour) {
		days = append(days, d.Format(DayKeyFormat))
	}
	return days
}

// RangeKey returns the whole-window key used by single-point series, e.g.
// "2024-01-01 - 2024-01-31".
func (w Window) RangeKey() string {
	if w.Empty() {
		return ""
	}
	days := w.Days()
	return days[0] + " - " + days[len(days)-1]
}

// Pair couples the current window with its comparison window.
//
// Invariants: Previous.End == Current.Start and both windows share the same
// duration. Because windows are half-open, this single boundary rule yields
// zero overlap and zero gap; the source system applied the rule
// inconsistently across handlers and this engine deliberately does not.
type Pair struct {
	Current  Window
	Previous Window
}

// ResolveWindow computes the window pair for a metric request.
//
// The current window starts at startDate's UTC midnight when provided,
// otherwise at midnight lookbackDays days before now. It ends at now, or at
// the midnight following endDate when an explicit end date is provided (so
// the end date's full day is included).
//
// A start date after the end produces a degenerate (empty) current window;
// callers are expected to degrade to zero results rather than fail.
func ResolveWindow(startDate, endDate *time.Time, now time.Time, lookbackDays int) Pair {
	now = now.UTC()

	var start time.Time
	if startDate != nil {
		start = startDate.UTC().Truncate(24 * time.Hour)
	} else {
		start = now.AddDate(0, 0, -lookbackDays).Truncate(24 * time.Hour)
	}

	end := now
	if endDate != nil {
		end = endDate.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	}

	current := Window{Start: start, End: end}

	duration := current.Duration()
	if duration < 0 {
		duration = 0
	}
	previous := Window{Start: start.Add(-duration), End: start}

	return Pair{Current: current, Previous: previous}
}
