// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

// Package engine implements the KPI metrics aggregation engine: the logic
// that turns raw, timestamped chat and order records into comparable,
// period-bounded KPI values.
//
// The engine is organized around a small set of composable parts:
//
//   - Window resolution: a requested start date (or default lookback) and
//     "now" become a half-open current window plus an immediately
//     preceding, equal-duration comparison window.
//   - Sample extraction: each registered metric Definition knows how to
//     turn a chat or order record into zero or more (timestamp, value)
//     samples.
//   - Aggregation: count, sum, distinct-count, ratio, and average-duration
//     reducers fold samples into a scalar total plus per-day values.
//   - Bucketizing: per-day values become an ordered daily series spanning
//     the current window, with a configurable zero-fill policy.
//   - Trend: the current total is compared to the previous-window total as
//     a signed percentage with an explicit zero-division policy.
//
// Concrete KPIs are declarative Definition entries in catalog.go rather
// than bespoke per-metric functions. The funnel and label breakdowns are
// separate reductions over the same windows.
//
// All computation is request-scoped and side-effect free apart from reads
// through the injected record sources; an Engine is safe for concurrent
// use.
package engine
