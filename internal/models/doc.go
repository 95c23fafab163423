// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

// Package models defines the data structures shared across the Insights
// application: the chat and order event records read from the document
// store, the KPI result shapes returned by the metrics engine, and the
// uniform API response envelope.
//
// Event records (Chat, Order) mirror the shapes written by the upstream
// ShopCierge platform. They are read-only from this service's perspective:
// the engine consumes them for the duration of a single computation and
// never writes them back.
package models
