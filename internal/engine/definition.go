// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package engine

import (
	"github.com/shopcierge/insights/internal/models"
)

// Source selects which record collection a metric reads.
type Source int

const (
	// SourceChats reads chat session records.
	SourceChats Source = iota

	// SourceOrders reads order records.
	SourceOrders
)

// Kind selects the aggregation shape applied to extracted samples.
type Kind int

const (
	// KindCount counts matching samples per day.
	KindCount Kind = iota

	// KindSum sums sample values per day.
	KindSum

	// KindDistinct counts distinct sample keys.
	KindDistinct

	// KindRatio divides two co-grouped sums per day; the overall value is
	// the ratio of totals.
	KindRatio

	// KindAvgDuration averages sample values (seconds) per day and renders
	// them as "H:MM" strings.
	KindAvgDuration
)

// ChatExtractor turns one chat record into zero or more samples.
type ChatExtractor func(models.Chat) []Sample

// OrderExtractor turns one order record into zero or more samples.
type OrderExtractor func(models.Order) []Sample

// Definition declares one concrete KPI. The per-metric handlers of the
// source system collapse into these entries: a predicate/extractor, an
// aggregation kind, a zero-fill policy, and a clamp policy, interpreted by
// a single computation path.
type Definition struct {
	// Name is the catalog key used in request routing, e.g. "total_chats".
	Name string

	// DisplayName is the human-facing metric name, e.g. "Total Chats".
	DisplayName string

	// Category groups related metrics, e.g. "Engagement".
	Category string

	// Source selects the record collection the metric reads.
	Source Source

	// Kind selects the aggregation shape.
	Kind Kind

	// LookbackDays is the default window length when no start date is
	// requested: 7 for engagement metrics, 30 for revenue and support.
	LookbackDays int

	// Fill is the chart zero-fill policy.
	Fill FillPolicy

	// ClampTrend caps the trend magnitude at 100.
	ClampTrend bool

	// Percent scales ratio values by 100.
	Percent bool

	// FromChat/FromOrder extract the metric's samples; exactly one is set,
	// matching Source.
	FromChat  ChatExtractor
	FromOrder OrderExtractor

	// DenomFromChat/DenomFromOrder extract the denominator samples for
	// ratio metrics, from the same record set as the numerator.
	DenomFromChat  ChatExtractor
	DenomFromOrder OrderExtractor
}

// formatter returns the series/value formatter for the metric's kind.
func (d Definition) formatter() ValueFormatter {
	if d.Kind == KindAvgDuration {
		return formatDurationSeconds
	}
	return formatNumber
}

// zeroValue returns the metric's zero representation.
func (d Definition) zeroValue() interface{} {
	return d.formatter()(0)
}

// reduceChats folds one window's chat records per the definition.
func (d Definition) reduceChats(chats []models.Chat, w Window) reduction {
	samples := extractChats(chats, d.FromChat)
	switch d.Kind {
	case KindDistinct:
		return reduceDistinct(samples, w)
	case KindRatio:
		return reduceRatio(samples, extractChats(chats, d.DenomFromChat), w, d.Percent)
	case KindAvgDuration:
		return reduceAvg(samples, w)
	default:
		return reduceSum(samples, w)
	}
}

// reduceOrders folds one window's order records per the definition.
func (d Definition) reduceOrders(orders []models.Order, w Window) reduction {
	samples := extractOrders(orders, d.FromOrder)
	switch d.Kind {
	case KindDistinct:
		return reduceDistinct(samples, w)
	case KindRatio:
		return reduceRatio(samples, extractOrders(orders, d.DenomFromOrder), w, d.Percent)
	case KindAvgDuration:
		return reduceAvg(samples, w)
	default:
		return reduceSum(samples, w)
	}
}

func extractChats(chats []models.Chat, extract ChatExtractor) []Sample {
	if extract == nil {
		return nil
	}
	var samples []Sample
	for _, c := range chats {
		samples = append(samples, extract(c)...)
	}
	return samples
}

func extractOrders(orders []models.Order, extract OrderExtractor) []Sample {
	if extract == nil {
		return nil
	}
	var samples []Sample
	for _, o := range orders {
		samples = append(samples, extract(o)...)
	}
	return samples
}
