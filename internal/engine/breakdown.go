// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopcierge/insights/internal/models"
)

// Breakdown label fields.
const (
	LabelMainTopics = "main_topics"
	LabelSubTopics  = "sub_topics"
)

// breakdownLookbackDays is the default breakdown window length.
const breakdownLookbackDays = 30

// Breakdown groups the window's chats by a classification label field and
// counts membership per category, descending by count (ties break
// alphabetically for stable output).
//
// Label fields are multi-valued: a chat labeled both "Shopping" and
// "Sales" contributes one count to each, so category counts can sum to
// more than the number of chats. Each category carries a single
// whole-window point rather than a daily series.
func (e *Engine) Breakdown(ctx context.Context, tenantID, label string, startDate, endDate *time.Time) ([]models.CategoryCount, error) {
	if tenantID == "" {
		return nil, ErrMissingTenant
	}

	var labels func(models.Chat) []string
	switch label {
	case LabelMainTopics:
		labels = func(c models.Chat) []string {
			if c.Classification == nil {
				return nil
			}
			return c.Classification.MainTopics
		}
	case LabelSubTopics:
		labels = func(c models.Chat) []string {
			if c.Classification == nil {
				return nil
			}
			return c.Classification.SubTopics
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}

	pair := ResolveWindow(startDate, endDate, e.now(), breakdownLookbackDays)
	w := pair.Current
	if w.Empty() {
		return []models.CategoryCount{}, nil
	}

	chats, err := e.chats.Query(ctx, tenantID, w)
	if err != nil {
		return nil, fmt.Errorf("query chats: %w", err)
	}

	counts := make(map[string]int)
	for _, c := range chats {
		if !w.Contains(c.CreatedAt) {
			continue
		}
		// A value repeated within one chat's label set still counts once
		// per chat occurrence; upstream labels are sets, so duplicates do
		// not occur in practice.
		for _, v := range labels(c) {
			if v != "" {
				counts[v]++
			}
		}
	}

	rangeKey := w.RangeKey()
	result := make([]models.CategoryCount, 0, len(counts))
	for category, count := range counts {
		result = append(result, models.CategoryCount{
			Category: category,
			Series:   []models.SeriesPoint{{Key: rangeKey, Value: count}},
		})
	}
	sort.Slice(result, func(i, j int) bool {
		ci := result[i].Series[0].Value.(int)
		cj := result[j].Series[0].Value.(int)
		if ci != cj {
			return ci > cj
		}
		return result[i].Category < result[j].Category
	})
	return result, nil
}
