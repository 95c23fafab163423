// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopcierge/insights/internal/models"
)

// Funnel stage labels, in declaration order.
const (
	StageChats       = "Chats Started"
	StageEngaged     = "Visitor Engaged"
	StageRecommended = "Products Recommended"
	StageClicked     = "Product Clicked"
	StageConverted   = "Order Attributed"
)

// funnelLookbackDays is the default conversion-funnel window length.
const funnelLookbackDays = 30

// Funnel computes the five conversion stages over a single window:
//
//  1. chats created in the window
//  2. chats with at least one user-authored message
//  3. chats where an assistant message carries recommended products
//  4. chats with at least one recorded product click
//  5. distinct chats referenced by a qualifying order attribution
//
// Stages are inclusion criteria evaluated independently; later stages are
// conceptually subsets of earlier ones, but nothing enforces a monotonic
// decrease for arbitrary data. Chat and order records are fetched
// concurrently.
func (e *Engine) Funnel(ctx context.Context, tenantID string, startDate, endDate *time.Time) ([]models.FunnelStage, error) {
	if tenantID == "" {
		return nil, ErrMissingTenant
	}

	pair := ResolveWindow(startDate, endDate, e.now(), funnelLookbackDays)
	w := pair.Current
	if w.Empty() {
		return funnelStages(nil, nil), nil
	}

	var (
		wg       sync.WaitGroup
		chats    []models.Chat
		orders   []models.Order
		chatErr  error
		orderErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		chats, chatErr = e.chats.Query(ctx, tenantID, w)
	}()
	go func() {
		defer wg.Done()
		orders, orderErr = e.orders.Query(ctx, tenantID, w)
	}()
	wg.Wait()
	if chatErr != nil {
		return nil, fmt.Errorf("query chats: %w", chatErr)
	}
	if orderErr != nil {
		return nil, fmt.Errorf("query orders: %w", orderErr)
	}

	return funnelStages(chats, orders), nil
}

// funnelStages counts each stage over the fetched records.
func funnelStages(chats []models.Chat, orders []models.Order) []models.FunnelStage {
	var engaged, recommended, clicked int
	for _, c := range chats {
		if c.HasUserMessage() {
			engaged++
		}
		if c.HasRecommendation() {
			recommended++
		}
		if c.HasClick() {
			clicked++
		}
	}

	// Stage 5 counts distinct chats, not orders: two orders attributed to
	// the same chat convert once.
	converted := make(map[string]struct{})
	for _, o := range orders {
		if o.Attribution.Qualifies() {
			converted[o.Attribution.ChatID.Hex()] = struct{}{}
		}
	}

	return []models.FunnelStage{
		{Stage: StageChats, Count: len(chats)},
		{Stage: StageEngaged, Count: engaged},
		{Stage: StageRecommended, Count: recommended},
		{Stage: StageClicked, Count: clicked},
		{Stage: StageConverted, Count: len(converted)},
	}
}
