// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopcierge/insights/internal/models"
)

// ChatSource supplies tenant-scoped chat records for a window. The records
// are assumed validated and tenant-scoped by the store; the engine only
// reads them.
type ChatSource interface {
	Query(ctx context.Context, tenantID string, w Window) ([]models.Chat, error)
}

// OrderSource supplies tenant-scoped order records for a window.
type OrderSource interface {
	Query(ctx context.Context, tenantID string, w Window) ([]models.Order, error)
}

// Request identifies one metric computation.
type Request struct {
	TenantID  string
	Metric    string
	StartDate *time.Time
	EndDate   *time.Time
}

// Engine computes KPI metrics over injected record sources. It holds no
// mutable state beyond its catalog and is safe for concurrent use; every
// computation is independent and request-scoped.
type Engine struct {
	chats   ChatSource
	orders  OrderSource
	catalog map[string]Definition
	ordered []Definition
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Tests use this to pin
// "now" for deterministic windows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCatalog replaces the built-in metric catalog.
func WithCatalog(defs []Definition) Option {
	return func(e *Engine) {
		e.ordered = defs
		e.catalog = make(map[string]Definition, len(defs))
		for _, d := range defs {
			e.catalog[d.Name] = d
		}
	}
}

// New creates an Engine over the given record sources with the built-in
// KPI catalog.
func New(chats ChatSource, orders OrderSource, opts ...Option) *Engine {
	e := &Engine{
		chats:  chats,
		orders: orders,
		now:    time.Now,
	}
	WithCatalog(Catalog())(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Definitions returns the catalog entries sorted by category then name.
func (e *Engine) Definitions() []models.MetricInfo {
	infos := make([]models.MetricInfo, 0, len(e.ordered))
	for _, d := range e.ordered {
		infos = append(infos, models.MetricInfo{
			Name:         d.Name,
			DisplayName:  d.DisplayName,
			Category:     d.Category,
			LookbackDays: d.LookbackDays,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Category != infos[j].Category {
			return infos[i].Category < infos[j].Category
		}
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Compute resolves the window pair for the request, reduces both windows,
// and assembles the metric result with its trend and daily series.
//
// The current and previous windows are queried and reduced concurrently;
// the first error wins. A degenerate window (start after end) short-circuits
// to a zero result without touching the record sources.
func (e *Engine) Compute(ctx context.Context, req Request) (*models.MetricResult, error) {
	if req.TenantID == "" {
		return nil, ErrMissingTenant
	}
	def, ok := e.catalog[req.Metric]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, req.Metric)
	}

	pair := ResolveWindow(req.StartDate, req.EndDate, e.now(), def.LookbackDays)
	if pair.Current.Empty() {
		return e.zeroResult(def), nil
	}

	var (
		wg       sync.WaitGroup
		current  reduction
		previous reduction
		curErr   error
		prevErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		current, curErr = e.reduceWindow(ctx, def, req.TenantID, pair.Current)
	}()
	go func() {
		defer wg.Done()
		previous, prevErr = e.reduceWindow(ctx, def, req.TenantID, pair.Previous)
	}()
	wg.Wait()
	if curErr != nil {
		return nil, curErr
	}
	if prevErr != nil {
		return nil, prevErr
	}

	trend := FormatTrend(Trend(current.total, previous.total, def.ClampTrend))
	return &models.MetricResult{
		Category:  def.Category,
		Name:      def.DisplayName,
		Value:     def.formatter()(current.total),
		Trend:     &trend,
		ChartData: Bucketize(pair.Current, current.byDay, def.Fill, def.formatter()),
	}, nil
}

// reduceWindow fetches one window's records from the definition's source
// and folds them.
func (e *Engine) reduceWindow(ctx context.Context, def Definition, tenantID string, w Window) (reduction, error) {
	switch def.Source {
	case SourceOrders:
		orders, err := e.orders.Query(ctx, tenantID, w)
		if err != nil {
			return reduction{}, fmt.Errorf("query orders: %w", err)
		}
		return def.reduceOrders(orders, w), nil
	default:
		chats, err := e.chats.Query(ctx, tenantID, w)
		if err != nil {
			return reduction{}, fmt.Errorf("query chats: %w", err)
		}
		return def.reduceChats(chats, w), nil
	}
}

// zeroResult is the graceful degradation for degenerate windows: zero
// value, flat trend, empty series.
func (e *Engine) zeroResult(def Definition) *models.MetricResult {
	trend := FormatTrend(0)
	return &models.MetricResult{
		Category:  def.Category,
		Name:      def.DisplayName,
		Value:     def.zeroValue(),
		Trend:     &trend,
		ChartData: []models.SeriesPoint{},
	}
}
