// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package store

import (
	"context"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopcierge/insights/internal/config"
	"github.com/shopcierge/insights/internal/engine"
	"github.com/shopcierge/insights/internal/models"
	"github.com/shopcierge/insights/internal/obs"
)

// OrderStore serves order documents for metric computation. It
// implements engine.OrderSource.
type OrderStore struct {
	coll    *mongo.Collection
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]models.Order]
}

// NewOrderStore creates an order source backed by the orders collection.
func NewOrderStore(db *mongo.Database, cfg config.MongoConfig) *OrderStore {
	return &OrderStore{
		coll:    db.Collection(ordersCollection),
		timeout: cfg.QueryTimeout,
		breaker: newBreaker[[]models.Order](ordersCollection, cfg),
	}
}

// Query returns the tenant's orders created inside the window, ordered
// by creation time.
func (s *OrderStore) Query(ctx context.Context, tenantID string, w engine.Window) ([]models.Order, error) {
	filter, err := windowFilter(tenantID, w)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	orders, err := s.breaker.Execute(func() ([]models.Order, error) {
		return s.find(ctx, filter)
	})
	obs.ObserveSourceQuery(ordersCollection, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query orders collection: %w", err)
	}
	return orders, nil
}

func (s *OrderStore) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	queryCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.coll.Find(queryCtx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	var orders []models.Order
	if err := cursor.All(queryCtx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
