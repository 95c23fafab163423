// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

// Package store implements the MongoDB-backed chat and order sources
// consumed by the metric engine. Each store scopes its queries to a
// single tenant and window, and wraps the collection behind a circuit
// breaker so a degraded database fails fast instead of piling up
// timed-out queries.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shopcierge/insights/internal/config"
	"github.com/shopcierge/insights/internal/logging"
)

// Collection names in the platform database.
const (
	chatsCollection  = "chats"
	ordersCollection = "orders"
)

// Connect establishes a MongoDB connection with the configured pool
// limits and verifies it with a ping before returning.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logging.Info().
		Str("database", cfg.Database).
		Uint64("max_pool_size", cfg.MaxPoolSize).
		Msg("MongoDB connected")

	return client, nil
}

// Disconnect closes the client, logging rather than failing on error
// since it runs during shutdown.
func Disconnect(ctx context.Context, client *mongo.Client) {
	if err := client.Disconnect(ctx); err != nil {
		logging.Warn().Err(err).Msg("MongoDB disconnect failed")
	}
}
