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

// ChatStore serves chat documents for metric computation. It implements
// engine.ChatSource.
type ChatStore struct {
	coll    *mongo.Collection
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]models.Chat]
}

// NewChatStore creates a chat source backed by the chats collection.
func NewChatStore(db *mongo.Database, cfg config.MongoConfig) *ChatStore {
	return &ChatStore{
		coll:    db.Collection(chatsCollection),
		timeout: cfg.QueryTimeout,
		breaker: newBreaker[[]models.Chat](chatsCollection, cfg),
	}
}

// Query returns the tenant's chats created inside the window, ordered
// by creation time.
func (s *ChatStore) Query(ctx context.Context, tenantID string, w engine.Window) ([]models.Chat, error) {
	filter, err := windowFilter(tenantID, w)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	chats, err := s.breaker.Execute(func() ([]models.Chat, error) {
		return s.find(ctx, filter)
	})
	obs.ObserveSourceQuery(chatsCollection, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query chats collection: %w", err)
	}
	return chats, nil
}

func (s *ChatStore) find(ctx context.Context, filter bson.M) ([]models.Chat, error) {
	queryCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.coll.Find(queryCtx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	var chats []models.Chat
	if err := cursor.All(queryCtx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}
