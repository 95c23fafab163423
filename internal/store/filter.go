// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package store

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopcierge/insights/internal/engine"
)

// windowFilter builds the tenant-scoped, half-open createdAt range
// filter shared by both collections.
func windowFilter(tenantID string, w engine.Window) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(tenantID)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant id %q: %w", tenantID, err)
	}
	return bson.M{
		"shopId": oid,
		"createdAt": bson.M{
			"$gte": w.Start,
			"$lt":  w.End,
		},
	}, nil
}
