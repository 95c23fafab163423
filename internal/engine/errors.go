// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package engine

import "errors"

// Engine error taxonomy. Invalid input surfaces immediately with no
// partial computation; empty record sets and degenerate windows are not
// errors and degrade to zero results.
var (
	// ErrMissingTenant indicates a request without a tenant identifier.
	ErrMissingTenant = errors.New("tenant id is required")

	// ErrUnknownMetric indicates no catalog entry under the requested name.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrUnknownLabel indicates an unsupported breakdown label field.
	ErrUnknownLabel = errors.New("unknown breakdown label")
)
