// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package api

import (
	"fmt"
	"net/http"
	"time"
)

// dateFormat is the accepted query-parameter date layout.
const dateFormat = "2006-01-02"

// windowQuery holds the shared query parameters of every analytics
// endpoint. ShopID is required; the dates are optional and default to
// each metric's lookback window.
type windowQuery struct {
	ShopID    string `validate:"required,shop_id"`
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
}

// parseWindowQuery extracts the shared parameters from the request.
func parseWindowQuery(r *http.Request) windowQuery {
	q := r.URL.Query()
	return windowQuery{
		ShopID:    q.Get("shop_id"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
}

// dates converts the validated string dates to time pointers. Dates are
// interpreted as UTC midnights.
func (q windowQuery) dates() (start, end *time.Time, err error) {
	if q.StartDate != "" {
		t, parseErr := time.Parse(dateFormat, q.StartDate)
		if parseErr != nil {
			return nil, nil, fmt.Errorf("start_date: %w", parseErr)
		}
		start = &t
	}
	if q.EndDate != "" {
		t, parseErr := time.Parse(dateFormat, q.EndDate)
		if parseErr != nil {
			return nil, nil, fmt.Errorf("end_date: %w", parseErr)
		}
		end = &t
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, fmt.Errorf("end_date %s precedes start_date %s", q.EndDate, q.StartDate)
	}
	return start, end, nil
}
