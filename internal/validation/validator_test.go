// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package validation

import (
	"strings"
	"testing"
)

type metricQuery struct {
	ShopID    string `validate:"required,shop_id"`
	Metric    string `validate:"required,min=1,max=64"`
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
}

func TestValidateStructPasses(t *testing.T) {
	q := metricQuery{
		ShopID:    "65a0000000000000000000aa",
		Metric:    "total_chats",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-07",
	}
	if err := ValidateStruct(&q); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}
}

func TestValidateStructOptionalDatesSkipped(t *testing.T) {
	q := metricQuery{ShopID: "65a0000000000000000000aa", Metric: "total_chats"}
	if err := ValidateStruct(&q); err != nil {
		t.Errorf("omitted optional dates should pass: %v", err)
	}
}

func TestValidateStructShopID(t *testing.T) {
	tests := []struct {
		name   string
		shopID string
		ok     bool
	}{
		{"valid hex", "65a0000000000000000000aa", true},
		{"too short", "65a000", false},
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzz", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := metricQuery{ShopID: tt.shopID, Metric: "total_chats"}
			err := ValidateStruct(&q)
			if tt.ok && err != nil {
				t.Errorf("expected pass, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation failure")
			}
		})
	}
}

func TestValidateStructBadDate(t *testing.T) {
	q := metricQuery{
		ShopID:    "65a0000000000000000000aa",
		Metric:    "total_chats",
		StartDate: "01/02/2024",
	}
	err := ValidateStruct(&q)
	if err == nil {
		t.Fatal("expected date format failure")
	}
	if !strings.Contains(err.Error(), "YYYY-MM-DD") {
		t.Errorf("message = %q, want date format hint", err.Error())
	}
}

func TestToAPIErrorSingleField(t *testing.T) {
	q := metricQuery{ShopID: "65a0000000000000000000aa"}
	err := ValidateStruct(&q)
	if err == nil {
		t.Fatal("expected missing metric failure")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "Metric" {
		t.Errorf("details.field = %v, want Metric", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultipleFields(t *testing.T) {
	q := metricQuery{}
	err := ValidateStruct(&q)
	if err == nil {
		t.Fatal("expected multiple failures")
	}
	if len(err.Errors()) < 2 {
		t.Fatalf("got %d errors, want at least 2", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("multi-error details should carry a fields list")
	}
	if !strings.Contains(apiErr.Message, ";") {
		t.Errorf("message = %q, want joined messages", apiErr.Message)
	}
}
