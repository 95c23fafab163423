// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MoneyBag pairs the shop-currency and presentment-currency views of the
// same amount, as recorded by the commerce platform.
type MoneyBag struct {
	ShopMoney        Money `bson:"shopMoney" json:"shopMoney"`
	PresentmentMoney Money `bson:"presentmentMoney" json:"presentmentMoney"`
}

// LineItemProduct is the product reference nested inside a line item.
type LineItemProduct struct {
	ID string `bson:"id,omitempty" json:"id,omitempty"`
}

// LineItem is a single purchased product line on an order.
type LineItem struct {
	ID       string          `bson:"id" json:"id"`
	Title    string          `bson:"title" json:"title"`
	Quantity int             `bson:"quantity" json:"quantity"`
	Product  LineItemProduct `bson:"product,omitempty" json:"product,omitempty"`
}

// AttributedProduct identifies one product the attribution pipeline credits
// to the chat interaction preceding the purchase.
type AttributedProduct struct {
	ID string `bson:"id" json:"id"`
}

// Attribution links an order back to the chat presumed to have caused the
// purchase, along with the products and commission credited to it.
type Attribution struct {
	AttributedProductIDs      []AttributedProduct `bson:"attributedProductIds,omitempty" json:"attributedProductIds,omitempty"`
	SumAttributedProductPrice float64             `bson:"sumAttributedProductPrice" json:"sumAttributedProductPrice"`
	CommissionRate            float64             `bson:"commissionRate" json:"commissionRate"`
	CommissionEarned          float64             `bson:"commissionEarned" json:"commissionEarned"`
	ChatID                    primitive.ObjectID  `bson:"chatId,omitempty" json:"chatId,omitempty"`
}

// Qualifies reports whether the attribution credits at least one product to
// a chat, which is what the conversion funnel counts.
func (a *Attribution) Qualifies() bool {
	return a != nil && !a.ChatID.IsZero() && len(a.AttributedProductIDs) > 0
}

// Order is a purchase recorded for a tenant, including its line items, net
// payment, and optional chat attribution.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlatformID  string             `bson:"id,omitempty" json:"platformId,omitempty"`
	TenantID    primitive.ObjectID `bson:"shopId" json:"tenantId"`
	LineItems   []LineItem         `bson:"lineItems,omitempty" json:"lineItems,omitempty"`
	NetPayment  MoneyBag           `bson:"netPaymentSet" json:"netPaymentSet"`
	Attribution *Attribution       `bson:"shopciergeAttribution,omitempty" json:"shopciergeAttribution,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NetAmount returns the order's net payment in shop currency.
func (o Order) NetAmount() float64 { return o.NetPayment.ShopMoney.Amount }

// TotalQuantity returns the number of units across all line items.
func (o Order) TotalQuantity() int {
	total := 0
	for _, li := range o.LineItems {
		total += li.Quantity
	}
	return total
}
