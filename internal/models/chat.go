// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message roles within a chat session.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Chat session status values.
const (
	ChatStatusFresh  = "fresh"
	ChatStatusOpen   = "open"
	ChatStatusClosed = "closed"
)

// Classification outcome values assigned by the labeling pipeline.
const (
	OutcomeResolved   = "resolved"
	OutcomeUnresolved = "unresolved"
	OutcomeEscalated  = "escalated"
)

// Money represents an amount in a specific currency.
type Money struct {
	Amount       float64 `bson:"amount" json:"amount"`
	CurrencyCode string  `bson:"currencyCode" json:"currencyCode"`
}

// ProductData is the product card payload attached to an assistant message
// when the bot recommends products.
type ProductData struct {
	ID               string `bson:"id" json:"id"`
	Name             string `bson:"name" json:"name"`
	ImageURLs        string `bson:"imageUrls,omitempty" json:"imageUrls,omitempty"`
	PresentmentPrice Money  `bson:"presentmentPrice" json:"presentmentPrice"`
	DetailsPageURL   string `bson:"detailsPageUrl" json:"detailsPageUrl"`
}

// Message is a single utterance within a chat session. Assistant messages
// may carry recommended products in ProductData.
type Message struct {
	Role        string        `bson:"role" json:"role"`
	Content     string        `bson:"content" json:"content"`
	Timestamp   time.Time     `bson:"timestamp" json:"timestamp"`
	ProductData []ProductData `bson:"productData,omitempty" json:"productData,omitempty"`
}

// IsUser reports whether the message was authored by the visitor.
func (m Message) IsUser() bool { return m.Role == RoleUser }

// HasRecommendation reports whether the message is an assistant message
// carrying at least one recommended product.
func (m Message) HasRecommendation() bool {
	return m.Role == RoleAssistant && len(m.ProductData) > 0
}

// ProductClick is a per-product click counter embedded in a chat session.
// ClickCount accumulates repeat clicks on the same product.
type ProductClick struct {
	ProductID               string    `bson:"productId" json:"productId"`
	ProductName             string    `bson:"productName" json:"productName"`
	DetailsPageURL          string    `bson:"detailsPageUrl" json:"detailsPageUrl"`
	ProductPresentmentPrice Money     `bson:"productPresentmentPrice" json:"productPresentmentPrice"`
	ClickCount              int       `bson:"clickCount" json:"clickCount"`
	LastClickedAt           time.Time `bson:"lastClickedAt" json:"lastClickedAt"`
}

// Classification holds the labels assigned to a finished chat by the
// classification pipeline. MainTopics and SubTopics are sets: a chat about
// both shipping and returns carries both labels.
type Classification struct {
	MainTopics       []string `bson:"mainTopics,omitempty" json:"mainTopics,omitempty"`
	SubTopics        []string `bson:"subTopics,omitempty" json:"subTopics,omitempty"`
	IsEscalated      bool     `bson:"isEscalated" json:"isEscalated"`
	Outcome          string   `bson:"outcome,omitempty" json:"outcome,omitempty"`
	TimeSavedMinutes float64  `bson:"timeSavedMinutes" json:"timeSavedMinutes"`
}

// Chat is one visitor conversation with the shop assistant, including the
// embedded message transcript, product click counters, and classification
// labels. TenantID scopes the record to a single shop.
type Chat struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TenantID       primitive.ObjectID `bson:"shopId" json:"tenantId"`
	VisitorID      string             `bson:"visitorId,omitempty" json:"visitorId,omitempty"`
	Messages       []Message          `bson:"messages,omitempty" json:"messages,omitempty"`
	ProductClicks  []ProductClick     `bson:"productClicks,omitempty" json:"productClicks,omitempty"`
	Classification *Classification    `bson:"classification,omitempty" json:"classification,omitempty"`
	Status         string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasUserMessage reports whether the visitor sent at least one message.
func (c Chat) HasUserMessage() bool {
	for _, m := range c.Messages {
		if m.IsUser() {
			return true
		}
	}
	return false
}

// HasRecommendation reports whether any assistant message carries
// recommended-product data.
func (c Chat) HasRecommendation() bool {
	for _, m := range c.Messages {
		if m.HasRecommendation() {
			return true
		}
	}
	return false
}

// HasClick reports whether the visitor clicked at least one recommended
// product during the session.
func (c Chat) HasClick() bool { return len(c.ProductClicks) > 0 }
