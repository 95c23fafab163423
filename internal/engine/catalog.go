// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package engine

import (
	"github.com/shopcierge/insights/internal/models"
)

// Metric categories.
const (
	CategoryEngagement = "Engagement"
	CategoryRevenue    = "Revenue"
	CategorySupport    = "Support"
)

// Default lookbacks per metric family.
const (
	engagementLookbackDays = 7
	revenueLookbackDays    = 30
	supportLookbackDays    = 30
)

// Catalog returns the declarative KPI definitions served by the engine.
func Catalog() []Definition {
	return []Definition{
		{
			Name:         "total_chats",
			DisplayName:  "Total Chats",
			Category:     CategoryEngagement,
			Source:       SourceChats,
			Kind:         KindCount,
			LookbackDays: engagementLookbackDays,
			Fill:         FillZeros,
			FromChat: func(c models.Chat) []Sample {
				return []Sample{{At: c.CreatedAt, Value: 1}}
			},
		},
		{
			Name:         "user_messages",
			DisplayName:  "User Messages",
			Category:     CategoryEngagement,
			Source:       SourceChats,
			Kind:         KindCount,
			LookbackDays: engagementLookbackDays,
			Fill:         FillZeros,
			FromChat:     userMessageSamples,
		},
		{
			Name:         "unique_visitors",
			DisplayName:  "Unique Visitors",
			Category:     CategoryEngagement,
			Source:       SourceChats,
			Kind:         KindDistinct,
			LookbackDays: engagementLookbackDays,
			Fill:         FillZeros,
			FromChat: func(c models.Chat) []Sample {
				return []Sample{{At: c.CreatedAt, Value: 1, Key: c.VisitorID}}
			},
		},
		{
			Name:         "messages_per_chat",
			DisplayName:  "Messages per Chat",
			Category:     CategoryEngagement,
			Source:       SourceChats,
			Kind:         KindRatio,
			LookbackDays: engagementLookbackDays,
			Fill:         FillZeros,
			FromChat:     userMessageSamples,
			DenomFromChat: func(c models.Chat) []Sample {
				return []Sample{{At: c.CreatedAt, Value: 1}}
			},
		},
		{
			Name:         "avg_chat_duration",
			DisplayName:  "Avg. Chat Duration",
			Category:     CategoryEngagement,
			Source:       SourceChats,
			Kind:         KindAvgDuration,
			LookbackDays: engagementLookbackDays,
			Fill:         OmitZeros,
			FromChat: func(c models.Chat) []Sample {
				d := c.UpdatedAt.Sub(c.CreatedAt)
				if d < 0 {
					d = 0
				}
				return []Sample{{At: c.CreatedAt, Value: d.Seconds()}}
			},
		},
		{
			Name:         "total_revenue",
			DisplayName:  "Total Revenue",
			Category:     CategoryRevenue,
			Source:       SourceOrders,
			Kind:         KindSum,
			LookbackDays: revenueLookbackDays,
			Fill:         OmitZeros,
			FromOrder: func(o models.Order) []Sample {
				if o.NetAmount() <= 0 {
					return nil
				}
				return []Sample{{At: o.CreatedAt, Value: o.NetAmount()}}
			},
		},
		{
			Name:         "attributed_revenue",
			DisplayName:  "Chat-Attributed Revenue",
			Category:     CategoryRevenue,
			Source:       SourceOrders,
			Kind:         KindSum,
			LookbackDays: revenueLookbackDays,
			Fill:         OmitZeros,
			FromOrder: func(o models.Order) []Sample {
				if !o.Attribution.Qualifies() {
					return nil
				}
				return []Sample{{At: o.CreatedAt, Value: o.Attribution.SumAttributedProductPrice}}
			},
		},
		{
			Name:         "total_orders",
			DisplayName:  "Total Orders",
			Category:     CategoryRevenue,
			Source:       SourceOrders,
			Kind:         KindCount,
			LookbackDays: revenueLookbackDays,
			Fill:         FillZeros,
			FromOrder: func(o models.Order) []Sample {
				return []Sample{{At: o.CreatedAt, Value: 1}}
			},
		},
		{
			Name:         "product_clicks",
			DisplayName:  "Product Clicks",
			Category:     CategoryRevenue,
			Source:       SourceChats,
			Kind:         KindSum,
			LookbackDays: revenueLookbackDays,
			Fill:         FillZeros,
			FromChat: func(c models.Chat) []Sample {
				var samples []Sample
				for _, pc := range c.ProductClicks {
					samples = append(samples, Sample{At: pc.LastClickedAt, Value: float64(pc.ClickCount)})
				}
				return samples
			},
		},
		{
			Name:         "time_saved",
			DisplayName:  "Support Time Saved (Minutes)",
			Category:     CategorySupport,
			Source:       SourceChats,
			Kind:         KindSum,
			LookbackDays: supportLookbackDays,
			Fill:         FillZeros,
			FromChat: func(c models.Chat) []Sample {
				if c.Classification == nil || c.Classification.TimeSavedMinutes <= 0 {
					return nil
				}
				return []Sample{{At: c.CreatedAt, Value: c.Classification.TimeSavedMinutes}}
			},
		},
		{
			Name:         "escalation_rate",
			DisplayName:  "Escalation Rate",
			Category:     CategorySupport,
			Source:       SourceChats,
			Kind:         KindRatio,
			LookbackDays: supportLookbackDays,
			Fill:         FillZeros,
			ClampTrend:   true,
			Percent:      true,
			FromChat: func(c models.Chat) []Sample {
				if c.Classification == nil || !c.Classification.IsEscalated {
					return nil
				}
				return []Sample{{At: c.CreatedAt, Value: 1}}
			},
			DenomFromChat: func(c models.Chat) []Sample {
				return []Sample{{At: c.CreatedAt, Value: 1}}
			},
		},
		{
			Name:         "resolution_rate",
			DisplayName:  "Resolution Rate",
			Category:     CategorySupport,
			Source:       SourceChats,
			Kind:         KindRatio,
			LookbackDays: supportLookbackDays,
			Fill:         FillZeros,
			ClampTrend:   true,
			Percent:      true,
			FromChat: func(c models.Chat) []Sample {
				if c.Status != models.ChatStatusClosed || c.Classification == nil ||
					c.Classification.Outcome != models.OutcomeResolved {
					return nil
				}
				return []Sample{{At: c.CreatedAt, Value: 1}}
			},
			DenomFromChat: func(c models.Chat) []Sample {
				if c.Status != models.ChatStatusClosed {
					return nil
				}
				return []Sample{{At: c.CreatedAt, Value: 1}}
			},
		},
	}
}

// userMessageSamples emits one sample per user-authored message, stamped
// with the message timestamp rather than the chat creation time.
func userMessageSamples(c models.Chat) []Sample {
	var samples []Sample
	for _, m := range c.Messages {
		if m.IsUser() {
			samples = append(samples, Sample{At: m.Timestamp, Value: 1})
		}
	}
	return samples
}
