// Insights - Conversational Commerce KPI Analytics
// Copyright 2026 ShopCierge
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopcierge/insights

package engine

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopcierge/insights/internal/models"
)

// chatFixture builds a chat with the requested funnel properties.
func chatFixture(createdAt time.Time, userMsg, recommended, clicked bool) models.Chat {
	c := models.Chat{
		ID:        primitive.NewObjectID(),
		CreatedAt: createdAt,
		UpdatedAt: createdAt.Add(5 * time.Minute),
	}
	if userMsg {
		c.Messages = append(c.Messages, models.Message{
			Role: models.RoleUser, Content: "hi", Timestamp: createdAt,
		})
	}
	if recommended {
		c.Messages = append(c.Messages, models.Message{
			Role: models.RoleAssistant, Content: "try this", Timestamp: createdAt,
			ProductData: []models.ProductData{{ID: "p1", Name: "Widget"}},
		})
	}
	if clicked {
		c.ProductClicks = append(c.ProductClicks, models.ProductClick{
			ProductID: "p1", ClickCount: 1, LastClickedAt: createdAt,
		})
	}
	return c
}

func attributedOrder(createdAt time.Time, chatID primitive.ObjectID) models.Order {
	return models.Order{
		ID:        primitive.NewObjectID(),
		CreatedAt: createdAt,
		Attribution: &models.Attribution{
			ChatID:               chatID,
			AttributedProductIDs: []models.AttributedProduct{{ID: "p1"}},
		},
	}
}

// TestFunnelStageCounts reproduces the canonical drop-off fixture: 10 chats,
// 6 engaged, 3 with recommendations, 2 with clicks, 1 converted.
func TestFunnelStageCounts(t *testing.T) {
	day := date(2024, 1, 10)
	var chats []models.Chat
	for i := 0; i < 10; i++ {
		chats = append(chats, chatFixture(day.Add(time.Duration(i)*time.Hour),
			i < 6, // 6 with a user message
			i < 3, // 3 with recommendations
			i < 2, // 2 with clicks
		))
	}
	orders := []models.Order{attributedOrder(day, chats[0].ID)}

	stages := funnelStages(chats, orders)

	wantLabels := []string{StageChats, StageEngaged, StageRecommended, StageClicked, StageConverted}
	wantCounts := []int{10, 6, 3, 2, 1}
	if len(stages) != len(wantLabels) {
		t.Fatalf("got %d stages, want %d", len(stages), len(wantLabels))
	}
	for i, s := range stages {
		if s.Stage != wantLabels[i] {
			t.Errorf("stage %d label = %q, want %q (declaration order must hold)", i, s.Stage, wantLabels[i])
		}
		if s.Count != wantCounts[i] {
			t.Errorf("stage %q count = %d, want %d", s.Stage, s.Count, wantCounts[i])
		}
	}
}

func TestFunnelCountsDistinctChatsOnConversion(t *testing.T) {
	day := date(2024, 1, 10)
	chat := chatFixture(day, true, true, true)

	// Two orders attributed to the same chat convert once.
	orders := []models.Order{
		attributedOrder(day, chat.ID),
		attributedOrder(day.Add(time.Hour), chat.ID),
	}

	stages := funnelStages([]models.Chat{chat}, orders)
	if got := stages[4].Count; got != 1 {
		t.Errorf("converted = %d, want 1 distinct chat", got)
	}
}

func TestFunnelIgnoresNonQualifyingAttribution(t *testing.T) {
	day := date(2024, 1, 10)
	chat := chatFixture(day, true, false, false)

	orders := []models.Order{
		// Attribution without attributed products does not qualify.
		{
			ID:        primitive.NewObjectID(),
			CreatedAt: day,
			Attribution: &models.Attribution{
				ChatID: chat.ID,
			},
		},
		// No attribution at all.
		{ID: primitive.NewObjectID(), CreatedAt: day},
	}

	stages := funnelStages([]models.Chat{chat}, orders)
	if got := stages[4].Count; got != 0 {
		t.Errorf("converted = %d, want 0", got)
	}
}

func TestFunnelEndToEnd(t *testing.T) {
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	day := date(2024, 1, 10)
	chat := chatFixture(day, true, true, true)

	e := New(
		&fakeChatSource{chats: []models.Chat{chat}},
		&fakeOrderSource{orders: []models.Order{attributedOrder(day, chat.ID)}},
		WithClock(func() time.Time { return now }),
	)

	stages, err := e.Funnel(context.Background(), testTenant, nil, nil)
	if err != nil {
		t.Fatalf("Funnel failed: %v", err)
	}
	want := []int{1, 1, 1, 1, 1}
	for i, s := range stages {
		if s.Count != want[i] {
			t.Errorf("stage %q = %d, want %d", s.Stage, s.Count, want[i])
		}
	}
}

func TestFunnelRequiresTenant(t *testing.T) {
	e := New(&fakeChatSource{}, &fakeOrderSource{})
	if _, err := e.Funnel(context.Background(), "", nil, nil); err != ErrMissingTenant {
		t.Errorf("err = %v, want ErrMissingTenant", err)
	}
}
