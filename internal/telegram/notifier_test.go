package telegram

import (
	"errors"
	"testing"
	"time"

	"week-meal-planner/internal/planner"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func testPlan() *planner.MealPlan {
	return &planner.MealPlan{
		WeekStart:  time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC),
		WeekNumber: 43,
		Plan: []planner.DayPlan{
			{Day: "Monday", RecipeTitle: "Greek_Salad", Portions: 2},
		},
		ShoppingList: []string{"1000 g feta", "olive oil"},
	}
}

func TestFormatPlanMessage(t *testing.T) {
	planText, shoppingText := FormatPlanMessage(testPlan())

	assert.Contains(t, planText, "*Weekly Meal Plan for Week 43*")
	assert.Contains(t, planText, "_October 19 - October 23_")
	assert.Contains(t, planText, `*Monday*: Greek\_Salad (2)`)
	assert.Contains(t, shoppingText, "• 1000 g feta\n• olive oil\n")

	_, emptyText := FormatPlanMessage(&planner.MealPlan{})
	assert.Contains(t, emptyText, "_Nothing to buy_")

	custom := &planner.MealPlan{Plan: []planner.DayPlan{{Day: "Day_1*", RecipeTitle: "Soup", Portions: 1}}}
	customText, _ := FormatPlanMessage(custom)
	assert.Contains(t, customText, `*Day\_1\**: Soup (1)`)
}

func TestSendPlan(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		sender := &fakeSender{}
		n := NewNotifierWithSender(sender, 42)

		require.NoError(t, n.SendPlan(testPlan()))
		require.Len(t, sender.sent, 2)
		for _, msg := range sender.sent {
			assert.Equal(t, int64(42), msg.ChatID)
			assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
		}
		assert.Contains(t, sender.sent[1].Text, "Shopping List")
	})

	t.Run("SendError", func(t *testing.T) {
		n := NewNotifierWithSender(&fakeSender{err: errors.New("blocked")}, 42)
		assert.ErrorContains(t, n.SendPlan(testPlan()), "blocked")
	})
}
