package telegram

import (
	"fmt"
	"strings"

	"week-meal-planner/internal/planner"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier pushes finished meal plans to a Telegram chat.
type Notifier struct {
	api    Sender
	chatID int64
}

// NewNotifier authorizes against the Bot API with token.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	return NewNotifierWithSender(bot, chatID), nil
}

// NewNotifierWithSender builds a Notifier on an existing sender.
func NewNotifierWithSender(api Sender, chatID int64) *Notifier {
	return &Notifier{api: api, chatID: chatID}
}

// SendPlan sends the plan and its shopping list as two messages.
func (n *Notifier) SendPlan(plan *planner.MealPlan) error {
	planText, shoppingListText := FormatPlanMessage(plan)

	for _, text := range []string{planText, shoppingListText} {
		msg := tgbotapi.NewMessage(n.chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := n.api.Send(msg); err != nil {
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
	}
	return nil
}

// FormatPlanMessage renders the plan and the shopping list as Telegram
// Markdown.
func FormatPlanMessage(plan *planner.MealPlan) (string, string) {
	escape := func(s string) string { return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s) }

	var pb strings.Builder
	pb.WriteString(fmt.Sprintf("📅 *Weekly Meal Plan for Week %d*\n", plan.WeekNumber))
	from, to := plan.DateRange()
	pb.WriteString(fmt.Sprintf("_%s - %s_\n\n", from.Format("January 02"), to.Format("January 02")))

	for _, dp := range plan.Plan {
		pb.WriteString(fmt.Sprintf("*%s*: %s (%d)\n", escape(dp.Day), escape(dp.RecipeTitle), dp.Portions))
	}

	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	if len(plan.ShoppingList) == 0 {
		sb.WriteString("_Nothing to buy_\n")
	}
	for _, item := range plan.ShoppingList {
		sb.WriteString(fmt.Sprintf("• %s\n", escape(item)))
	}

	return pb.String(), sb.String()
}
