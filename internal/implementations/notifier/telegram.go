package notifier

import (
	"context"
	"fmt"
	"html"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/notification"
	"net/url"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramBot is the part of tgbotapi.BotAPI the notifier needs.
type TelegramBot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram mirrors notifications to a Telegram chat.
type Telegram struct {
	bot    TelegramBot
	chatID int64
	appURL url.URL
}

func NewTelegram(bot TelegramBot, chatID int64, appURL url.URL) *Telegram {
	if bot == nil {
		panic(e.NewNilArgumentError("bot"))
	}
	if chatID == 0 {
		panic(e.NewInvalidArgumentError("chatID", "must not be zero"))
	}
	return &Telegram{bot: bot, chatID: chatID, appURL: appURL}
}

func (t *Telegram) Display(ctx context.Context, n notification.Notification) error {
	msg := tgbotapi.NewMessage(
		t.chatID,
		fmt.Sprintf("<b>%s</b>\n%s", html.EscapeString(n.Title), html.EscapeString(n.Body)),
	)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableNotification = n.Silent && !n.RequireInteraction
	if t.appURL.Host != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("Open meal planner", t.appURL.String()),
			),
		)
	}
	_, err := t.bot.Send(msg)
	return err
}
