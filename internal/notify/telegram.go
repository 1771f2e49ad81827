package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tb "gopkg.in/telebot.v3"
)

const telegramTimeout = 10 * time.Second

// Telegram sends change notifications to a single fixed chat. The bot is
// send-only; it never polls for updates.
type Telegram struct {
	bot    *tb.Bot
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tb.NewBot(tb.Settings{
		Token:     token,
		ParseMode: tb.ModeHTML,
		Client:    &http.Client{Timeout: telegramTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Telegram{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *Telegram) Name() string {
	return "telegram"
}

func (t *Telegram) Send(_ context.Context, subject, body string) error {
	msg := fmt.Sprintf("<b>%s</b>\n\n%s", subject, body)
	if _, err := t.bot.Send(tb.ChatID(t.chatID), msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
