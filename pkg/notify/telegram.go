package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

// NewTelegram returns a disabled notifier when token or chat id is empty.
func NewTelegram(token string, chatID int64, log *zap.Logger) (*Telegram, error) {
	log = log.With(zap.String("notifier", "telegram"))

	if token == "" || chatID == 0 {
		log.Warn("Telegram ops notifications disabled")
		return &Telegram{log: log}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Telegram{bot: bot, chatID: chatID, log: log}, nil
}

func (t *Telegram) OpsBookingAlert(ctx context.Context, b BookingSummary) error {
	if t.bot == nil {
		t.log.Debug("Telegram alert skipped (bot disabled)", zap.String("reference", b.Reference))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, opsText(b))); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
