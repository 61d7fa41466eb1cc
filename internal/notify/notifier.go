package notify

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Notifier interface {
	Send(ctx context.Context, msg string)
	Sendf(ctx context.Context, format string, args ...any)
}

// botSender is the part of *tgbot.BotAPI we use.
type botSender interface {
	Send(c tgbot.Chattable) (tgbot.Message, error)
}

// Telegram is a passive notifier: it only pushes messages to one chat.
type Telegram struct {
	bot    botSender
	chatID int64
	log    *zap.Logger
}

func NewTelegram(token string, chatID int64, log *zap.Logger) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{bot: b, chatID: chatID, log: log}, nil
}

func (t *Telegram) Send(_ context.Context, msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, msg)); err != nil {
		t.log.Warn("telegram send failed", zap.Error(err))
	}
}

func (t *Telegram) Sendf(ctx context.Context, format string, args ...any) {
	t.Send(ctx, fmt.Sprintf(format, args...))
}

// Log writes notifications to the logger when no chat is configured.
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log { return &Log{log: log} }

func (l *Log) Send(_ context.Context, msg string) { l.log.Info(msg) }

func (l *Log) Sendf(ctx context.Context, format string, args ...any) {
	l.Send(ctx, fmt.Sprintf(format, args...))
}
