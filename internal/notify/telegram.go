package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"careerhub/client/internal/api"
	"careerhub/client/internal/config"
)

// TelegramReporter pushes newly published jobs to a Telegram chat, for
// users running the client as a watch daemon.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg config.TelegramConfig) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramReporter{bot: bot, chatID: cfg.ChatID}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendJob(job api.Job) error {
	text := fmt.Sprintf(
		"<b>%s</b>\n%s\n%s · %.0f\n%s",
		job.Title,
		job.Company,
		job.Location,
		job.Salary,
		job.Industry,
	)
	return t.SendMessage(text)
}
