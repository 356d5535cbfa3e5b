package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rich-108/Academic-Engine/internal/config"
	"github.com/go-telegram/bot"
)

// Notifier mirrors noteworthy events into an operator chat. A zero
// LogChatID disables it. The bot is attached after construction because
// the notifier is wired into middleware created before the bot exists.
type Notifier struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{cfg: cfg}
}

func (n *Notifier) SetBot(b *bot.Bot) { n.bot = b }

func (n *Notifier) send(message string) {
	if n.cfg.LogChatID == 0 || n.bot == nil {
		return
	}
	if r := []rune(message); len(r) > config.MaxTelegramMessageLen {
		message = string(r[:config.MaxTelegramMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.cfg.LogChatID,
		Text:      message,
		ParseMode: "Markdown",
	})
	if err != nil {
		slog.Error("failed to send operator notification", "error", err)
	}
}

func (n *Notifier) NotifyError(err error, where string) {
	n.send(fmt.Sprintf("❌ *Error*\n\n*Where:* %s\n*Error:* `%s`\n*Time:* %s",
		where, err.Error(), time.Now().Format("2006-01-02 15:04:05")))
}

func (n *Notifier) NotifyRegistration(telegramID int64, name, username string) {
	n.send(fmt.Sprintf("👤 *New Student*\n\n*ID:* `%d`\n*Name:* %s\n*Username:* @%s",
		telegramID, name, username))
}
