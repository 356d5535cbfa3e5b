package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rich-108/Academic-Engine/internal/middleware"
	tg "github.com/Rich-108/Academic-Engine/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
)

// handleStats shows the caller's recent token spend. Admin only.
func (h *Handler) handleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil || !user.IsAdmin {
		return
	}
	chatID := update.Message.Chat.ID

	records, err := h.usage.ListRecent(ctx, user.ID, 20)
	if err != nil {
		slog.Error("failed to list usage", "user_id", user.ID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ Could not load usage."})
		return
	}
	if len(records) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "No usage recorded yet."})
		return
	}

	total := decimal.Zero
	var sb strings.Builder
	sb.WriteString("📊 *Recent requests*\n")
	for _, r := range records {
		total = total.Add(r.Cost)
		sb.WriteString(fmt.Sprintf("\n`%s` %s — %d in / %d out — $%s",
			r.CreatedAt.Format("01-02 15:04"), r.Model,
			r.PromptTokens, r.CompletionTokens, r.Cost.StringFixed(6)))
	}
	sb.WriteString(fmt.Sprintf("\n\n*Total:* $%s", total.StringFixed(6)))

	if err := tg.SendLongMessage(ctx, b, chatID, sb.String(), nil); err != nil {
		slog.Error("failed to send stats", "chat_id", chatID, "error", err)
	}
}
