package handler

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/Rich-108/Academic-Engine/internal/middleware"
	tg "github.com/Rich-108/Academic-Engine/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (h *Handler) handleGlossary(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	entries, err := h.glossary.List(ctx, user.ID)
	if err != nil {
		slog.Error("failed to list glossary", "user_id", user.ID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ Could not load your glossary."})
		return
	}
	if len(entries) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Your glossary is empty. Save a term with:\n/remember term — definition",
		})
		return
	}

	var sb strings.Builder
	sb.WriteString("📖 *Your glossary*\n")
	for _, e := range entries {
		sb.WriteString("\n*" + e.Term + "* — " + e.Definition)
	}

	if err := tg.SendLongMessage(ctx, b, chatID, sb.String(), tg.GlossaryKeyboard(entries)); err != nil {
		slog.Error("failed to send glossary", "chat_id", chatID, "error", err)
	}
}

// handleRemember saves a term. Accepts "—", "--" or "-" as the
// term/definition separator.
func (h *Handler) handleRemember(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/remember"))
	term, definition := splitTermDefinition(args)
	if term == "" || definition == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Usage: /remember term — definition",
		})
		return
	}

	entry, err := h.glossary.Save(ctx, user.ID, term, definition)
	if err != nil {
		if errors.Is(err, domain.ErrGlossaryDuplicate) {
			b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "You already saved that term."})
			return
		}
		slog.Error("failed to save glossary entry", "user_id", user.ID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ Could not save that term."})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "✅ Saved: " + entry.Term})
}

func splitTermDefinition(s string) (string, string) {
	for _, sep := range []string{"—", "--", "-"} {
		if term, def, ok := strings.Cut(s, sep); ok {
			return strings.TrimSpace(term), strings.TrimSpace(def)
		}
	}
	return "", ""
}

func (h *Handler) handleGlossaryDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(cq.Data, tg.CallbackGlossDel), 10, 64)
	if err != nil {
		tg.AnswerCallback(ctx, b, cq.ID, "")
		return
	}

	if err := h.glossary.Delete(ctx, user.ID, id); err != nil {
		if errors.Is(err, domain.ErrGlossaryNotFound) {
			tg.AnswerCallback(ctx, b, cq.ID, "Already removed.")
			return
		}
		slog.Error("failed to delete glossary entry", "user_id", user.ID, "error", err)
		tg.AnswerCallback(ctx, b, cq.ID, "❌ Could not delete.")
		return
	}
	tg.AnswerCallback(ctx, b, cq.ID, "🗑 Removed")
}
