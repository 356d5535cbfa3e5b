package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Rich-108/Academic-Engine/internal/middleware"
	tg "github.com/Rich-108/Academic-Engine/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (h *Handler) handleModel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        "🤖 Choose a model:",
		ReplyMarkup: tg.ModelKeyboard(user.SelectedModel),
	})
}

func (h *Handler) handleModelSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil || cq.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	model := strings.TrimPrefix(cq.Data, tg.CallbackModel)

	if err := h.users.SetModel(ctx, user.ID, model); err != nil {
		slog.Error("failed to set model", "user_id", user.ID, "model", model, "error", err)
		tg.AnswerCallback(ctx, b, cq.ID, "❌ Could not switch model.")
		return
	}
	tg.AnswerCallback(ctx, b, cq.ID, "✅ "+model)

	msg := cq.Message.Message
	b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		ReplyMarkup: tg.ModelKeyboard(model),
	})
}

// handleTheme toggles the concept-map palette between light and dark.
func (h *Handler) handleTheme(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	next := "dark"
	if user.Theme == "dark" {
		next = "light"
	}
	if err := h.users.SetTheme(ctx, user.ID, next); err != nil {
		slog.Error("failed to set theme", "user_id", user.ID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ Could not switch theme."})
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "🎨 Concept maps will now use the " + next + " theme."})
}

func (h *Handler) handleVoice(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        "🗣 Choose a reading voice:",
		ReplyMarkup: tg.VoiceKeyboard(user.Voice),
	})
}

func (h *Handler) handleVoiceSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil || cq.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	voice := strings.TrimPrefix(cq.Data, tg.CallbackVoice)

	if err := h.users.SetVoice(ctx, user.ID, voice); err != nil {
		slog.Error("failed to set voice", "user_id", user.ID, "voice", voice, "error", err)
		tg.AnswerCallback(ctx, b, cq.ID, "❌ Could not switch voice.")
		return
	}
	tg.AnswerCallback(ctx, b, cq.ID, "✅ "+voice)

	msg := cq.Message.Message
	b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		ReplyMarkup: tg.VoiceKeyboard(voice),
	})
}
