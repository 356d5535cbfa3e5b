package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rich-108/Academic-Engine/internal/middleware"
	tg "github.com/Rich-108/Academic-Engine/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const welcomeText = `👋 *Welcome!*

Ask me anything you want to truly understand. Every answer comes back in four parts:

1. The core principle behind it
2. A mental model to hang it on
3. The direct answer
4. A concept map of how it fits together

You can also send an image or a PDF with your question. After each answer, tap a suggested topic to keep digging, or 🔊 to hear it read aloud.`

// seededAnswerID marks topic callbacks that come from the welcome
// message rather than a stored answer.
const seededAnswerID = "start"

// seededTopics give a brand-new user something to tap before they have
// asked anything.
var seededTopics = []string{
	"Why is the sky blue?",
	"How does compound interest work?",
	"What is entropy?",
}

const helpText = `*Commands*

/reset — start a fresh conversation
/model — choose the model
/voice — choose the reading voice
/theme — switch concept maps between light and dark
/glossary — your saved terms
/remember term — definition — save a term
/help — this message

Anything else you send is treated as a question.`

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	var rows [][]models.InlineKeyboardButton
	for i, topic := range seededTopics {
		rows = append(rows, tg.ButtonRow(tg.InlineButton("🔎 "+topic,
			fmt.Sprintf("%s%d:%s", tg.CallbackTopic, i, seededAnswerID))))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        welcomeText,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: tg.InlineKeyboard(rows...),
	})

	user := middleware.GetUser(ctx)
	if user == nil || user.OnboardingSeen {
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      "💡 Tap a topic above, or just type any question.",
		ParseMode: models.ParseModeMarkdownV1,
	})
	if err := h.users.MarkOnboardingSeen(ctx, user.ID); err != nil {
		slog.Error("failed to mark onboarding", "user_id", user.ID, "error", err)
	}
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      helpText,
		ParseMode: models.ParseModeMarkdownV1,
	})
}

func (h *Handler) handleReset(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if _, err := h.conversations.Reset(ctx, user.ID); err != nil {
		slog.Error("failed to reset conversation", "user_id", user.ID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ Could not reset the conversation."})
		return
	}
	h.player.StopAll()
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "🧹 Conversation cleared. Ask away."})
}
