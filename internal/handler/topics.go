package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/Rich-108/Academic-Engine/internal/middleware"
	"github.com/Rich-108/Academic-Engine/internal/parse"
	"github.com/Rich-108/Academic-Engine/internal/service"
	tg "github.com/Rich-108/Academic-Engine/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleTopicSelect turns a tapped follow-up topic into a new
// submission. Callback data is "topic:<index>:<answer id>"; the topic
// text is re-read from the stored answer so callback payloads stay
// within the Telegram size limit.
func (h *Handler) handleTopicSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil || cq.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := cq.Message.Message.Chat.ID

	payload := strings.TrimPrefix(cq.Data, tg.CallbackTopic)
	idxStr, answerID, ok := strings.Cut(payload, ":")
	if !ok {
		tg.AnswerCallback(ctx, b, cq.ID, "")
		return
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		tg.AnswerCallback(ctx, b, cq.ID, "")
		return
	}

	var topics []string
	if answerID == seededAnswerID {
		topics = seededTopics
	} else {
		msg, err := h.store.GetMessage(ctx, answerID)
		if err != nil {
			tg.AnswerCallback(ctx, b, cq.ID, "That answer is no longer available.")
			return
		}
		topics = parse.ParseSections(msg.Content).Topics
	}
	if idx < 0 || idx >= len(topics) {
		tg.AnswerCallback(ctx, b, cq.ID, "")
		return
	}
	topic := topics[idx]

	tg.AnswerCallback(ctx, b, cq.ID, "🔎 "+topic)
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "🔎 Digging into: " + topic})

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	answer, err := h.engine.Submit(ctx, user, chatID, service.Submission{
		Text: "Tell me about the concept of: " + topic,
	})
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.sendAnswer(ctx, b, chatID, user.Theme, answer)
}
