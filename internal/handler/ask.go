package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rich-108/Academic-Engine/internal/diagram"
	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/Rich-108/Academic-Engine/internal/gemini"
	"github.com/Rich-108/Academic-Engine/internal/middleware"
	"github.com/Rich-108/Academic-Engine/internal/parse"
	"github.com/Rich-108/Academic-Engine/internal/service"
	tg "github.com/Rich-108/Academic-Engine/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleSubmission is the default handler: any non-command private
// message becomes a tutoring request.
func (h *Handler) HandleSubmission(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}
	msg := update.Message
	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := msg.Chat.ID

	sub, err := h.buildSubmission(ctx, b, msg)
	if err != nil {
		h.sendError(ctx, b, chatID, err)
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	status, serr := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "🧠 Thinking..."})
	if serr != nil {
		slog.Debug("failed to send status message", "chat_id", chatID, "error", serr)
		status = nil
	}

	answer, err := h.engine.Submit(ctx, user, chatID, sub)
	if err != nil {
		if status != nil {
			if eerr := tg.EditLongMessage(ctx, b, chatID, status.ID, h.errorText(err, chatID)); eerr == nil {
				return
			}
		}
		h.sendError(ctx, b, chatID, err)
		return
	}

	if status != nil {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: status.ID})
	}
	h.sendAnswer(ctx, b, chatID, user.Theme, answer)
}

// buildSubmission extracts text and an optional attachment from the
// incoming message.
func (h *Handler) buildSubmission(ctx context.Context, b *bot.Bot, msg *models.Message) (service.Submission, error) {
	sub := service.Submission{Text: msg.Text}

	switch {
	case len(msg.Photo) > 0:
		// largest variant is last
		photo := msg.Photo[len(msg.Photo)-1]
		att, err := tg.DownloadAttachment(ctx, b, photo.FileID, "image/jpeg")
		if err != nil {
			return sub, err
		}
		sub.Attachment = att
		sub.Text = msg.Caption
	case msg.Document != nil:
		att, err := tg.DownloadAttachment(ctx, b, msg.Document.FileID, msg.Document.MimeType)
		if err != nil {
			return sub, err
		}
		sub.Attachment = att
		sub.Text = msg.Caption
	case msg.Voice != nil:
		mime := msg.Voice.MimeType
		if mime == "" {
			mime = "audio/ogg"
		}
		att, err := tg.DownloadAttachment(ctx, b, msg.Voice.FileID, mime)
		if err != nil {
			return sub, err
		}
		sub.Attachment = att
		sub.Text = "Answer the question asked in this voice message."
	}

	return sub, nil
}

// sendAnswer renders the parsed answer: the prose sections as one long
// message with follow-up buttons, plus the concept map as a photo when
// one was extracted.
func (h *Handler) sendAnswer(ctx context.Context, b *bot.Bot, chatID int64, theme string, answer *service.Answer) {
	text := formatSections(answer.Parsed)
	markup := tg.AnswerKeyboard(answer.Parsed.Topics, answer.MessageID)

	if err := tg.SendLongMessage(ctx, b, chatID, text, markup); err != nil {
		slog.Error("failed to send answer", "chat_id", chatID, "error", err)
		return
	}

	if answer.Parsed.DiagramSource == "" {
		return
	}
	res := h.renderer.RenderThemed(ctx, answer.Parsed.DiagramSource, diagram.ThemeFor(theme))
	if res.Failed {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "🗺 " + res.Placeholder})
		return
	}
	if err := tg.SendPhotoBytes(ctx, b, chatID, "concept-map-"+res.ID+".png", res.Image, "Concept map", nil); err != nil {
		slog.Error("failed to send diagram", "chat_id", chatID, "error", err)
	}
}

func formatSections(p parse.Parsed) string {
	if len(p.Sections) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, s := range p.Sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if s.Label != "" {
			sb.WriteString("*" + s.Label + "*\n")
		}
		sb.WriteString(s.Body)
	}
	return sb.String()
}

func (h *Handler) sendError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: h.errorText(err, chatID)})
}

// errorText maps an error to the user-facing message. Provider error
// text is never surfaced directly.
func (h *Handler) errorText(err error, chatID int64) string {
	text := "❌ Something went wrong. Please try again."

	switch {
	case errors.Is(err, domain.ErrEmptySubmission):
		text = "Send a question as text, or attach an image or PDF."
	case errors.Is(err, domain.ErrRequestInFlight):
		text = "⏳ Still working on your previous question."
	case errors.Is(err, domain.ErrAttachmentTooLarge):
		text = "❌ Attachment is too large (5 MB max)."
	case errors.Is(err, domain.ErrAttachmentUnsupported):
		text = "❌ Unsupported file type. Send JPEG, PNG, WebP or PDF."
	case errors.Is(err, domain.ErrEmptyResponse):
		text = "❌ The model returned nothing. Try rephrasing."
	default:
		switch gemini.Categorize(err) {
		case gemini.CategoryRateLimited:
			text = "⏳ The model is overloaded right now. Try again in a minute."
		case gemini.CategoryContentFiltered:
			text = "❌ That request was blocked by the safety filter."
		case gemini.CategoryUnauthorized:
			text = "❌ The service is misconfigured. The operator has been notified."
			h.notifier.NotifyError(err, "gemini auth")
		case gemini.CategoryConnectivity:
			text = "❌ Can't reach the model right now. Try again shortly."
		default:
			slog.Error("submission failed", "chat_id", chatID, "error", err)
			h.notifier.NotifyError(err, fmt.Sprintf("submission chat %d", chatID))
		}
	}

	return text
}
