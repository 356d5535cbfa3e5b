package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Rich-108/Academic-Engine/internal/audio"
	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/Rich-108/Academic-Engine/internal/middleware"
	tg "github.com/Rich-108/Academic-Engine/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// audioUpload delivers a decoded clip to a chat as a playable audio
// message. Stop cancels an upload still in flight; a finished upload
// cannot be recalled.
type audioUpload struct {
	bot    *bot.Bot
	chatID int64
	name   string
}

type uploadHandle struct {
	cancel context.CancelFunc
}

func (h *uploadHandle) Stop() { h.cancel() }

func (u *audioUpload) Start(clip audio.Clip, onDone func()) (audio.Handle, error) {
	ctx, cancel := context.WithCancel(context.Background())
	wav := audio.EncodeWAV(clip.PCM, clip.SampleRate, clip.Channels)

	go func() {
		err := tg.SendAudioBytes(ctx, u.bot, u.chatID, u.name, wav, "")
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				slog.Error("failed to send audio", "chat_id", u.chatID, "error", err)
			}
			return
		}
		onDone()
	}()

	return &uploadHandle{cancel: cancel}, nil
}

func (h *Handler) handleSpeak(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil || cq.Message.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := cq.Message.Message.Chat.ID
	answerID := strings.TrimPrefix(cq.Data, tg.CallbackSpeak)

	tg.AnswerCallback(ctx, b, cq.ID, "🔊 Synthesizing...")

	msg, err := h.store.GetMessage(ctx, answerID)
	if err != nil || msg.Role != domain.RoleAssistant {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ That answer is no longer available."})
		return
	}

	clip, err := h.speech.Speak(ctx, msg.Content, user.Voice)
	if err != nil {
		if errors.Is(err, domain.ErrNoSpeech) {
			b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "There is nothing speakable in that answer."})
			return
		}
		slog.Error("speech synthesis failed", "chat_id", chatID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: "❌ Could not synthesize speech. Try again."})
		return
	}

	sink := &audioUpload{bot: b, chatID: chatID, name: "answer-" + answerID + ".wav"}
	if _, err := h.player.PlayOn(sink, clip); err != nil {
		slog.Error("playback failed", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) handleStopPlayback(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil {
		return
	}
	h.player.StopAll()
	tg.AnswerCallback(ctx, b, cq.ID, "⏹ Stopped")
}
