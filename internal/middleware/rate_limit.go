package middleware

import (
	"context"
	"log/slog"

	"github.com/Rich-108/Academic-Engine/internal/config"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// RateLimiter is the storage dependency of the rate limit middleware.
type RateLimiter interface {
	AllowRequest(ctx context.Context, chatID int64, limit int) (bool, error)
}

// RateLimit returns middleware that enforces the per-minute message
// budget. Callback queries pass through; only fresh messages count.
func RateLimit(limiter RateLimiter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			allowed, err := limiter.AllowRequest(ctx, chatID, config.RateLimitPerMinute)
			if err != nil {
				// storage trouble should not lock users out
				slog.Error("rate limit check failed", "error", err, "chat_id", chatID)
				next(ctx, b, update)
				return
			}

			if !allowed {
				slog.Debug("rate limited", "chat_id", chatID)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Too many requests. Give it a moment.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
