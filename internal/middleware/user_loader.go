package middleware

import (
	"context"
	"log/slog"

	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/Rich-108/Academic-Engine/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type ctxKey string

const userKey ctxKey = "user"

// GetUser extracts the loaded user from the handler context.
func GetUser(ctx context.Context) *domain.User {
	u, ok := ctx.Value(userKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// UserLoader returns middleware that resolves the sender into a stored
// user and places it on the context for handlers downstream.
func UserLoader(users *service.UserService, cfg interface{ IsAdmin(int64) bool }, notifier interface {
	NotifyRegistration(telegramID int64, name, username string)
}) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User
			if update.Message != nil {
				from = update.Message.From
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}
			if from == nil {
				next(ctx, b, update)
				return
			}

			user, created, err := users.FindOrCreate(ctx, from.ID, from.FirstName, from.Username, cfg.IsAdmin(from.ID))
			if err != nil {
				slog.Error("failed to load user", "telegram_id", from.ID, "error", err)
				next(ctx, b, update)
				return
			}

			if created && notifier != nil {
				notifier.NotifyRegistration(from.ID, from.FirstName, from.Username)
			}
			if err := users.TouchLastInteraction(ctx, user.ID); err != nil {
				slog.Debug("failed to touch last interaction", "user_id", user.ID, "error", err)
			}

			next(context.WithValue(ctx, userKey, user), b, update)
		}
	}
}
