package service

import (
	"context"

	"github.com/Rich-108/Academic-Engine/internal/config"
	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/Rich-108/Academic-Engine/internal/repository"
)

type UserService struct {
	store        *repository.Store
	defaultModel string
	defaultVoice string
}

func NewUserService(store *repository.Store, defaultModel, defaultVoice string) *UserService {
	return &UserService{store: store, defaultModel: defaultModel, defaultVoice: defaultVoice}
}

func (s *UserService) FindOrCreate(ctx context.Context, telegramID int64, firstName, username string, isAdmin bool) (*domain.User, bool, error) {
	return s.store.FindOrCreateUser(ctx, repository.NewUserParams{
		TelegramID: telegramID,
		FirstName:  firstName,
		Username:   username,
		IsAdmin:    isAdmin,
		Model:      s.defaultModel,
		Voice:      s.defaultVoice,
	})
}

func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return s.store.GetUserByTelegramID(ctx, telegramID)
}

func (s *UserService) UpdateInfo(ctx context.Context, userID int64, firstName, username string) error {
	return s.store.UpdateUserInfo(ctx, userID, firstName, username)
}

func (s *UserService) TouchLastInteraction(ctx context.Context, userID int64) error {
	return s.store.TouchLastInteraction(ctx, userID)
}

func (s *UserService) MarkOnboardingSeen(ctx context.Context, userID int64) error {
	return s.store.MarkOnboardingSeen(ctx, userID)
}

// SetModel validates the model name against the known catalog before
// persisting it.
func (s *UserService) SetModel(ctx context.Context, userID int64, model string) error {
	if !config.IsKnownModel(model) {
		return domain.ErrUnknownModel
	}
	return s.store.UpdateUserModel(ctx, userID, model)
}

func (s *UserService) SetVoice(ctx context.Context, userID int64, voice string) error {
	if !config.IsKnownVoice(voice) {
		return domain.ErrUnknownVoice
	}
	return s.store.UpdateUserVoice(ctx, userID, voice)
}

func (s *UserService) SetTheme(ctx context.Context, userID int64, theme string) error {
	return s.store.UpdateUserTheme(ctx, userID, theme)
}
