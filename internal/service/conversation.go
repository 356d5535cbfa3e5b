package service

import (
	"context"

	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/Rich-108/Academic-Engine/internal/repository"
)

type ConversationService struct {
	store *repository.Store
}

func NewConversationService(store *repository.Store) *ConversationService {
	return &ConversationService{store: store}
}

// Reset abandons the current conversation so the next submission starts
// with empty history.
func (s *ConversationService) Reset(ctx context.Context, userID int64) (*domain.Conversation, error) {
	return s.store.ResetConversation(ctx, userID)
}

func (s *ConversationService) History(ctx context.Context, userID int64, limit int) ([]domain.Message, error) {
	conv, err := s.store.GetOrCreateConversation(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListRecentMessages(ctx, conv.ID, limit)
}
