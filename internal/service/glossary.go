package service

import (
	"context"
	"strings"

	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/Rich-108/Academic-Engine/internal/repository"
)

type GlossaryService struct {
	store *repository.Store
}

func NewGlossaryService(store *repository.Store) *GlossaryService {
	return &GlossaryService{store: store}
}

// Save stores a term with its definition. Terms are case-preserving but
// trimmed; duplicates surface as domain.ErrGlossaryDuplicate.
func (s *GlossaryService) Save(ctx context.Context, userID int64, term, definition string) (*domain.GlossaryEntry, error) {
	term = strings.TrimSpace(term)
	definition = strings.TrimSpace(definition)
	if term == "" || definition == "" {
		return nil, domain.ErrEmptySubmission
	}
	return s.store.AddGlossaryEntry(ctx, userID, term, definition)
}

func (s *GlossaryService) List(ctx context.Context, userID int64) ([]domain.GlossaryEntry, error) {
	return s.store.ListGlossary(ctx, userID)
}

func (s *GlossaryService) Delete(ctx context.Context, userID, entryID int64) error {
	return s.store.DeleteGlossaryEntry(ctx, userID, entryID)
}
