package service

import (
	"context"

	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/Rich-108/Academic-Engine/internal/gemini"
	"github.com/Rich-108/Academic-Engine/internal/repository"
	"github.com/shopspring/decimal"
)

// modelPricing maps model id to USD per 1M tokens (prompt, completion).
// Unknown models fall back to the flash tier.
var modelPricing = map[string][2]decimal.Decimal{
	"gemini-3-pro-preview":         {decimal.NewFromFloat(1.25), decimal.NewFromFloat(10.0)},
	"gemini-3-flash-preview":       {decimal.NewFromFloat(0.30), decimal.NewFromFloat(2.50)},
	"gemini-1.5-pro-preview-0514":  {decimal.NewFromFloat(1.25), decimal.NewFromFloat(5.0)},
	"gemini-2.5-flash-lite-latest": {decimal.NewFromFloat(0.10), decimal.NewFromFloat(0.40)},
}

var defaultPricing = [2]decimal.Decimal{decimal.NewFromFloat(0.30), decimal.NewFromFloat(2.50)}

var tokensPerPrice = decimal.NewFromInt(1_000_000)

type UsageService struct {
	store *repository.Store
}

func NewUsageService(store *repository.Store) *UsageService {
	return &UsageService{store: store}
}

func (s *UsageService) Record(ctx context.Context, userID int64, model string, usage gemini.Usage) error {
	return s.store.RecordUsage(ctx, &domain.UsageRecord{
		UserID:           userID,
		Model:            model,
		PromptTokens:     usage.PromptTokenCount,
		CompletionTokens: usage.CandidatesTokenCount,
		Cost:             ComputeCost(model, usage),
	})
}

func (s *UsageService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.UsageRecord, error) {
	return s.store.ListUsage(ctx, userID, limit)
}

// ComputeCost prices one request. Decimal arithmetic keeps sub-cent
// amounts exact across aggregation.
func ComputeCost(model string, usage gemini.Usage) decimal.Decimal {
	pricing, ok := modelPricing[model]
	if !ok {
		pricing = defaultPricing
	}
	prompt := decimal.NewFromInt(int64(usage.PromptTokenCount)).Mul(pricing[0]).Div(tokensPerPrice)
	completion := decimal.NewFromInt(int64(usage.CandidatesTokenCount)).Mul(pricing[1]).Div(tokensPerPrice)
	return prompt.Add(completion)
}
