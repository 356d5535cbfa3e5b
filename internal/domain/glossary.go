package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GlossaryEntry is a saved term/definition pair owned by one user.
type GlossaryEntry struct {
	ID         int64
	UserID     int64
	Term       string
	Definition string
	CreatedAt  time.Time
}

// UsageRecord captures the token spend of a single generation request.
type UsageRecord struct {
	ID               int64
	UserID           int64
	Model            string
	PromptTokens     int
	CompletionTokens int
	Cost             decimal.Decimal
	CreatedAt        time.Time
}
