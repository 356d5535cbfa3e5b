package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rich-108/Academic-Engine/internal/config"
	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/Rich-108/Academic-Engine/internal/gemini"
	"github.com/Rich-108/Academic-Engine/internal/parse"
	"github.com/Rich-108/Academic-Engine/internal/retry"
	"github.com/google/uuid"
)

// systemInstruction steers the model into the structured tutoring format
// the rest of the pipeline parses.
const systemInstruction = `You are an expert tutor who explains concepts from first principles.

Structure EVERY response in exactly four numbered sections, each starting on its own line with these exact headers:
1. THE CORE PRINCIPLE
2. MENTAL MODEL (ANALOGY)
3. THE DIRECT ANSWER
4. CONCEPT MAP

In section 4, when the logic can be drawn, include a single Mermaid diagram describing the relationships between the key concepts. If the logic is not diagrammable, write the section as short prose instead.

After the last section, end the response with a single line containing the marker DEEP_LEARNING_TOPICS followed by a comma-separated list of exactly three related topics the student could explore next. The marker must be the final line of the response.`

// Generator is the text-generation dependency of the engine.
type Generator interface {
	Generate(ctx context.Context, in gemini.GenerateInput) (*gemini.GenerateResult, error)
}

// EngineStore is the slice of the repository the engine touches.
type EngineStore interface {
	TrySetActiveRequest(ctx context.Context, chatID int64) (bool, error)
	RemoveActiveRequest(ctx context.Context, chatID int64) error
	GetOrCreateConversation(ctx context.Context, userID int64) (*domain.Conversation, error)
	AppendMessage(ctx context.Context, m *domain.Message) error
	ListRecentMessages(ctx context.Context, conversationID int64, limit int) ([]domain.Message, error)
	RecordUsage(ctx context.Context, rec *domain.UsageRecord) error
}

// Engine orchestrates one tutoring exchange: validation, in-flight
// guarding, history shaping, the retried model call, persistence and
// parsing of the structured response.
type Engine struct {
	store EngineStore
	gen   Generator
	usage *UsageService
}

func NewEngine(store EngineStore, gen Generator, usage *UsageService) *Engine {
	return &Engine{store: store, gen: gen, usage: usage}
}

// Submission is one user turn: text, an optional attachment, or both.
type Submission struct {
	Text       string
	Attachment *domain.Attachment
}

// Answer is the processed result of one exchange.
type Answer struct {
	MessageID string
	Raw       string
	Parsed    parse.Parsed
	Usage     gemini.Usage
}

func (e *Engine) Submit(ctx context.Context, user *domain.User, chatID int64, sub Submission) (*Answer, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	ok, err := e.store.TrySetActiveRequest(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("acquire request slot: %w", err)
	}
	if !ok {
		return nil, domain.ErrRequestInFlight
	}
	defer func() {
		if err := e.store.RemoveActiveRequest(context.WithoutCancel(ctx), chatID); err != nil {
			slog.Error("failed to release request slot", "chat_id", chatID, "error", err)
		}
	}()

	conv, err := e.store.GetOrCreateConversation(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	history, err := e.store.ListRecentMessages(ctx, conv.ID, config.HistoryLimit*2)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		Role:           domain.RoleUser,
		Content:        sub.Text,
		Attachment:     sub.Attachment,
	}
	if err := e.store.AppendMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	contents := buildContents(history, sub)

	model := user.SelectedModel
	if model == "" {
		model = config.Models[1].ID
	}

	result, err := retry.Do(ctx, config.GenerateAttempts, func(ctx context.Context) (*gemini.GenerateResult, error) {
		return e.gen.Generate(ctx, gemini.GenerateInput{
			Model:             model,
			Contents:          contents,
			SystemInstruction: systemInstruction,
			Temperature:       config.DefaultTemperature,
			TopP:              config.DefaultTopP,
		})
	})
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(result.Text)
	if raw == "" {
		return nil, domain.ErrEmptyResponse
	}

	answerMsg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		Role:           domain.RoleAssistant,
		Content:        raw,
	}
	if err := e.store.AppendMessage(ctx, answerMsg); err != nil {
		return nil, err
	}

	if e.usage != nil {
		if err := e.usage.Record(ctx, user.ID, model, result.Usage); err != nil {
			slog.Error("failed to record usage", "user_id", user.ID, "error", err)
		}
	}

	return &Answer{
		MessageID: answerMsg.ID,
		Raw:       raw,
		Parsed:    parse.ParseSections(raw),
		Usage:     result.Usage,
	}, nil
}

func validateSubmission(sub Submission) error {
	if strings.TrimSpace(sub.Text) == "" && sub.Attachment == nil {
		return domain.ErrEmptySubmission
	}
	if sub.Attachment != nil {
		if len(sub.Attachment.Data) > config.MaxAttachmentSize {
			return domain.ErrAttachmentTooLarge
		}
		mime := sub.Attachment.MimeType
		if !config.IsAllowedAttachmentType(mime) && !config.IsAllowedVoiceType(mime) {
			return domain.ErrAttachmentUnsupported
		}
	}
	return nil
}

// buildContents shapes the stored history plus the new turn into the wire
// sequence the model accepts: assistant turns become "model", consecutive
// same-role turns are merged, the sequence starts with a user turn and is
// capped at the history limit. Stored attachments are not resent; only
// the current turn carries inline data.
func buildContents(history []domain.Message, sub Submission) []gemini.Content {
	var contents []gemini.Content
	for _, m := range history {
		role := m.Role
		if role == domain.RoleAssistant {
			role = "model"
		}
		text := m.Content
		if n := len(contents); n > 0 && contents[n-1].Role == role {
			prev := &contents[n-1].Parts[0]
			prev.Text = prev.Text + "\n\n" + text
			continue
		}
		contents = append(contents, gemini.Content{
			Role:  role,
			Parts: []gemini.Part{{Text: text}},
		})
	}

	contents = dropLeadingNonUser(contents)
	if len(contents) > config.HistoryLimit {
		contents = contents[len(contents)-config.HistoryLimit:]
		contents = dropLeadingNonUser(contents)
	}

	turn := gemini.Content{Role: "user", Parts: []gemini.Part{{Text: sub.Text}}}
	if sub.Attachment != nil {
		turn.Parts = append(turn.Parts, gemini.Part{InlineData: &gemini.InlineData{
			MimeType: sub.Attachment.MimeType,
			Data:     base64.StdEncoding.EncodeToString(sub.Attachment.Data),
		}})
	}
	if n := len(contents); n > 0 && contents[n-1].Role == "user" {
		prev := &contents[n-1]
		prev.Parts[0].Text = prev.Parts[0].Text + "\n\n" + sub.Text
		if sub.Attachment != nil {
			prev.Parts = append(prev.Parts, turn.Parts[1])
		}
	} else {
		contents = append(contents, turn)
	}

	return contents
}

func dropLeadingNonUser(contents []gemini.Content) []gemini.Content {
	for len(contents) > 0 && contents[0].Role != "user" {
		contents = contents[1:]
	}
	return contents
}
