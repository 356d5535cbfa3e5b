package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/Rich-108/Academic-Engine/internal/config"
	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/Rich-108/Academic-Engine/internal/gemini"
)

type fakeStore struct {
	active    map[int64]bool
	messages  []domain.Message
	history   []domain.Message
	activeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{active: map[int64]bool{}}
}

func (f *fakeStore) TrySetActiveRequest(_ context.Context, chatID int64) (bool, error) {
	if f.activeErr != nil {
		return false, f.activeErr
	}
	if f.active[chatID] {
		return false, nil
	}
	f.active[chatID] = true
	return true, nil
}

func (f *fakeStore) RemoveActiveRequest(_ context.Context, chatID int64) error {
	delete(f.active, chatID)
	return nil
}

func (f *fakeStore) GetOrCreateConversation(_ context.Context, userID int64) (*domain.Conversation, error) {
	return &domain.Conversation{ID: 1, UserID: userID}, nil
}

func (f *fakeStore) AppendMessage(_ context.Context, m *domain.Message) error {
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeStore) ListRecentMessages(_ context.Context, _ int64, _ int) ([]domain.Message, error) {
	return f.history, nil
}

func (f *fakeStore) RecordUsage(_ context.Context, _ *domain.UsageRecord) error {
	return nil
}

type fakeGenerator struct {
	calls  int
	inputs []gemini.GenerateInput
	result *gemini.GenerateResult
	errs   []error
}

func (f *fakeGenerator) Generate(_ context.Context, in gemini.GenerateInput) (*gemini.GenerateResult, error) {
	f.calls++
	f.inputs = append(f.inputs, in)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.result, nil
}

const structuredResponse = "1. THE CORE PRINCIPLE\nGravity pulls.\n2. MENTAL MODEL (ANALOGY)\nA bowling ball on a trampoline.\n3. THE DIRECT ANSWER\nMass curves spacetime.\n4. CONCEPT MAP\nNo diagram here.\nDEEP_LEARNING_TOPICS General Relativity, Tides, Orbits"

func testUser() *domain.User {
	return &domain.User{ID: 7, TelegramID: 100, SelectedModel: "gemini-3-flash-preview"}
}

func TestSubmitSuccess(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{result: &gemini.GenerateResult{
		Text:  structuredResponse,
		Usage: gemini.Usage{PromptTokenCount: 10, CandidatesTokenCount: 50},
	}}
	e := NewEngine(store, gen, nil)

	ans, err := e.Submit(context.Background(), testUser(), 100, Submission{Text: "why do planets orbit?"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(ans.Parsed.Sections) != 4 {
		t.Errorf("sections = %d, want 4", len(ans.Parsed.Sections))
	}
	if len(ans.Parsed.Topics) != 3 {
		t.Errorf("topics = %v, want 3 entries", ans.Parsed.Topics)
	}
	if len(store.messages) != 2 {
		t.Fatalf("persisted %d messages, want user + assistant", len(store.messages))
	}
	if store.messages[0].Role != domain.RoleUser || store.messages[1].Role != domain.RoleAssistant {
		t.Errorf("roles = %s, %s", store.messages[0].Role, store.messages[1].Role)
	}
	if store.active[100] {
		t.Error("request slot not released")
	}

	in := gen.inputs[0]
	if in.Model != "gemini-3-flash-preview" {
		t.Errorf("model = %q", in.Model)
	}
	if in.SystemInstruction == "" {
		t.Error("system instruction missing")
	}
}

func TestSubmitEmpty(t *testing.T) {
	e := NewEngine(newFakeStore(), &fakeGenerator{}, nil)
	_, err := e.Submit(context.Background(), testUser(), 100, Submission{Text: "   "})
	if !errors.Is(err, domain.ErrEmptySubmission) {
		t.Errorf("err = %v, want ErrEmptySubmission", err)
	}
}

func TestSubmitAttachmentValidation(t *testing.T) {
	e := NewEngine(newFakeStore(), &fakeGenerator{}, nil)

	big := &domain.Attachment{MimeType: "image/png", Data: make([]byte, config.MaxAttachmentSize+1)}
	_, err := e.Submit(context.Background(), testUser(), 100, Submission{Text: "x", Attachment: big})
	if !errors.Is(err, domain.ErrAttachmentTooLarge) {
		t.Errorf("err = %v, want ErrAttachmentTooLarge", err)
	}

	exe := &domain.Attachment{MimeType: "application/x-executable", Data: []byte{1}}
	_, err = e.Submit(context.Background(), testUser(), 100, Submission{Text: "x", Attachment: exe})
	if !errors.Is(err, domain.ErrAttachmentUnsupported) {
		t.Errorf("err = %v, want ErrAttachmentUnsupported", err)
	}
}

func TestSubmitInFlightGuard(t *testing.T) {
	store := newFakeStore()
	store.active[100] = true
	e := NewEngine(store, &fakeGenerator{}, nil)

	_, err := e.Submit(context.Background(), testUser(), 100, Submission{Text: "x"})
	if !errors.Is(err, domain.ErrRequestInFlight) {
		t.Errorf("err = %v, want ErrRequestInFlight", err)
	}
}

func TestSubmitRetriesTransientFailure(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{
		result: &gemini.GenerateResult{Text: structuredResponse},
		errs: []error{
			&gemini.APIError{StatusCode: http.StatusServiceUnavailable, Message: "overloaded"},
			nil,
		},
	}
	e := NewEngine(store, gen, nil)

	_, err := e.Submit(context.Background(), testUser(), 100, Submission{Text: "x"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls)
	}
}

func TestSubmitEmptyModelText(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{result: &gemini.GenerateResult{Text: "  \n "}}
	e := NewEngine(store, gen, nil)

	_, err := e.Submit(context.Background(), testUser(), 100, Submission{Text: "x"})
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
	if store.active[100] {
		t.Error("request slot not released after failure")
	}
}

func TestBuildContentsNormalization(t *testing.T) {
	history := []domain.Message{
		{Role: domain.RoleAssistant, Content: "stray opener"},
		{Role: domain.RoleUser, Content: "first question"},
		{Role: domain.RoleAssistant, Content: "first answer"},
		{Role: domain.RoleAssistant, Content: "correction"},
		{Role: domain.RoleUser, Content: "second question"},
	}

	contents := buildContents(history, Submission{Text: "third question"})

	if contents[0].Role != "user" {
		t.Fatalf("leading role = %q, want user after dropping stray model turn", contents[0].Role)
	}
	// assistant+assistant merged, trailing user turns merged with the new one
	if len(contents) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(contents), contents)
	}
	if contents[1].Role != "model" {
		t.Errorf("role = %q, want model", contents[1].Role)
	}
	if !strings.Contains(contents[1].Parts[0].Text, "first answer\n\ncorrection") {
		t.Errorf("merged model turn = %q", contents[1].Parts[0].Text)
	}
	if !strings.Contains(contents[2].Parts[0].Text, "second question\n\nthird question") {
		t.Errorf("merged user turn = %q", contents[2].Parts[0].Text)
	}
}

func TestBuildContentsAttachmentOnCurrentTurn(t *testing.T) {
	history := []domain.Message{
		{Role: domain.RoleUser, Content: "prior", Attachment: &domain.Attachment{MimeType: "image/png", Data: []byte{1, 2}}},
		{Role: domain.RoleAssistant, Content: "answer"},
	}
	att := &domain.Attachment{MimeType: "image/jpeg", Data: []byte{3, 4}}

	contents := buildContents(history, Submission{Text: "now", Attachment: att})

	for _, p := range contents[0].Parts {
		if p.InlineData != nil {
			t.Error("historical attachment was resent")
		}
	}
	last := contents[len(contents)-1]
	if len(last.Parts) != 2 || last.Parts[1].InlineData == nil {
		t.Fatalf("current turn missing inline data: %+v", last.Parts)
	}
	if last.Parts[1].InlineData.MimeType != "image/jpeg" {
		t.Errorf("mime = %q", last.Parts[1].InlineData.MimeType)
	}
}

func TestBuildContentsTruncates(t *testing.T) {
	var history []domain.Message
	for i := 0; i < 40; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		history = append(history, domain.Message{Role: role, Content: "turn"})
	}

	contents := buildContents(history, Submission{Text: "new"})

	if len(contents) > config.HistoryLimit+1 {
		t.Errorf("len = %d, want <= %d", len(contents), config.HistoryLimit+1)
	}
	if contents[0].Role != "user" {
		t.Errorf("leading role = %q after truncation", contents[0].Role)
	}
}
