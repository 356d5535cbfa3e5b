package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the single data-access type. Queries are hand-written; every
// method maps rows straight onto domain types.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const userColumns = `id, telegram_id, first_name, username, is_admin,
	selected_model, voice, theme, onboarding_seen,
	last_interaction, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.TelegramID, &u.FirstName, &u.Username, &u.IsAdmin,
		&u.SelectedModel, &u.Voice, &u.Theme, &u.OnboardingSeen,
		&u.LastInteraction, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// NewUserParams carries the initial settings applied on first contact.
type NewUserParams struct {
	TelegramID int64
	FirstName  string
	Username   string
	IsAdmin    bool
	Model      string
	Voice      string
}

// FindOrCreateUser returns the existing user for telegramID or inserts a
// new one. The second result reports whether a row was created.
func (s *Store) FindOrCreateUser(ctx context.Context, p NewUserParams) (*domain.User, bool, error) {
	u, err := s.GetUserByTelegramID(ctx, p.TelegramID)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO users (telegram_id, first_name, username, is_admin, selected_model, voice)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (telegram_id) DO UPDATE SET first_name = EXCLUDED.first_name
		RETURNING `+userColumns,
		p.TelegramID, p.FirstName, p.Username, p.IsAdmin, p.Model, p.Voice)
	u, err = scanUser(row)
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return u, true, nil
}

func (s *Store) UpdateUserInfo(ctx context.Context, userID int64, firstName, username string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE users SET first_name = $2, username = $3, updated_at = now()
		WHERE id = $1`, userID, firstName, username)
	if err != nil {
		return fmt.Errorf("update user info: %w", err)
	}
	return nil
}

func (s *Store) UpdateUserModel(ctx context.Context, userID int64, model string) error {
	return s.updateSetting(ctx, userID, "selected_model", model)
}

func (s *Store) UpdateUserVoice(ctx context.Context, userID int64, voice string) error {
	return s.updateSetting(ctx, userID, "voice", voice)
}

func (s *Store) UpdateUserTheme(ctx context.Context, userID int64, theme string) error {
	return s.updateSetting(ctx, userID, "theme", theme)
}

func (s *Store) updateSetting(ctx context.Context, userID int64, column, value string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET `+column+` = $2, updated_at = now() WHERE id = $1`,
		userID, value)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	return nil
}

func (s *Store) MarkOnboardingSeen(ctx context.Context, userID int64) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET onboarding_seen = TRUE, updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("mark onboarding seen: %w", err)
	}
	return nil
}

func (s *Store) TouchLastInteraction(ctx context.Context, userID int64) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET last_interaction = now() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("touch last interaction: %w", err)
	}
	return nil
}

// GetCurrentConversation returns the user's current conversation without
// creating one; domain.ErrConversationNotFound when the user has none.
func (s *Store) GetCurrentConversation(ctx context.Context, userID int64) (*domain.Conversation, error) {
	var c domain.Conversation
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, created_at, updated_at FROM conversations
		WHERE user_id = $1 ORDER BY id DESC LIMIT 1`, userID).
		Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &c, nil
}

// GetOrCreateConversation returns the user's current conversation,
// creating one on first contact.
func (s *Store) GetOrCreateConversation(ctx context.Context, userID int64) (*domain.Conversation, error) {
	c, err := s.GetCurrentConversation(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, domain.ErrConversationNotFound) {
		return nil, err
	}

	var created domain.Conversation
	err = s.db.QueryRow(ctx, `
		INSERT INTO conversations (user_id) VALUES ($1)
		RETURNING id, user_id, created_at, updated_at`, userID).
		Scan(&created.ID, &created.UserID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return &created, nil
}

// ResetConversation starts a fresh conversation for the user; appended
// history stays behind under the old conversation id.
func (s *Store) ResetConversation(ctx context.Context, userID int64) (*domain.Conversation, error) {
	var c domain.Conversation
	err := s.db.QueryRow(ctx, `
		INSERT INTO conversations (user_id) VALUES ($1)
		RETURNING id, user_id, created_at, updated_at`, userID).
		Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("reset conversation: %w", err)
	}
	return &c, nil
}

func (s *Store) AppendMessage(ctx context.Context, m *domain.Message) error {
	var mime *string
	var data []byte
	if m.Attachment != nil {
		mime = &m.Attachment.MimeType
		data = m.Attachment.Data
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, attachment_mime, attachment_data)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.ConversationID, m.Role, m.Content, mime, data)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`UPDATE conversations SET updated_at = now() WHERE id = $1`, m.ConversationID)
	if err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	return nil
}

func (s *Store) GetMessage(ctx context.Context, id string) (*domain.Message, error) {
	var m domain.Message
	var mime *string
	var data []byte
	err := s.db.QueryRow(ctx, `
		SELECT id, conversation_id, role, content, attachment_mime, attachment_data, created_at
		FROM messages WHERE id = $1`, id).
		Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &mime, &data, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	if mime != nil {
		m.Attachment = &domain.Attachment{MimeType: *mime, Data: data}
	}
	return &m, nil
}

// ListRecentMessages returns up to limit most recent messages of the
// conversation in chronological order.
func (s *Store) ListRecentMessages(ctx context.Context, conversationID int64, limit int) ([]domain.Message, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, conversation_id, role, content, attachment_mime, attachment_data, created_at
		FROM (
			SELECT id, conversation_id, role, content, attachment_mime, attachment_data, created_at, seq
			FROM messages WHERE conversation_id = $1
			ORDER BY seq DESC LIMIT $2
		) recent ORDER BY seq ASC`,
		conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		var mime *string
		var data []byte
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &mime, &data, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if mime != nil {
			m.Attachment = &domain.Attachment{MimeType: *mime, Data: data}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}

func (s *Store) AddGlossaryEntry(ctx context.Context, userID int64, term, definition string) (*domain.GlossaryEntry, error) {
	var e domain.GlossaryEntry
	err := s.db.QueryRow(ctx, `
		INSERT INTO glossary_entries (user_id, term, definition)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, term, definition, created_at`,
		userID, term, definition).
		Scan(&e.ID, &e.UserID, &e.Term, &e.Definition, &e.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrGlossaryDuplicate
		}
		return nil, fmt.Errorf("add glossary entry: %w", err)
	}
	return &e, nil
}

func (s *Store) ListGlossary(ctx context.Context, userID int64) ([]domain.GlossaryEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, term, definition, created_at
		FROM glossary_entries WHERE user_id = $1 ORDER BY term`, userID)
	if err != nil {
		return nil, fmt.Errorf("list glossary: %w", err)
	}
	defer rows.Close()

	var out []domain.GlossaryEntry
	for rows.Next() {
		var e domain.GlossaryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Term, &e.Definition, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan glossary entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate glossary: %w", err)
	}
	return out, nil
}

func (s *Store) DeleteGlossaryEntry(ctx context.Context, userID, entryID int64) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM glossary_entries WHERE id = $1 AND user_id = $2`, entryID, userID)
	if err != nil {
		return fmt.Errorf("delete glossary entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGlossaryNotFound
	}
	return nil
}

func (s *Store) RecordUsage(ctx context.Context, rec *domain.UsageRecord) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO usage_log (user_id, model, prompt_tokens, completion_tokens, cost)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.UserID, rec.Model, rec.PromptTokens, rec.CompletionTokens, rec.Cost)
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

func (s *Store) ListUsage(ctx context.Context, userID int64, limit int) ([]domain.UsageRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, model, prompt_tokens, completion_tokens, cost, created_at
		FROM usage_log WHERE user_id = $1 ORDER BY id DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list usage: %w", err)
	}
	defer rows.Close()

	var out []domain.UsageRecord
	for rows.Next() {
		var r domain.UsageRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Model, &r.PromptTokens, &r.CompletionTokens, &r.Cost, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usage record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage: %w", err)
	}
	return out, nil
}

// TrySetActiveRequest records that a request is in flight for chatID.
// It returns false without error when one is already recorded.
func (s *Store) TrySetActiveRequest(ctx context.Context, chatID int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO active_requests (chat_id) VALUES ($1)
		ON CONFLICT (chat_id) DO NOTHING`, chatID)
	if err != nil {
		return false, fmt.Errorf("set active request: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) RemoveActiveRequest(ctx context.Context, chatID int64) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM active_requests WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("remove active request: %w", err)
	}
	return nil
}

// CleanupStaleRequests drops in-flight markers older than maxAge. Crashed
// or interrupted requests would otherwise lock their chat out forever.
func (s *Store) CleanupStaleRequests(ctx context.Context, maxAge time.Duration) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM active_requests WHERE created_at < now() - $1::interval`,
		fmt.Sprintf("%d seconds", int(maxAge.Seconds())))
	if err != nil {
		return 0, fmt.Errorf("cleanup stale requests: %w", err)
	}
	return tag.RowsAffected(), nil
}

// AllowRequest enforces the per-chat rate limit by counting requests in
// the current minute window.
func (s *Store) AllowRequest(ctx context.Context, chatID int64, limit int) (bool, error) {
	window := time.Now().UTC().Truncate(time.Minute)
	var count int
	err := s.db.QueryRow(ctx, `
		INSERT INTO rate_limits (chat_id, window_start, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (chat_id, window_start) DO UPDATE SET count = rate_limits.count + 1
		RETURNING count`,
		chatID, window).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	return count <= limit, nil
}
