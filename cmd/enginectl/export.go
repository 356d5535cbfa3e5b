package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/Rich-108/Academic-Engine/internal/repository"
	"github.com/spf13/cobra"
)

type exportMessage struct {
	ID             string    `json:"id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	AttachmentMime string    `json:"attachmentMime,omitempty"`
	AttachmentSize int       `json:"attachmentSize,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type exportDocument struct {
	ConversationID int64           `json:"conversationId"`
	TelegramID     int64           `json:"telegramId"`
	Messages       []exportMessage `json:"messages"`
}

func exportCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "export <telegram-id>",
		Short: "Export a user's current conversation as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			telegramID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid telegram id %q", args[0])
			}

			cfg, err := loadCLIConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			ctx := cmd.Context()

			pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()
			store := repository.NewStore(pool)

			user, err := store.GetUserByTelegramID(ctx, telegramID)
			if err != nil {
				return fmt.Errorf("lookup user: %w", err)
			}
			conv, err := store.GetCurrentConversation(ctx, user.ID)
			if err != nil {
				if errors.Is(err, domain.ErrConversationNotFound) {
					return fmt.Errorf("user %d has no conversation yet", telegramID)
				}
				return fmt.Errorf("conversation: %w", err)
			}
			messages, err := store.ListRecentMessages(ctx, conv.ID, limit)
			if err != nil {
				return fmt.Errorf("messages: %w", err)
			}

			doc := exportDocument{
				ConversationID: conv.ID,
				TelegramID:     telegramID,
				Messages:       make([]exportMessage, 0, len(messages)),
			}
			for _, m := range messages {
				em := exportMessage{
					ID:        m.ID,
					Role:      m.Role,
					Content:   m.Content,
					CreatedAt: m.CreatedAt,
				}
				if m.Attachment != nil {
					em.AttachmentMime = m.Attachment.MimeType
					em.AttachmentSize = len(m.Attachment.Data)
				}
				doc.Messages = append(doc.Messages, em)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 200, "maximum messages to export")
	return cmd
}
