package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Rich-108/Academic-Engine/internal/config"
	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/go-telegram/bot"
)

// DownloadAttachment fetches a Telegram file by id, capped at the
// attachment size limit. The MIME type is sniffed from the payload when
// the caller has none from the update.
func DownloadAttachment(ctx context.Context, b *bot.Bot, fileID, declaredMime string) (*domain.Attachment, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	if file.FileSize > config.MaxAttachmentSize {
		return nil, domain.ErrAttachmentTooLarge
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.FileDownloadLink(file), nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, config.MaxAttachmentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file data: %w", err)
	}
	if len(data) > config.MaxAttachmentSize {
		return nil, domain.ErrAttachmentTooLarge
	}

	mime := declaredMime
	if mime == "" {
		mime = http.DetectContentType(data)
	}

	return &domain.Attachment{Data: data, MimeType: mime}, nil
}
