package gemini

import (
	"context"
	"net/http"

	"github.com/Rich-108/Academic-Engine/internal/config"
)

// Synthesize requests spoken audio for text. The response is base64-encoded
// 16-bit little-endian PCM, mono, 24 kHz. An empty payload is an error so
// callers never start a garbled playback.
func (c *Client) Synthesize(ctx context.Context, text, voice string) (string, error) {
	req := generateRequest{
		Contents: []Content{{Parts: []Part{{Text: text}}}},
		GenerationConfig: &GenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &SpeechConfig{
				VoiceConfig: VoiceConfig{
					PrebuiltVoiceConfig: PrebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
	}

	var resp generateResponse
	if err := c.post(ctx, config.SpeechModel, &req, &resp); err != nil {
		return "", err
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return part.InlineData.Data, nil
			}
		}
	}

	return "", &APIError{
		StatusCode: http.StatusOK,
		Status:     "EMPTY",
		Message:    "no audio payload returned",
	}
}
