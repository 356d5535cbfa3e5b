package service

import (
	"context"
	"strings"

	"github.com/Rich-108/Academic-Engine/internal/audio"
	"github.com/Rich-108/Academic-Engine/internal/config"
	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/Rich-108/Academic-Engine/internal/parse"
	"github.com/Rich-108/Academic-Engine/internal/retry"
)

// Synthesizer is the text-to-speech dependency.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) (string, error)
}

// SpeechService turns a structured response into a playable clip:
// headers, markup and the topic marker are stripped, the remaining prose
// is synthesized and the PCM payload decoded.
type SpeechService struct {
	tts Synthesizer
}

func NewSpeechService(tts Synthesizer) *SpeechService {
	return &SpeechService{tts: tts}
}

func (s *SpeechService) Speak(ctx context.Context, responseText, voice string) (audio.Clip, error) {
	text := parse.CleanForSpeech(responseText)
	if strings.TrimSpace(text) == "" {
		return audio.Clip{}, domain.ErrNoSpeech
	}
	if voice == "" {
		voice = config.Voices[0]
	}

	ctx, cancel := context.WithTimeout(ctx, config.SpeechTimeout)
	defer cancel()

	payload, err := retry.Do(ctx, config.SpeechAttempts, func(ctx context.Context) (string, error) {
		return s.tts.Synthesize(ctx, text, voice)
	})
	if err != nil {
		return audio.Clip{}, err
	}

	return audio.DecodePCM16(payload)
}

// SpeakWAV wraps Speak and containers the clip for transports that
// cannot play raw PCM.
func (s *SpeechService) SpeakWAV(ctx context.Context, responseText, voice string) ([]byte, audio.Clip, error) {
	clip, err := s.Speak(ctx, responseText, voice)
	if err != nil {
		return nil, audio.Clip{}, err
	}
	wav := audio.EncodeWAV(clip.PCM, clip.SampleRate, clip.Channels)
	return wav, clip, nil
}
