// Package audio decodes synthesized PCM speech and manages playback
// sessions over a pluggable output sink.
package audio

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/Rich-108/Academic-Engine/internal/config"
)

// Clip is one decoded audio buffer: normalized float samples plus the raw
// PCM bytes for container encoding.
type Clip struct {
	SampleRate int
	Channels   int
	Samples    []float32
	PCM        []byte
}

// Frames is the per-channel frame count.
func (c Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

func (c Clip) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// DecodePCM16 converts a base64 payload of 16-bit signed little-endian PCM
// into a Clip at the synthesis sample rate. Each sample is normalized to
// [-1, 1] by dividing by 32768. An odd byte count means a truncated stream
// and is rejected so no partial audio is ever played.
func DecodePCM16(b64 string) (Clip, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return Clip{}, fmt.Errorf("decode base64 audio: %w", err)
	}
	if len(raw) == 0 {
		return Clip{}, fmt.Errorf("empty audio payload")
	}
	if len(raw)%2 != 0 {
		return Clip{}, fmt.Errorf("truncated pcm16 stream: %d bytes", len(raw))
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		s := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float32(s) / 32768.0
	}

	return Clip{
		SampleRate: config.SpeechSampleRate,
		Channels:   config.SpeechChannels,
		Samples:    samples,
		PCM:        raw,
	}, nil
}
