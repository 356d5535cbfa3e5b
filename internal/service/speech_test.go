package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/Rich-108/Academic-Engine/internal/domain"
)

type fakeTTS struct {
	gotText  string
	gotVoice string
	payload  string
	err      error
}

func (f *fakeTTS) Synthesize(_ context.Context, text, voice string) (string, error) {
	f.gotText = text
	f.gotVoice = voice
	if f.err != nil {
		return "", f.err
	}
	return f.payload, nil
}

func TestSpeakStripsStructure(t *testing.T) {
	// one int16 sample, little-endian
	tts := &fakeTTS{payload: base64.StdEncoding.EncodeToString([]byte{0x00, 0x40})}
	s := NewSpeechService(tts)

	clip, err := s.Speak(context.Background(), "1. THE CORE PRINCIPLE\nGravity pulls.\nDEEP_LEARNING_TOPICS A, B, C", "Puck")
	if err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if tts.gotText != "Gravity pulls." {
		t.Errorf("synthesized text = %q", tts.gotText)
	}
	if tts.gotVoice != "Puck" {
		t.Errorf("voice = %q", tts.gotVoice)
	}
	if len(clip.Samples) != 1 {
		t.Errorf("samples = %d, want 1", len(clip.Samples))
	}
}

func TestSpeakNothingToSay(t *testing.T) {
	s := NewSpeechService(&fakeTTS{})
	_, err := s.Speak(context.Background(), "DEEP_LEARNING_TOPICS A, B", "Kore")
	if !errors.Is(err, domain.ErrNoSpeech) {
		t.Errorf("err = %v, want ErrNoSpeech", err)
	}
}

func TestSpeakDefaultVoice(t *testing.T) {
	tts := &fakeTTS{payload: base64.StdEncoding.EncodeToString([]byte{0x00, 0x40})}
	s := NewSpeechService(tts)

	if _, err := s.Speak(context.Background(), "plain prose", ""); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if tts.gotVoice != "Kore" {
		t.Errorf("voice = %q, want default Kore", tts.gotVoice)
	}
}

func TestSpeakWAV(t *testing.T) {
	tts := &fakeTTS{payload: base64.StdEncoding.EncodeToString([]byte{0x00, 0x40, 0x00, 0x20})}
	s := NewSpeechService(tts)

	wav, clip, err := s.SpeakWAV(context.Background(), "plain prose", "Kore")
	if err != nil {
		t.Fatalf("SpeakWAV: %v", err)
	}
	if string(wav[:4]) != "RIFF" {
		t.Errorf("wav header = %q", wav[:4])
	}
	if clip.Frames() != 2 {
		t.Errorf("frames = %d, want 2", clip.Frames())
	}
}
