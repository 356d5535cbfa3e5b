package config

import "time"

const (
	// Remote call timeouts
	RequestTimeout = 90 * time.Second
	SpeechTimeout  = 60 * time.Second
	RenderTimeout  = 30 * time.Second

	// Retry attempts (total attempts, not retries)
	GenerateAttempts = 3
	SpeechAttempts   = 2

	// History sent to the model is capped at this many turns
	HistoryLimit = 25

	// Attachment constraints, checked before any network call
	MaxAttachmentSize = 5 * 1024 * 1024

	// Synthesized audio format
	SpeechSampleRate = 24000
	SpeechChannels   = 1

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Generation parameters
	DefaultTemperature = 0.7
	DefaultTopP        = 0.95

	// Stale in-flight flag cleanup
	StaleRequestCleanup = 60 * time.Second
	StaleRequestAge     = 3 * time.Minute

	// Rate limit (messages per minute per chat)
	RateLimitPerMinute = 6
)

// AllowedAttachmentTypes are the MIME types accepted as inline attachments.
var AllowedAttachmentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"application/pdf",
}

// AllowedVoiceTypes are additionally accepted when the attachment came in
// as a voice message.
var AllowedVoiceTypes = []string{
	"audio/ogg",
	"audio/mpeg",
	"audio/mp4",
}

// Models selectable via /model.
var Models = []struct {
	ID   string
	Name string
	Desc string
}{
	{"gemini-3-pro-preview", "Gemini 3 Pro", "Complex reasoning"},
	{"gemini-3-flash-preview", "Gemini 3 Flash", "Fast & efficient"},
	{"gemini-1.5-pro-preview-0514", "Gemini 1.5 Pro (v0514)", "Large context"},
	{"gemini-2.5-flash-lite-latest", "Gemini 2.5 Lite", "Lightweight"},
}

// Voices selectable via /voice.
var Voices = []string{"Kore", "Puck", "Charon", "Fenrir", "Aoede"}

// SpeechModel is the dedicated TTS model.
const SpeechModel = "gemini-2.5-flash-preview-tts"

func IsKnownModel(id string) bool {
	for _, m := range Models {
		if m.ID == id {
			return true
		}
	}
	return false
}

func IsKnownVoice(name string) bool {
	for _, v := range Voices {
		if v == name {
			return true
		}
	}
	return false
}

// IsAllowedAttachmentType reports whether mime may be sent inline.
func IsAllowedAttachmentType(mime string) bool {
	for _, t := range AllowedAttachmentTypes {
		if t == mime {
			return true
		}
	}
	return false
}

func IsAllowedVoiceType(mime string) bool {
	for _, t := range AllowedVoiceTypes {
		if t == mime {
			return true
		}
	}
	return false
}
