package domain

import "errors"

var (
	ErrEmptySubmission       = errors.New("empty submission")
	ErrRequestInFlight       = errors.New("request already in flight")
	ErrAttachmentTooLarge    = errors.New("attachment exceeds size limit")
	ErrAttachmentUnsupported = errors.New("unsupported attachment type")
	ErrNoSpeech              = errors.New("no speakable content")
	ErrEmptyResponse         = errors.New("model returned no content")
	ErrUserNotFound          = errors.New("user not found")
	ErrConversationNotFound  = errors.New("conversation not found")
	ErrMessageNotFound       = errors.New("message not found")
	ErrGlossaryDuplicate     = errors.New("term already in glossary")
	ErrGlossaryNotFound      = errors.New("glossary entry not found")
	ErrUnknownModel          = errors.New("unknown model")
	ErrUnknownVoice          = errors.New("unknown voice")
)
