package telegram

import (
	"fmt"

	"github.com/Rich-108/Academic-Engine/internal/config"
	"github.com/Rich-108/Academic-Engine/internal/domain"
	"github.com/go-telegram/bot/models"
)

// Callback data prefixes. Payload follows the colon.
const (
	CallbackTopic    = "topic:"
	CallbackSpeak    = "speak:"
	CallbackStopWord = "stop"
	CallbackModel    = "model:"
	CallbackVoice    = "voice:"
	CallbackGlossDel = "glossdel:"
)

func InlineButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: callbackData}
}

func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func ButtonRow(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

// AnswerKeyboard is attached to every structured answer: one row of
// follow-up topic buttons plus a speak action bound to the answer id.
func AnswerKeyboard(topics []string, answerID string) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for i, topic := range topics {
		label := topic
		if r := []rune(label); len(r) > 40 {
			label = string(r[:40]) + "..."
		}
		rows = append(rows, ButtonRow(InlineButton("🔎 "+label, fmt.Sprintf("%s%d:%s", CallbackTopic, i, answerID))))
	}
	rows = append(rows, ButtonRow(InlineButton("🔊 Listen", CallbackSpeak+answerID)))
	return InlineKeyboard(rows...)
}

func ModelKeyboard(selected string) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, m := range config.Models {
		label := fmt.Sprintf("%s — %s", m.Name, m.Desc)
		if m.ID == selected {
			label = "✅ " + label
		}
		rows = append(rows, ButtonRow(InlineButton(label, CallbackModel+m.ID)))
	}
	return InlineKeyboard(rows...)
}

func VoiceKeyboard(selected string) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, v := range config.Voices {
		label := v
		if v == selected {
			label = "✅ " + label
		}
		rows = append(rows, ButtonRow(InlineButton(label, CallbackVoice+v)))
	}
	return InlineKeyboard(rows...)
}

// GlossaryKeyboard lists one delete button per saved entry.
func GlossaryKeyboard(entries []domain.GlossaryEntry) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, e := range entries {
		label := e.Term
		if r := []rune(label); len(r) > 30 {
			label = string(r[:30]) + "..."
		}
		rows = append(rows, ButtonRow(InlineButton("🗑 "+label, fmt.Sprintf("%s%d", CallbackGlossDel, e.ID))))
	}
	return InlineKeyboard(rows...)
}
