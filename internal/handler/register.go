package handler

import (
	"github.com/Rich-108/Academic-Engine/internal/telegram"
	"github.com/go-telegram/bot"
)

// Register wires all command and callback handlers onto the bot.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleHelp)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/reset", bot.MatchTypePrefix, h.handleReset)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/model", bot.MatchTypePrefix, h.handleModel)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/voice", bot.MatchTypePrefix, h.handleVoice)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/theme", bot.MatchTypePrefix, h.handleTheme)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/glossary", bot.MatchTypePrefix, h.handleGlossary)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/remember", bot.MatchTypePrefix, h.handleRemember)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, h.handleStats)

	// Callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackTopic, bot.MatchTypePrefix, h.handleTopicSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackSpeak, bot.MatchTypePrefix, h.handleSpeak)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackStopWord, bot.MatchTypeExact, h.handleStopPlayback)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackModel, bot.MatchTypePrefix, h.handleModelSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackVoice, bot.MatchTypePrefix, h.handleVoiceSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackGlossDel, bot.MatchTypePrefix, h.handleGlossaryDelete)
}
