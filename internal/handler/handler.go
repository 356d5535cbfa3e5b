// Package handler implements the bot commands and callbacks: the main
// tutoring flow, speech playback, topic follow-ups, glossary and
// settings.
package handler

import (
	"github.com/Rich-108/Academic-Engine/internal/audio"
	"github.com/Rich-108/Academic-Engine/internal/config"
	"github.com/Rich-108/Academic-Engine/internal/diagram"
	"github.com/Rich-108/Academic-Engine/internal/repository"
	"github.com/Rich-108/Academic-Engine/internal/service"
	"github.com/Rich-108/Academic-Engine/internal/telegram"
	"github.com/go-telegram/bot"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot           *bot.Bot
	cfg           *config.Config
	store         *repository.Store
	engine        *service.Engine
	speech        *service.SpeechService
	users         *service.UserService
	conversations *service.ConversationService
	glossary      *service.GlossaryService
	usage         *service.UsageService
	renderer      *diagram.Renderer
	player        *audio.Player
	notifier      *telegram.Notifier
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot           *bot.Bot
	Cfg           *config.Config
	Store         *repository.Store
	Engine        *service.Engine
	Speech        *service.SpeechService
	Users         *service.UserService
	Conversations *service.ConversationService
	Glossary      *service.GlossaryService
	Usage         *service.UsageService
	Renderer      *diagram.Renderer
	Player        *audio.Player
	Notifier      *telegram.Notifier
}

func New(deps Deps) *Handler {
	return &Handler{
		bot:           deps.Bot,
		cfg:           deps.Cfg,
		store:         deps.Store,
		engine:        deps.Engine,
		speech:        deps.Speech,
		users:         deps.Users,
		conversations: deps.Conversations,
		glossary:      deps.Glossary,
		usage:         deps.Usage,
		renderer:      deps.Renderer,
		player:        deps.Player,
		notifier:      deps.Notifier,
	}
}
