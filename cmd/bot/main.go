package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	academicengine "github.com/Rich-108/Academic-Engine"
	"github.com/Rich-108/Academic-Engine/internal/audio"
	"github.com/Rich-108/Academic-Engine/internal/config"
	"github.com/Rich-108/Academic-Engine/internal/diagram"
	"github.com/Rich-108/Academic-Engine/internal/gemini"
	"github.com/Rich-108/Academic-Engine/internal/handler"
	"github.com/Rich-108/Academic-Engine/internal/middleware"
	"github.com/Rich-108/Academic-Engine/internal/repository"
	"github.com/Rich-108/Academic-Engine/internal/service"
	"github.com/Rich-108/Academic-Engine/internal/telegram"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := repository.RunMigrations(cfg.DatabaseURL, academicengine.MigrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := repository.NewStore(pool)

	geminiClient := gemini.New(cfg.GeminiAPIKey, cfg.GeminiBaseURL)
	renderer := diagram.NewRenderer(cfg.KrokiURL, diagram.DefaultTheme)
	player := audio.NewPlayer(nil)

	userService := service.NewUserService(store, cfg.DefaultModel, cfg.DefaultVoice)
	usageService := service.NewUsageService(store)
	conversationService := service.NewConversationService(store)
	glossaryService := service.NewGlossaryService(store)
	engine := service.NewEngine(store, geminiClient, usageService)
	speechService := service.NewSpeechService(geminiClient)

	notifier := telegram.NewNotifier(cfg)

	// Handler pointer for use in the default handler closure.
	var h *handler.Handler

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(store),
			middleware.UserLoader(userService, cfg, notifier),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h != nil {
				h.HandleSubmission(ctx, b, update)
			}
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}
	notifier.SetBot(b)

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	h = handler.New(handler.Deps{
		Bot:           b,
		Cfg:           cfg,
		Store:         store,
		Engine:        engine,
		Speech:        speechService,
		Users:         userService,
		Conversations: conversationService,
		Glossary:      glossaryService,
		Usage:         usageService,
		Renderer:      renderer,
		Player:        player,
		Notifier:      notifier,
	})
	h.Register()

	// Crashed requests would otherwise keep their chat locked.
	go func() {
		ticker := time.NewTicker(config.StaleRequestCleanup)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := store.CleanupStaleRequests(context.Background(), config.StaleRequestAge)
				if err != nil {
					slog.Error("cleanup stale requests", "error", err)
				} else if n > 0 {
					slog.Info("cleaned stale requests", "count", n)
				}
			}
		}
	}()

	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	player.StopAll()
	slog.Info("bot stopped gracefully")
}
