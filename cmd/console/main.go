package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/chronicler/internal/config"
	"github.com/jwebster45206/chronicler/internal/engine"
	"github.com/jwebster45206/chronicler/internal/logger"
	"github.com/jwebster45206/chronicler/internal/services"
	"github.com/jwebster45206/chronicler/pkg/i18n"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintf(os.Stderr, "GEMINI_API_KEY is not set. Export it and try again.\n")
		} else {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		}
		os.Exit(1)
	}

	log := logger.Setup(cfg)

	story := services.NewGeminiService(cfg.APIKey, cfg.TextModel, cfg.TextTimeout, log)
	images := services.NewImagenService(cfg.APIKey, cfg.ImageModel, cfg.ImageTimeout, log)

	eng := engine.New(story, images, i18n.Match(cfg.Locale), log)

	if cfg.RedisURL != "" {
		cache := services.NewRedisService(cfg.RedisURL, log)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cache.Ping(ctx); err != nil {
			log.Warn("Image cache unavailable, continuing without it", "error", err)
		} else {
			eng = eng.WithCache(cache)
			defer func() {
				_ = cache.Close()
			}()
		}
		cancel()
	}

	p := tea.NewProgram(NewConsoleUI(eng),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
