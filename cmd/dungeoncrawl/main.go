// Package main is the entry point for DungeonCrawl.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeoncrawl/internal/config"
	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/storage/sqlite"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/ui"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_DUNGEONCRAWL_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	var telemetryCfg telemetry.Config
	if err := config.ParseEnv(&telemetryCfg); err != nil {
		log.Fatalf("Invalid telemetry config: %v", err)
	}
	cfg := game.DefaultConfig()
	if err := config.ParseEnv(&cfg); err != nil {
		log.Fatalf("Invalid game config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, telemetryCfg)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
		// Continue without telemetry - game still works
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	if err := run(ctx, cfg); err != nil {
		log.Printf("Game error: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg game.Config) error {
	catalog, err := game.LoadCatalog()
	if err != nil {
		return err
	}

	opts := []game.Option{game.WithCatalog(catalog)}
	if cfg.SavePath != "" {
		store, err := sqlite.Open(cfg.SavePath)
		if err != nil {
			log.Printf("Warning: saves disabled: %v", err)
		} else {
			defer store.Close()
			opts = append(opts, game.WithPersistence(game.NewSlotStore(store, cfg.SaveSlot, catalog)))
		}
	}

	engine, err := game.NewEngine(cfg, opts...)
	if err != nil {
		return err
	}
	log.Printf("Seed: %d", engine.Seed())

	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	renderer := ui.NewRenderer(screen)
	g := game.New(engine, renderer, ui.NewInput(screen, renderer))

	err = g.Run(ctx)
	if errors.Is(err, ui.ErrInterrupted) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
