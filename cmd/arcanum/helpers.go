package main

import (
	"fmt"
	"io"

	"github.com/hollyoak/arcanum/internal/config"
	"github.com/hollyoak/arcanum/internal/imagecache"
	"github.com/hollyoak/arcanum/internal/inference/openai"
	"github.com/hollyoak/arcanum/internal/journal"
	"github.com/hollyoak/arcanum/internal/settings"
	"github.com/hollyoak/arcanum/internal/spreads"
	"github.com/hollyoak/arcanum/internal/storage"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// stores bundles the persistent state containers backed by one storage
// backend.
type stores struct {
	backend  storage.Backend
	journal  *journal.Store
	settings *settings.Store
	spreads  *spreads.Store
	images   *imagecache.Store
}

func openStores(cfg *config.Config) (*stores, error) {
	backend, err := cfg.OpenBackend()
	if err != nil {
		return nil, err
	}

	journalStore, err := journal.NewStore(backend)
	if err != nil {
		return nil, fmt.Errorf("journal.NewStore() > %w", err)
	}
	settingsStore, err := settings.NewStore(backend)
	if err != nil {
		return nil, fmt.Errorf("settings.NewStore() > %w", err)
	}
	spreadsStore, err := spreads.NewStore(backend)
	if err != nil {
		return nil, fmt.Errorf("spreads.NewStore() > %w", err)
	}
	imagesStore, err := imagecache.NewStore(backend)
	if err != nil {
		return nil, fmt.Errorf("imagecache.NewStore() > %w", err)
	}

	return &stores{
		backend:  backend,
		journal:  journalStore,
		settings: settingsStore,
		spreads:  spreadsStore,
		images:   imagesStore,
	}, nil
}

func (s *stores) Close() error {
	if closer, ok := s.backend.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func newInferenceClient(cfg *config.Config) (*openai.Client, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.ImageModel, uint(cfg.OpenAI.MaxRetryAttempts)), nil
}
