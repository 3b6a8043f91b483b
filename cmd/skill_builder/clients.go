package main

import (
	"context"
	"fmt"

	"github.com/peopleprotocol/skill-builder/internal/config"
	"github.com/peopleprotocol/skill-builder/internal/lightcast"
	"github.com/peopleprotocol/skill-builder/internal/llm"
)

// loadConfig reads and validates the environment configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newTaxonomy builds the Lightcast gateway from the configuration.
func newTaxonomy(cfg *config.Config) (*lightcast.Gateway, error) {
	if cfg.LightcastClientID == "" || cfg.LightcastClientSecret == "" {
		return nil, fmt.Errorf("LIGHTCAST_CLIENT_ID and LIGHTCAST_CLIENT_SECRET environment variables are required")
	}
	return lightcast.New(cfg.LightcastClientID, cfg.LightcastClientSecret, nil), nil
}

// newCompletion builds the configured completion client.
func newCompletion(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	client, err := llm.NewClient(ctx, cfg.CompletionConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}
	return client, nil
}
