package arena

import (
	"context"
	"fmt"

	"wolfarena/internal/config"
	"wolfarena/internal/game"
	"wolfarena/internal/oracle"
)

// NewOracle builds the configured text-generation provider, wrapped in a
// process-wide throttle when a rate limit is set.
func NewOracle(ctx context.Context, cfg config.OracleSettings) (game.Oracle, error) {
	var gen oracle.Generator

	switch cfg.Provider {
	case "azure":
		gen = oracle.NewAzure(oracle.Config{
			Endpoint:   cfg.Azure.Endpoint,
			APIKey:     cfg.Azure.APIKey,
			Deployment: cfg.Azure.Deployment,
			APIVersion: cfg.Azure.APIVersion,
		})
	case "gemini":
		g, err := oracle.NewGemini(ctx, oracle.GeminiConfig{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		})
		if err != nil {
			return nil, err
		}
		gen = g
	case "script":
		// Offline dry runs: every unmatched prompt exercises the
		// engine's fallback policy.
		gen = &oracle.Script{}
	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Provider)
	}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		gen = oracle.Throttle(gen, cfg.RateLimit, burst)
	}

	return gen, nil
}
