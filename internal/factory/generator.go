package factory

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/config"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/genai"
)

// NewGenerator creates the text-generation collaborator, or nil when no API
// key is configured. A nil generator is a supported mode: the planner and
// chat services fall back to their rule-based paths.
func NewGenerator(cfg *config.Config, log zerolog.Logger) genai.Generator {
	gen, err := genai.NewOpenRouter(genai.OpenRouterConfig{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.OpenRouterBaseURL,
		Timeout: time.Duration(cfg.GenTimeoutSeconds) * time.Second,
	})
	if err != nil {
		if errors.Is(err, genai.ErrNotConfigured) {
			log.Info().Msg("no OpenRouter API key set; language features run rule-based")
		} else {
			log.Warn().Err(err).Msg("openrouter client unavailable; language features run rule-based")
		}
		return nil
	}

	log.Debug().
		Str("chat_model", cfg.ChatModel).
		Str("extraction_model", cfg.ExtractionModel).
		Msg("text generator configured")
	return gen
}
