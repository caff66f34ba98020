package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/ai/gemini"
	"github.com/spigell/talentscout/internal/ai/groq"
	"github.com/spigell/talentscout/internal/questions"
	"github.com/spigell/talentscout/internal/secrets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// addProviderFlags registers the overrides shared by commands that call a text generation service.
func addProviderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("provider", "p", "", "text generation provider: gemini, groq or none")
	cmd.Flags().StringP("output-dir", "o", "", "directory for candidate records")
}

func applyFlagOverrides(cmd *cobra.Command, config *Config) {
	if flag := cmd.Flags().Lookup("provider"); flag != nil && flag.Changed {
		config.AI.Provider = flag.Value.String()
	}
	if flag := cmd.Flags().Lookup("output-dir"); flag != nil && flag.Changed {
		config.OutputDir = flag.Value.String()
	}
}

func newTextGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.TextGenerator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", ai.ProviderGemini:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
		}

		genLogger := logger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))
		return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)

	case ai.ProviderGroq:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "groq api key",
			Value: cfg.Groq.APIKey,
			File:  cfg.Groq.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.groq.api-key-file, GROQ_API_KEY_FILE or GROQ_API_KEY)", err)
		}

		return groq.NewClient(apiKey, cfg.Groq.Model,
			groq.WithBaseURL(cfg.Groq.BaseURL),
			groq.WithLogger(logger),
		)

	case ai.ProviderNone:
		return ai.Unavailable{}, nil

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// newQuestionGenerator never fails: without a usable provider the static question lists are served.
func newQuestionGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) *questions.Generator {
	text, err := newTextGenerator(ctx, cfg, logger)
	if err != nil {
		logger.Warn("text generation is disabled, fallback questions will be used", zap.Error(err))
		text = nil
	}

	return questions.New(text, logger,
		questions.WithTemperature(cfg.Temperature),
		questions.WithMaxTokens(cfg.MaxTokens),
	)
}
