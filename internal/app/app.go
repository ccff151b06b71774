package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"trustlens/internal/config"
	"trustlens/internal/fetch"
	"trustlens/internal/textprep"
	"trustlens/pkg/moderation"
)

// App wires configuration, the per-concern analyzers, the classifier, and
// the content fetcher. One instance serves the CLI and the HTTP server.
type App struct {
	Config     *config.Config
	Classifier *moderation.Classifier
	Analyzers  map[string]*moderation.ModelAnalyzer
	Fetcher    fetch.Fetcher

	gemini *moderation.GeminiProvider
}

func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &App{Config: cfg}

	providers, err := app.buildProviders(cfg)
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		log.Info("no remote model configured, running in keyword-fallback mode")
	}

	timeout := time.Duration(cfg.Analysis.TimeoutSeconds) * time.Second
	excerptFn := textprep.ExcerptFn(cfg.Analysis.MaxPromptSentences)

	specs := moderation.DefaultConcernSpecs()
	app.Analyzers = make(map[string]*moderation.ModelAnalyzer, len(specs))
	analyzers := make([]moderation.Analyzer, 0, len(specs))
	for _, spec := range specs {
		analyzer := moderation.NewModelAnalyzer(spec, providers, timeout)
		analyzer.ExcerptFn = excerptFn
		app.Analyzers[spec.Name] = analyzer
		analyzers = append(analyzers, analyzer)
	}
	app.Classifier = moderation.NewClassifier(analyzers, nil)

	app.Fetcher = fetch.New(
		time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second,
		int64(cfg.Fetch.MaxBodyBytes),
	)

	log.Info("application initialization complete")
	return app, nil
}

// buildProviders assembles the remote provider chain in priority order:
// Cerebras, then OpenAI, then Gemini. Providers without an API key are
// simply absent from the chain.
func (a *App) buildProviders(cfg *config.Config) ([]moderation.ModelProvider, error) {
	var providers []moderation.ModelProvider

	if cfg.Analysis.Cerebras.APIKey != "" {
		p, err := moderation.NewOpenAIProvider(
			cfg.Analysis.Cerebras.APIKey,
			cfg.Analysis.Cerebras.BaseURL,
			cfg.Analysis.Cerebras.Model,
			"cerebras",
		)
		if err != nil {
			return nil, fmt.Errorf("init cerebras provider: %w", err)
		}
		providers = append(providers, p)
	}

	if cfg.Analysis.OpenAI.APIKey != "" {
		p, err := moderation.NewOpenAIProvider(
			cfg.Analysis.OpenAI.APIKey,
			cfg.Analysis.OpenAI.BaseURL,
			cfg.Analysis.OpenAI.Model,
			"openai",
		)
		if err != nil {
			return nil, fmt.Errorf("init openai provider: %w", err)
		}
		providers = append(providers, p)
	}

	if cfg.Analysis.Gemini.APIKey != "" {
		p, err := moderation.NewGeminiProvider(context.Background(),
			cfg.Analysis.Gemini.APIKey, cfg.Analysis.Gemini.Model)
		if err != nil {
			return nil, fmt.Errorf("init gemini provider: %w", err)
		}
		a.gemini = p
		providers = append(providers, p)
	}

	return providers, nil
}

// Close releases provider connections.
func (a *App) Close() {
	if a.gemini != nil {
		if err := a.gemini.Close(); err != nil {
			log.Warnf("closing gemini client: %v", err)
		}
	}
}
