package cmd

import (
	"context"
	"fmt"

	"github.com/dnlam/staff-matcher/internal/ai"
	"github.com/dnlam/staff-matcher/internal/ai/gemini"
	"github.com/dnlam/staff-matcher/internal/ai/local"
	"github.com/dnlam/staff-matcher/internal/hrapi"
	"github.com/dnlam/staff-matcher/internal/pipeline"
	"github.com/dnlam/staff-matcher/internal/profiling"
	"github.com/dnlam/staff-matcher/internal/recommend"
	"github.com/dnlam/staff-matcher/internal/requirement"
	"github.com/dnlam/staff-matcher/internal/secrets"
	"go.uber.org/zap"
)

// matcher bundles everything a matching run needs. HR data is cached per
// run, so every call builds a fresh pipeline around the shared client.
type matcher struct {
	hr        *hrapi.Client
	parser    *requirement.Parser
	profiler  *profiling.Profiler
	evaluator ai.MatchEvaluator
	cfg       *pipeline.Config
	logger    *zap.Logger
}

func buildMatcher(ctx context.Context, config *Config, logger *zap.Logger) (*matcher, error) {
	hrCfg, err := resolveHRConfig(config)
	if err != nil {
		return nil, err
	}

	geminiCfg := &GeminiConfig{}
	if config.AI != nil && config.AI.Gemini != nil {
		geminiCfg = config.AI.Gemini
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: geminiCfg.APIKey,
		File:  geminiCfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading gemini api key: %w", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model, geminiCfg.MaxRetries, logger)
	if err != nil {
		return nil, fmt.Errorf("creating gemini generator: %w", err)
	}

	matching := &MatchingConfig{}
	if config.Matching != nil {
		matching = config.Matching
	}

	summarizer := ai.NewFailoverSummarizer(
		gemini.NewSummarizer(generator, logger, matching.CallTimeout),
		local.NewSummarizer(),
		logger,
	)
	evaluator := ai.NewFailoverEvaluator(
		gemini.NewEvaluator(generator, logger, matching.CallTimeout),
		local.NewEvaluator(),
		logger,
	)

	return &matcher{
		hr:        hrapi.New(ctx, logger, *hrCfg),
		parser:    requirement.NewParser(generator, logger, geminiCfg.MaxLogLength),
		profiler:  profiling.New(summarizer, logger, matching.BatchSize, matching.MaxParallelBatches),
		evaluator: evaluator,
		cfg: &pipeline.Config{
			MinimumScore:      matching.MinimumMatchScore,
			MaxBookedHours:    matching.MaxBookedHours,
			BookingWindowDays: matching.BookingWindowDays,
		},
		logger: logger,
	}, nil
}

func (m *matcher) match(ctx context.Context, description string, ignoreAvailability bool) (*recommend.Outcome, error) {
	cfg := *m.cfg
	cfg.IgnoreAvailability = ignoreAvailability

	p := pipeline.New(&cfg, pipeline.Deps{
		Parser:    m.parser,
		HR:        hrapi.NewCache(m.hr),
		Bookings:  m.hr,
		Profiler:  m.profiler,
		Evaluator: m.evaluator,
		Logger:    m.logger,
	})

	return p.Run(ctx, description)
}

func resolveHRConfig(config *Config) (*hrapi.Config, error) {
	hr := &HRConfig{}
	if config.HR != nil {
		hr = config.HR
	}

	insiderToken, err := secrets.Load(secrets.Source{
		Name: "insider api token",
		File: hr.InsiderTokenFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading insider api token: %w", err)
	}

	empInfoToken, err := secrets.Load(secrets.Source{
		Name: "empinfo api token",
		File: hr.EmpInfoTokenFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading empinfo api token: %w", err)
	}

	return &hrapi.Config{
		InsiderURL:   hr.InsiderURL,
		EmpInfoURL:   hr.EmpInfoURL,
		InsiderToken: insiderToken,
		EmpInfoToken: empInfoToken,
		UserAgent:    hr.UserAgent,
		PlannerID:    hr.PlannerID,
		Timeout:      hr.Timeout,
	}, nil
}
