package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "embed"

	"github.com/dnlam/staff-matcher/internal/ai"
	"github.com/dnlam/staff-matcher/internal/util"
	"go.uber.org/zap"
)

//go:embed profile_prompt.md
var profilePrompt string

const defaultCallTimeout = 60 * time.Second

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// Summarizer turns a batch of prepared employees into profiles with a
// single Gemini request.
type Summarizer struct {
	generator contentGenerator
	logger    *zap.Logger
	timeout   time.Duration
}

func NewSummarizer(generator contentGenerator, logger *zap.Logger, timeout time.Duration) *Summarizer {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &Summarizer{
		generator: generator,
		logger:    logger,
		timeout:   timeout,
	}
}

func (s *Summarizer) SummarizeBatch(ctx context.Context, batch []ai.ProfileRequest) ([]*ai.EmployeeProfile, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.GenerateContent(ctx, profilePrompt, combineProfiles(batch))
	if err != nil {
		return nil, fmt.Errorf("summarize batch of %d: %w", len(batch), err)
	}

	profiles, err := s.parseProfiles(raw)
	if err != nil {
		return nil, err
	}

	// Additional skills never reach the model as structured data, so
	// they are re-attached from the request by employee code.
	additional := make(map[string][]string, len(batch))
	for _, req := range batch {
		additional[req.EmpCode] = req.AdditionalSkills
	}
	for _, profile := range profiles {
		profile.AdditionalSkills = additional[profile.EmpCode]
	}

	s.logger.Debug("summarized employee batch",
		zap.Int("requested", len(batch)),
		zap.Int("profiled", len(profiles)),
	)

	return profiles, nil
}

func combineProfiles(batch []ai.ProfileRequest) string {
	var builder strings.Builder
	builder.WriteString("=== EMPLOYEE PROFILES ===\n")
	for i, req := range batch {
		if i > 0 {
			builder.WriteString("\n---\n")
		}
		builder.WriteString("\nEmployee: ")
		builder.WriteString(req.EmpCode)
		builder.WriteString("\n")
		builder.WriteString(req.Text)
		builder.WriteString("\n")
	}
	return builder.String()
}

func (s *Summarizer) parseProfiles(raw string) ([]*ai.EmployeeProfile, error) {
	cleaned := util.ExtractJSON(raw)

	var parsed []*ai.EmployeeProfile
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		// Single-employee batches may come back as a bare object.
		var single ai.EmployeeProfile
		if errSingle := json.Unmarshal([]byte(cleaned), &single); errSingle != nil {
			return nil, fmt.Errorf("unparseable profile response: %w", err)
		}
		parsed = []*ai.EmployeeProfile{&single}
	}

	profiles := make([]*ai.EmployeeProfile, 0, len(parsed))
	for _, profile := range parsed {
		if profile == nil || strings.TrimSpace(profile.EmpCode) == "" {
			s.logger.Warn("dropping profile without employee code")
			continue
		}
		if profile.ExperienceLevel == "" {
			profile.ExperienceLevel = "junior"
		}
		profiles = append(profiles, profile)
	}

	if len(profiles) == 0 {
		return nil, errors.New("profile response contained no usable entries")
	}

	return profiles, nil
}
