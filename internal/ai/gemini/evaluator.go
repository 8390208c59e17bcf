package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	_ "embed"

	"github.com/dnlam/staff-matcher/internal/ai"
	"github.com/dnlam/staff-matcher/internal/requirement"
	"github.com/dnlam/staff-matcher/internal/scoring"
	"github.com/dnlam/staff-matcher/internal/util"
	"go.uber.org/zap"
)

//go:embed match_prompt.md
var matchPrompt string

const availabilityNote = "Available at project start date"

// Evaluator scores every profile against the requirement in one Gemini
// request. The aggregate score coming back from the model is discarded
// and recomputed locally from the sub-scores, so that the weighting
// policy holds regardless of what the model calculated.
type Evaluator struct {
	generator contentGenerator
	logger    *zap.Logger
	timeout   time.Duration
}

func NewEvaluator(generator contentGenerator, logger *zap.Logger, timeout time.Duration) *Evaluator {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &Evaluator{
		generator: generator,
		logger:    logger,
		timeout:   timeout,
	}
}

func (e *Evaluator) EvaluateAll(ctx context.Context, req *requirement.Requirement, profiles []*ai.EmployeeProfile) ([]*scoring.MatchScore, error) {
	if len(profiles) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.generator.GenerateContent(ctx, matchPrompt, buildMatchMessage(req, profiles))
	if err != nil {
		return nil, fmt.Errorf("evaluate %d profiles: %w", len(profiles), err)
	}

	scores, err := e.parseMatches(raw)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("evaluated profiles",
		zap.Int("requested", len(profiles)),
		zap.Int("scored", len(scores)),
	)

	return scores, nil
}

func buildMatchMessage(req *requirement.Requirement, profiles []*ai.EmployeeProfile) string {
	var builder strings.Builder

	builder.WriteString("Project Requirements:\n")
	builder.WriteString(fmt.Sprintf("Title: %s\n", req.Title))
	builder.WriteString(fmt.Sprintf("Required Level: %s\n", req.Level))
	builder.WriteString(fmt.Sprintf("Required Skills: %s\n", strings.Join(req.TechStack, ", ")))
	builder.WriteString(fmt.Sprintf("Required Domains: %s\n", strings.Join(req.Domains, ", ")))
	builder.WriteString(fmt.Sprintf("Start Date: %s\n", req.StartDate.Format("2006-01-02")))

	builder.WriteString("\nAvailable Employees (already filtered for availability):\n")
	for _, profile := range profiles {
		builder.WriteString(fmt.Sprintf("\nEmployee: %s\n", profile.EmpCode))
		builder.WriteString(fmt.Sprintf("Skills: %s\n", formatSkills(profile)))
		builder.WriteString(fmt.Sprintf("Domain Expertise: %s\n", strings.Join(profile.DomainExpertise.Primary, ", ")))
		builder.WriteString(fmt.Sprintf("Experience Level: %s\n", profile.ExperienceLevel))
		builder.WriteString(fmt.Sprintf("Key Strengths: %s\n", strings.Join(profile.KeyStrengths, ", ")))
	}

	return builder.String()
}

func formatSkills(profile *ai.EmployeeProfile) string {
	var groups []string
	for _, group := range []struct {
		label  string
		skills []string
	}{
		{"Advanced", profile.TechnicalSkills.Advanced},
		{"Intermediate", profile.TechnicalSkills.Intermediate},
		{"Beginner", profile.TechnicalSkills.Beginner},
		{"Additional", profile.AdditionalSkills},
	} {
		if len(group.skills) > 0 {
			groups = append(groups, fmt.Sprintf("%s: %s", group.label, strings.Join(group.skills, ", ")))
		}
	}
	return strings.Join(groups, " | ")
}

func (e *Evaluator) parseMatches(raw string) ([]*scoring.MatchScore, error) {
	cleaned := util.ExtractJSON(raw)

	var data struct {
		Matches []map[string]any `json:"matches"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("unparseable match response: %w", err)
	}

	scores := make([]*scoring.MatchScore, 0, len(data.Matches))
	for _, match := range data.Matches {
		empCode := util.CoerceString(match["employee"])
		if empCode == "" {
			e.logger.Warn("dropping match without employee code")
			continue
		}

		skillFit := coerceScore(match["skill_fit"])
		domainMatch := coerceScore(match["domain_match"])
		expMatch := coerceScore(match["experience_match"])

		// The model's own match_score is ignored on purpose.
		combined := scoring.Combine(skillFit, expMatch, domainMatch)
		if reported := util.CoerceFloat(match["match_score"]); !math.IsNaN(reported) && math.Abs(reported-combined) > 0.01 {
			e.logger.Debug("model aggregate score recomputed",
				zap.String("employee", empCode),
				zap.Float64("reported", reported),
				zap.Float64("calculated", combined),
			)
		}

		scores = append(scores, &scoring.MatchScore{
			EmpCode:         empCode,
			SkillFit:        skillFit,
			DomainMatch:     domainMatch,
			ExperienceMatch: expMatch,
			Combined:        combined,
			Strengths:       util.CoerceStringSlice(match["strengths"]),
			Concerns:        util.CoerceStringSlice(match["concerns"]),
			Reasoning:       util.CoerceString(match["reasoning"]),
			WorkloadNote:    availabilityNote,
		})
	}

	if len(scores) == 0 {
		return nil, errors.New("match response contained no usable entries")
	}

	return scores, nil
}

func coerceScore(value any) float64 {
	score := util.CoerceFloat(value)
	if math.IsNaN(score) {
		return 0
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
