package local

import (
	"context"
	"fmt"
	"strings"

	"github.com/dnlam/staff-matcher/internal/ai"
	"github.com/dnlam/staff-matcher/internal/requirement"
	"github.com/dnlam/staff-matcher/internal/scoring"
)

const workloadNote = "Available at project start date"

// Evaluator scores profiles with plain set-overlap ratios. The same
// weighting policy applies as in the remote path; re-running it over
// identical inputs yields identical scores and ordering.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

func (e *Evaluator) EvaluateAll(_ context.Context, req *requirement.Requirement, profiles []*ai.EmployeeProfile) ([]*scoring.MatchScore, error) {
	scores := make([]*scoring.MatchScore, 0, len(profiles))
	for _, profile := range profiles {
		scores = append(scores, evaluate(req, profile))
	}
	return scores, nil
}

func evaluate(req *requirement.Requirement, profile *ai.EmployeeProfile) *scoring.MatchScore {
	skillFit := scoring.SkillFit(req.TechStack, profile.AllSkills())
	domainMatch := scoring.DomainMatch(req.Domains, profile.DomainExpertise.Primary)
	expMatch := scoring.ExperienceScore(profile.ExperienceLevel)

	var concerns []string
	if domainMatch == 0 {
		concerns = append(concerns, fmt.Sprintf("No domain expertise in %s", strings.Join(req.Domains, ", ")))
	}
	if expMatch == 0 {
		concerns = append(concerns, "Experience level not aligned with project requirements")
	}
	if skillFit < 0.5 {
		concerns = append(concerns, "Limited skill match with required technologies")
	}

	return &scoring.MatchScore{
		EmpCode:         profile.EmpCode,
		SkillFit:        skillFit,
		DomainMatch:     domainMatch,
		ExperienceMatch: expMatch,
		Combined:        scoring.Combine(skillFit, expMatch, domainMatch),
		Strengths: []string{
			fmt.Sprintf("Skill match: %.0f%%", skillFit*100),
			fmt.Sprintf("Domain match: %.0f%%", domainMatch*100),
			fmt.Sprintf("Experience match: %.0f%%", expMatch*100),
		},
		Concerns:     concerns,
		Reasoning:    "Score based on direct skill and domain matching (fallback calculation)",
		WorkloadNote: workloadNote,
	}
}
