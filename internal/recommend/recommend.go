// Package recommend ranks scored candidates and assembles the final
// matching outcome in its wire format.
package recommend

import (
	"fmt"
	"sort"

	"github.com/dnlam/staff-matcher/internal/scoring"
)

// SelectionCriteria is the fixed list reported with every successful
// outcome.
var SelectionCriteria = []string{
	"Skill fit",
	"Domain expertise alignment",
	"Experience level appropriateness",
	"Workload compatibility",
}

type ScoreBreakdown struct {
	SkillFit                       float64 `json:"skill_fit"`
	DomainExpertiseAlignment       float64 `json:"domain_expertise_alignment"`
	ExperienceLevelAppropriateness float64 `json:"experience_level_appropriateness"`
}

type Recommendation struct {
	Employee           string         `json:"employee"`
	OverallMatchScore  float64        `json:"overall_match_score"`
	DetailedScoring    ScoreBreakdown `json:"detailed_scoring_breakdown"`
	KeyStrengths       []string       `json:"key_strengths_and_relevant_experience"`
	PotentialConcerns  []string       `json:"potential_concerns_or_limitations"`
	WorkloadAssessment string         `json:"workload_compatibility_assessment,omitempty"`
}

// Outcome is the final result of a matching run. Runs that end early
// still produce an Outcome, with Error set and no recommendations.
type Outcome struct {
	RecommendedEmployees  []*Recommendation `json:"recommended_employees"`
	SelectionCriteria     []string          `json:"selection_criteria"`
	RecommendationSummary string            `json:"recommendation_summary"`
	Error                 string            `json:"error,omitempty"`
}

// Empty builds an outcome for a run that produced no candidates.
func Empty(errMsg, summary string) *Outcome {
	return &Outcome{
		RecommendedEmployees:  []*Recommendation{},
		SelectionCriteria:     []string{},
		RecommendationSummary: summary,
		Error:                 errMsg,
	}
}

// Build ranks the scores and keeps those at or above minScore. Ordering
// is stable: candidates with equal scores stay in evaluation order.
func Build(scores []*scoring.MatchScore, minScore float64) *Outcome {
	if minScore <= 0 {
		minScore = scoring.DefaultMinimumScore
	}

	ranked := make([]*scoring.MatchScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Combined > ranked[j].Combined
	})

	recommended := make([]*Recommendation, 0, len(ranked))
	for _, score := range ranked {
		if score.Combined < minScore {
			continue
		}
		recommended = append(recommended, &Recommendation{
			Employee:          score.EmpCode,
			OverallMatchScore: score.Combined,
			DetailedScoring: ScoreBreakdown{
				SkillFit:                       score.SkillFit,
				DomainExpertiseAlignment:       score.DomainMatch,
				ExperienceLevelAppropriateness: score.ExperienceMatch,
			},
			KeyStrengths:       score.Strengths,
			PotentialConcerns:  score.Concerns,
			WorkloadAssessment: score.WorkloadNote,
		})
	}

	return &Outcome{
		RecommendedEmployees: recommended,
		SelectionCriteria:    SelectionCriteria,
		RecommendationSummary: fmt.Sprintf(
			"Selected %d candidates with match scores of %.0f%% or higher based on skill match, domain expertise, and experience level.",
			len(recommended), minScore*100,
		),
	}
}
