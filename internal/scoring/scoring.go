// Package scoring holds the match score model and the weighting policy
// shared by every evaluator implementation.
package scoring

import "strings"

// Weights of the combined match score. The combined value is always
// recomputed locally from the sub-scores; an externally supplied aggregate
// is never trusted.
const (
	SkillWeight      = 0.45
	ExperienceWeight = 0.40
	DomainWeight     = 0.15
)

// DefaultMinimumScore is the recommendation threshold on the combined
// score.
const DefaultMinimumScore = 0.40

// MatchScore is the evaluation of one employee profile against a
// requirement. All sub-scores are in [0,1].
type MatchScore struct {
	EmpCode         string
	SkillFit        float64
	DomainMatch     float64
	ExperienceMatch float64
	Combined        float64
	Strengths       []string
	Concerns        []string
	Reasoning       string
	WorkloadNote    string
}

// Combine computes the weighted aggregate of the three sub-scores.
func Combine(skillFit, experienceMatch, domainMatch float64) float64 {
	return skillFit*SkillWeight + experienceMatch*ExperienceWeight + domainMatch*DomainWeight
}

// Ordinal experience scores per level. Unknown levels score 0.5.
var experienceScores = map[string]float64{
	"senior":       1.0,
	"intermediate": 0.7,
	"junior":       0.4,
	"fresher":      0.2,
}

func ExperienceScore(level string) float64 {
	if score, ok := experienceScores[strings.ToLower(strings.TrimSpace(level))]; ok {
		return score
	}
	return 0.5
}

// SkillFit is the fraction of required skills present in the employee's
// skill set (case-insensitive exact match). A requirement with no skills
// fits everyone.
func SkillFit(required []string, employeeSkills map[string]bool) float64 {
	if len(required) == 0 {
		return 1.0
	}

	matched := 0
	for _, skill := range required {
		if employeeSkills[strings.ToLower(strings.TrimSpace(skill))] {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

// DomainMatch is zero unless at least one required domain exactly matches
// a primary employee domain; related domains earn no partial credit. With
// overlap, the score is the covered fraction of required domains.
func DomainMatch(required []string, employeeDomains []string) float64 {
	if len(required) == 0 {
		return 0.0
	}

	have := make(map[string]bool, len(employeeDomains))
	for _, domain := range employeeDomains {
		have[strings.ToLower(strings.TrimSpace(domain))] = true
	}

	matched := 0
	for _, domain := range required {
		if have[strings.ToLower(strings.TrimSpace(domain))] {
			matched++
		}
	}

	if matched == 0 {
		return 0.0
	}
	return float64(matched) / float64(len(required))
}
