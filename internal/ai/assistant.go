// Package ai defines the capability interfaces of the LLM-backed pipeline
// stages. Each capability has a remote-backed and a heuristic-local
// implementation; failover wrappers swap to the local variant per call.
package ai

import (
	"context"

	"github.com/dnlam/staff-matcher/internal/requirement"
	"github.com/dnlam/staff-matcher/internal/scoring"
)

// ProfileRequest is one employee prepared for summarization: the formatted
// text sent to a remote summarizer plus the raw facts the local heuristic
// works from.
type ProfileRequest struct {
	EmpCode          string
	Text             string
	SkillsByLevel    map[string][]string
	Domains          []string
	AdditionalSkills []string
}

// TechnicalSkills buckets skill names by proficiency tier.
type TechnicalSkills struct {
	Advanced     []string `json:"advanced"`
	Intermediate []string `json:"intermediate"`
	Beginner     []string `json:"beginner"`
}

// DomainExpertise splits business domains into primary and secondary.
type DomainExpertise struct {
	Primary   []string `json:"primary_domains"`
	Secondary []string `json:"secondary_domains"`
}

// EmployeeProfile is the normalized summary of one employee. Profiles are
// ephemeral and recomputed per matching run.
type EmployeeProfile struct {
	EmpCode          string          `json:"employee_name"`
	TechnicalSkills  TechnicalSkills `json:"technical_skills"`
	DomainExpertise  DomainExpertise `json:"domain_expertise"`
	ExperienceLevel  string          `json:"experience_level"`
	KeyStrengths     []string        `json:"key_strengths"`
	DevelopmentAreas []string        `json:"development_areas"`
	AdditionalSkills []string        `json:"additional_skills"`
}

// AllSkills returns the lowercased set of every skill on the profile,
// all tiers plus additional skills.
func (p *EmployeeProfile) AllSkills() map[string]bool {
	skills := make(map[string]bool)
	for _, group := range [][]string{
		p.TechnicalSkills.Advanced,
		p.TechnicalSkills.Intermediate,
		p.TechnicalSkills.Beginner,
		p.AdditionalSkills,
	} {
		for _, skill := range group {
			if key := normalize(skill); key != "" {
				skills[key] = true
			}
		}
	}
	return skills
}

// ProfileSummarizer turns a batch of prepared employees into profiles.
type ProfileSummarizer interface {
	SummarizeBatch(ctx context.Context, batch []ProfileRequest) ([]*EmployeeProfile, error)
}

// MatchEvaluator scores every profile against the requirement in one
// combined request, so that scoring stays consistent across candidates.
// Output order is unspecified; ranking happens downstream.
type MatchEvaluator interface {
	EvaluateAll(ctx context.Context, req *requirement.Requirement, profiles []*EmployeeProfile) ([]*scoring.MatchScore, error)
}
