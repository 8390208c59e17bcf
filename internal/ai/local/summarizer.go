// Package local holds the offline variants of the pipeline's LLM
// capabilities: a count-based profile heuristic and a set-overlap match
// formula. Identical inputs always yield identical outputs.
package local

import (
	"context"
	"fmt"

	"github.com/dnlam/staff-matcher/internal/ai"
)

// Summarizer builds profiles from raw skill-level counts without any
// remote call.
type Summarizer struct{}

func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

func (s *Summarizer) SummarizeBatch(_ context.Context, batch []ai.ProfileRequest) ([]*ai.EmployeeProfile, error) {
	profiles := make([]*ai.EmployeeProfile, 0, len(batch))
	for _, req := range batch {
		profiles = append(profiles, summarize(req))
	}
	return profiles, nil
}

func summarize(req ai.ProfileRequest) *ai.EmployeeProfile {
	advanced := req.SkillsByLevel["advanced"]
	intermediate := req.SkillsByLevel["intermediate"]
	beginner := req.SkillsByLevel["beginner"]

	// Level inference from the skill distribution alone.
	level := "junior"
	switch {
	case len(advanced) > 2:
		level = "senior"
	case len(intermediate) > 2:
		level = "intermediate"
	}

	primary := req.Domains
	var secondary []string
	if len(primary) > 2 {
		primary, secondary = primary[:2], primary[2:]
	}

	return &ai.EmployeeProfile{
		EmpCode: req.EmpCode,
		TechnicalSkills: ai.TechnicalSkills{
			Advanced:     advanced,
			Intermediate: intermediate,
			Beginner:     beginner,
		},
		DomainExpertise: ai.DomainExpertise{
			Primary:   primary,
			Secondary: secondary,
		},
		ExperienceLevel: level,
		KeyStrengths: []string{
			fmt.Sprintf("Has %d advanced skills", len(advanced)),
			fmt.Sprintf("Experience in %d business domains", len(req.Domains)),
		},
		AdditionalSkills: req.AdditionalSkills,
	}
}
