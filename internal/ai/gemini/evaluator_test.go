package gemini

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/dnlam/staff-matcher/internal/ai"
	"github.com/dnlam/staff-matcher/internal/requirement"
	"go.uber.org/zap"
)

func testRequirement() *requirement.Requirement {
	return &requirement.Requirement{
		Title:     "Payment Gateway Revamp",
		TechStack: []string{"React", "Java"},
		Domains:   []string{"FinTech"},
		Level:     requirement.LevelSenior,
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testProfiles() []*ai.EmployeeProfile {
	return []*ai.EmployeeProfile{{
		EmpCode:          "E1",
		TechnicalSkills:  ai.TechnicalSkills{Advanced: []string{"React", "Java"}},
		DomainExpertise:  ai.DomainExpertise{Primary: []string{"FinTech"}},
		ExperienceLevel:  "senior",
		KeyStrengths:     []string{"Full-stack delivery"},
		AdditionalSkills: []string{"Terraform"},
	}}
}

func TestEvaluatorRecomputesAggregateScore(t *testing.T) {
	// The reported match_score of 0.99 contradicts the sub-scores and
	// must be replaced by the weighted formula.
	stub := &stubGenerator{response: `{
		"matches": [{
			"employee": "E1",
			"match_score": 0.99,
			"skill_fit": 1.0,
			"domain_match": 0.0,
			"experience_match": 1.0,
			"strengths": ["Strong skills"],
			"concerns": ["No domain expertise in FinTech"],
			"reasoning": "solid technical match"
		}]
	}`}
	evaluator := NewEvaluator(stub, zap.NewNop(), 0)

	scores, err := evaluator.EvaluateAll(context.Background(), testRequirement(), testProfiles())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	score := scores[0]
	if math.Abs(score.Combined-0.85) > 1e-9 {
		t.Fatalf("expected recomputed combined 0.85, got %v", score.Combined)
	}
	if score.WorkloadNote != "Available at project start date" {
		t.Fatalf("unexpected workload note: %q", score.WorkloadNote)
	}
	if len(score.Strengths) != 1 || len(score.Concerns) != 1 {
		t.Fatalf("unexpected strengths/concerns: %+v", score)
	}
}

func TestEvaluatorMessageContainsRequirementAndProfiles(t *testing.T) {
	stub := &stubGenerator{response: `{"matches": [{"employee": "E1", "skill_fit": 1, "domain_match": 1, "experience_match": 1}]}`}
	evaluator := NewEvaluator(stub, zap.NewNop(), 0)

	if _, err := evaluator.EvaluateAll(context.Background(), testRequirement(), testProfiles()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, fragment := range []string{
		"Title: Payment Gateway Revamp",
		"Required Skills: React, Java",
		"Required Domains: FinTech",
		"Employee: E1",
		"Advanced: React, Java",
		"Additional: Terraform",
		"Experience Level: senior",
	} {
		if !strings.Contains(stub.lastMessage, fragment) {
			t.Fatalf("expected %q in message:\n%s", fragment, stub.lastMessage)
		}
	}
	if !strings.Contains(stub.lastSystem, "match_score = (skill_fit * 0.45)") {
		t.Fatalf("expected scoring formula in system prompt")
	}
}

func TestEvaluatorCoercesMalformedScores(t *testing.T) {
	stub := &stubGenerator{response: `{
		"matches": [{
			"employee": "E1",
			"skill_fit": "0.9",
			"domain_match": "not a number",
			"experience_match": 1.7
		}]
	}`}
	evaluator := NewEvaluator(stub, zap.NewNop(), 0)

	scores, err := evaluator.EvaluateAll(context.Background(), testRequirement(), testProfiles())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	score := scores[0]
	if math.Abs(score.SkillFit-0.9) > 1e-9 {
		t.Fatalf("string score must coerce, got %v", score.SkillFit)
	}
	if score.DomainMatch != 0 {
		t.Fatalf("unparseable score must fall to zero, got %v", score.DomainMatch)
	}
	if score.ExperienceMatch != 1 {
		t.Fatalf("out-of-range score must clamp, got %v", score.ExperienceMatch)
	}
}

func TestEvaluatorRejectsEmptyMatches(t *testing.T) {
	stub := &stubGenerator{response: `{"matches": []}`}
	evaluator := NewEvaluator(stub, zap.NewNop(), 0)

	if _, err := evaluator.EvaluateAll(context.Background(), testRequirement(), testProfiles()); err == nil {
		t.Fatal("expected error for empty matches")
	}
}

func TestEvaluatorDropsEntriesWithoutCode(t *testing.T) {
	stub := &stubGenerator{response: `{
		"matches": [
			{"employee": "", "skill_fit": 1, "domain_match": 1, "experience_match": 1},
			{"employee": "E1", "skill_fit": 1, "domain_match": 1, "experience_match": 1}
		]
	}`}
	evaluator := NewEvaluator(stub, zap.NewNop(), 0)

	scores, err := evaluator.EvaluateAll(context.Background(), testRequirement(), testProfiles())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != 1 || scores[0].EmpCode != "E1" {
		t.Fatalf("unexpected scores: %+v", scores)
	}
}

func TestEvaluatorEmptyProfiles(t *testing.T) {
	evaluator := NewEvaluator(&stubGenerator{}, zap.NewNop(), 0)

	scores, err := evaluator.EvaluateAll(context.Background(), testRequirement(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores != nil {
		t.Fatalf("expected no scores, got %+v", scores)
	}
}
