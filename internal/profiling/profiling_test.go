package profiling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/dnlam/staff-matcher/internal/ai"
	"github.com/dnlam/staff-matcher/internal/hrapi"
	"go.uber.org/zap"
)

type stubSummarizer struct {
	mu      sync.Mutex
	batches [][]ai.ProfileRequest
	failFor map[string]bool
}

func (s *stubSummarizer) SummarizeBatch(_ context.Context, batch []ai.ProfileRequest) ([]*ai.EmployeeProfile, error) {
	s.mu.Lock()
	s.batches = append(s.batches, batch)
	s.mu.Unlock()

	profiles := make([]*ai.EmployeeProfile, 0, len(batch))
	for _, req := range batch {
		if s.failFor[req.EmpCode] {
			return nil, errors.New("backend rejected batch")
		}
		profiles = append(profiles, &ai.EmployeeProfile{EmpCode: req.EmpCode})
	}
	return profiles, nil
}

func employeeWithSkill(code, skill string) *hrapi.Employee {
	return &hrapi.Employee{
		EmpCode: code,
		Skills:  []*hrapi.Skill{{SkillName: skill, Level: "Advanced"}},
	}
}

func TestProfileAllChunksBatches(t *testing.T) {
	items := make([]*hrapi.Employee, 0, 120)
	for i := 0; i < 120; i++ {
		items = append(items, employeeWithSkill(fmt.Sprintf("E%03d", i), "Go"))
	}

	stub := &stubSummarizer{}
	profiler := New(stub, zap.NewNop(), 50, 2)

	profiles, err := profiler.ProfileAll(context.Background(), &hrapi.Employees{Items: items})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(profiles) != 120 {
		t.Fatalf("expected 120 profiles, got %d", len(profiles))
	}
	if len(stub.batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(stub.batches))
	}

	sizes := make(map[int]int)
	for _, batch := range stub.batches {
		sizes[len(batch)]++
	}
	if sizes[50] != 2 || sizes[20] != 1 {
		t.Fatalf("unexpected batch sizes: %v", sizes)
	}
}

func TestProfileAllFailedBatchDoesNotAbortSiblings(t *testing.T) {
	items := []*hrapi.Employee{
		employeeWithSkill("E1", "Go"),
		employeeWithSkill("E2", "React"),
		employeeWithSkill("E3", "Java"),
	}

	stub := &stubSummarizer{failFor: map[string]bool{"E2": true}}
	profiler := New(stub, zap.NewNop(), 1, 1)

	profiles, err := profiler.ProfileAll(context.Background(), &hrapi.Employees{Items: items})
	if err != nil {
		t.Fatalf("batch failure must not surface as error: %v", err)
	}

	codes := make(map[string]bool)
	for _, profile := range profiles {
		codes[profile.EmpCode] = true
	}
	if len(codes) != 2 || !codes["E1"] || !codes["E3"] {
		t.Fatalf("expected profiles for surviving batches, got %v", codes)
	}
}

func TestProfileAllDropsInvalidSkills(t *testing.T) {
	items := []*hrapi.Employee{
		employeeWithSkill("E1", "Go"),
		{EmpCode: "E2", Skills: []*hrapi.Skill{{SkillName: "none", Level: "Advanced"}}},
		{EmpCode: "E3"},
	}

	stub := &stubSummarizer{}
	profiler := New(stub, zap.NewNop(), 0, 0)

	profiles, err := profiler.ProfileAll(context.Background(), &hrapi.Employees{Items: items})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(profiles) != 1 || profiles[0].EmpCode != "E1" {
		t.Fatalf("expected only E1 profiled, got %+v", profiles)
	}
}

func TestProfileAllFormatsProfileText(t *testing.T) {
	emp := &hrapi.Employee{
		EmpCode: "E1",
		Skills: []*hrapi.Skill{
			{SkillName: "Go", Level: "Advanced"},
			{SkillName: "React", Level: "intermediate"},
		},
		BusinessDomains:  []*hrapi.BusinessDomain{{Name: "FinTech"}},
		AdditionalSkills: []*hrapi.AdditionalSkill{{Name: "Terraform"}, {Name: "none"}},
	}

	stub := &stubSummarizer{}
	profiler := New(stub, zap.NewNop(), 0, 0)

	if _, err := profiler.ProfileAll(context.Background(), &hrapi.Employees{Items: []*hrapi.Employee{emp}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := stub.batches[0][0]
	for _, fragment := range []string{
		"Employee Code: E1",
		"Technical Skills:",
		"- Advanced: Go",
		"- Intermediate: React",
		"Business Domains:\n- FinTech",
		"Additional Skills:\n- Terraform",
	} {
		if !strings.Contains(req.Text, fragment) {
			t.Fatalf("expected %q in profile text:\n%s", fragment, req.Text)
		}
	}

	if len(req.AdditionalSkills) != 1 || req.AdditionalSkills[0] != "Terraform" {
		t.Fatalf(`"none" additional skill must be filtered: %v`, req.AdditionalSkills)
	}
	if len(req.SkillsByLevel["advanced"]) != 1 || len(req.SkillsByLevel["intermediate"]) != 1 {
		t.Fatalf("unexpected skill grouping: %v", req.SkillsByLevel)
	}
}

func TestProfileAllEmptyInput(t *testing.T) {
	profiler := New(&stubSummarizer{}, zap.NewNop(), 0, 0)

	profiles, err := profiler.ProfileAll(context.Background(), &hrapi.Employees{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profiles != nil {
		t.Fatalf("expected no profiles, got %+v", profiles)
	}
}
