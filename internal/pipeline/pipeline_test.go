package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dnlam/staff-matcher/internal/ai"
	"github.com/dnlam/staff-matcher/internal/hrapi"
	"github.com/dnlam/staff-matcher/internal/requirement"
	"github.com/dnlam/staff-matcher/internal/scoring"
	"go.uber.org/zap"
)

type stubParser struct {
	req *requirement.Requirement
	err error
}

func (s *stubParser) Parse(context.Context, string) (*requirement.Requirement, error) {
	return s.req, s.err
}

type stubHR struct {
	employees *hrapi.Employees
	empErr    error
	status    map[string]bool
	statusErr error
}

func (s *stubHR) Employees() (*hrapi.Employees, error) {
	return s.employees, s.empErr
}

func (s *stubHR) ActiveStatus() (map[string]bool, error) {
	return s.status, s.statusErr
}

type stubBookings struct {
	bookings *hrapi.Bookings
	err      error
}

func (s *stubBookings) ListBookings(time.Time, int) (*hrapi.Bookings, error) {
	return s.bookings, s.err
}

type stubProfiler struct {
	profiles []*ai.EmployeeProfile
	err      error
	got      *hrapi.Employees
}

func (s *stubProfiler) ProfileAll(_ context.Context, employees *hrapi.Employees) ([]*ai.EmployeeProfile, error) {
	s.got = employees
	return s.profiles, s.err
}

type stubEvaluator struct {
	scores []*scoring.MatchScore
	err    error
}

func (s *stubEvaluator) EvaluateAll(context.Context, *requirement.Requirement, []*ai.EmployeeProfile) ([]*scoring.MatchScore, error) {
	return s.scores, s.err
}

func testReq() *requirement.Requirement {
	return &requirement.Requirement{
		Title:     "Payment Gateway Revamp",
		TechStack: []string{"React", "Java"},
		Domains:   []string{"FinTech"},
		Level:     requirement.LevelSenior,
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testRoster() *hrapi.Employees {
	return &hrapi.Employees{Items: []*hrapi.Employee{
		{EmpCode: "E1", Skills: []*hrapi.Skill{{SkillName: "React", Level: "Advanced"}}},
		{EmpCode: "E2", Skills: []*hrapi.Skill{{SkillName: "Java", Level: "Intermediate"}}},
		{EmpCode: "E3", Skills: []*hrapi.Skill{{SkillName: "Python", Level: "Advanced"}}},
	}}
}

func testDeps(hr *stubHR, bookings *stubBookings, prof *stubProfiler, eval *stubEvaluator) Deps {
	return Deps{
		Parser:    &stubParser{req: testReq()},
		HR:        hr,
		Bookings:  bookings,
		Profiler:  prof,
		Evaluator: eval,
		Logger:    zap.NewNop(),
	}
}

func TestRunFullPipeline(t *testing.T) {
	prof := &stubProfiler{profiles: []*ai.EmployeeProfile{
		{EmpCode: "E1", ExperienceLevel: "senior"},
		{EmpCode: "E2", ExperienceLevel: "intermediate"},
	}}
	eval := &stubEvaluator{scores: []*scoring.MatchScore{
		{EmpCode: "E1", Combined: 0.85},
		{EmpCode: "E2", Combined: 0.30},
	}}

	pipeline := New(&Config{MinimumScore: 0.40}, testDeps(
		&stubHR{employees: testRoster(), status: map[string]bool{}},
		&stubBookings{bookings: &hrapi.Bookings{}},
		prof, eval,
	))

	outcome, err := pipeline.Run(context.Background(), "fintech payment gateway, React and Java")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outcome.RecommendedEmployees) != 1 || outcome.RecommendedEmployees[0].Employee != "E1" {
		t.Fatalf("unexpected recommendations: %+v", outcome.RecommendedEmployees)
	}
	if outcome.Error != "" {
		t.Fatalf("unexpected error field: %q", outcome.Error)
	}

	// The Python-skilled employee must never reach profiling.
	if prof.got.FindByCode("E3") != nil {
		t.Fatal("skill prefilter must run before profiling")
	}
}

func TestRunAllOverbooked(t *testing.T) {
	bookings := &stubBookings{bookings: &hrapi.Bookings{Items: []*hrapi.Booking{
		{EmpCode: "E1", DailyHour: 7.5},
		{EmpCode: "E2", DailyHour: 8.0},
		{EmpCode: "E3", DailyHour: 7.0},
	}}}

	pipeline := New(&Config{MaxBookedHours: 6.0}, testDeps(
		&stubHR{employees: testRoster(), status: map[string]bool{}},
		bookings,
		&stubProfiler{}, &stubEvaluator{},
	))

	outcome, err := pipeline.Run(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Error != "No available employees found" {
		t.Fatalf("unexpected outcome error: %q", outcome.Error)
	}
	if len(outcome.RecommendedEmployees) != 0 {
		t.Fatalf("expected no recommendations, got %+v", outcome.RecommendedEmployees)
	}
}

func TestRunNoMatchingSkills(t *testing.T) {
	roster := &hrapi.Employees{Items: []*hrapi.Employee{
		{EmpCode: "E1", Skills: []*hrapi.Skill{{SkillName: "Cobol", Level: "Advanced"}}},
	}}

	pipeline := New(&Config{}, testDeps(
		&stubHR{employees: roster, status: map[string]bool{}},
		&stubBookings{bookings: &hrapi.Bookings{}},
		&stubProfiler{}, &stubEvaluator{},
	))

	outcome, err := pipeline.Run(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Error != "No matching skills" {
		t.Fatalf("unexpected outcome error: %q", outcome.Error)
	}
}

func TestRunNoValidProfiles(t *testing.T) {
	pipeline := New(&Config{}, testDeps(
		&stubHR{employees: testRoster(), status: map[string]bool{}},
		&stubBookings{bookings: &hrapi.Bookings{}},
		&stubProfiler{profiles: nil}, &stubEvaluator{},
	))

	outcome, err := pipeline.Run(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Error != "No valid employee analyses" {
		t.Fatalf("unexpected outcome error: %q", outcome.Error)
	}
}

func TestRunEvaluatorReturnsNothing(t *testing.T) {
	pipeline := New(&Config{}, testDeps(
		&stubHR{employees: testRoster(), status: map[string]bool{}},
		&stubBookings{bookings: &hrapi.Bookings{}},
		&stubProfiler{profiles: []*ai.EmployeeProfile{{EmpCode: "E1"}}},
		&stubEvaluator{scores: nil},
	))

	outcome, err := pipeline.Run(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Error != "No matches found" {
		t.Fatalf("unexpected outcome error: %q", outcome.Error)
	}
}

func TestRunParserInputErrorPropagates(t *testing.T) {
	deps := testDeps(&stubHR{}, &stubBookings{}, &stubProfiler{}, &stubEvaluator{})
	deps.Parser = &stubParser{err: requirement.NewInputError("project description must not be empty", nil)}

	pipeline := New(&Config{}, deps)

	_, err := pipeline.Run(context.Background(), "")
	if !requirement.IsInputError(err) {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestRunRosterFailureIsFatal(t *testing.T) {
	pipeline := New(&Config{}, testDeps(
		&stubHR{empErr: errors.New("empinfo down")},
		&stubBookings{}, &stubProfiler{}, &stubEvaluator{},
	))

	if _, err := pipeline.Run(context.Background(), "anything"); err == nil {
		t.Fatal("expected error when roster fetch fails")
	}
}

func TestRunIgnoreAvailability(t *testing.T) {
	bookings := &stubBookings{err: errors.New("must not be called")}

	prof := &stubProfiler{profiles: []*ai.EmployeeProfile{{EmpCode: "E1"}}}
	eval := &stubEvaluator{scores: []*scoring.MatchScore{{EmpCode: "E1", Combined: 0.9}}}

	pipeline := New(&Config{IgnoreAvailability: true}, testDeps(
		&stubHR{employees: testRoster(), statusErr: errors.New("must not be called")},
		bookings, prof, eval,
	))

	outcome, err := pipeline.Run(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.RecommendedEmployees) != 1 {
		t.Fatalf("expected recommendation, got %+v", outcome)
	}
}
