// Package pipeline wires the matching stages together: parse the
// requirement, fetch the roster, filter, profile, score, rank. Runs that
// end with nobody left produce an empty outcome instead of an error.
package pipeline

import (
	"context"
	"time"

	"github.com/dnlam/staff-matcher/internal/ai"
	"github.com/dnlam/staff-matcher/internal/filtering"
	"github.com/dnlam/staff-matcher/internal/hrapi"
	"github.com/dnlam/staff-matcher/internal/recommend"
	"github.com/dnlam/staff-matcher/internal/requirement"
	"go.uber.org/zap"
)

type requirementParser interface {
	Parse(ctx context.Context, text string) (*requirement.Requirement, error)
}

type employeeSource interface {
	Employees() (*hrapi.Employees, error)
	ActiveStatus() (map[string]bool, error)
}

type bookingLister interface {
	ListBookings(startDate time.Time, windowDays int) (*hrapi.Bookings, error)
}

type profiler interface {
	ProfileAll(ctx context.Context, employees *hrapi.Employees) ([]*ai.EmployeeProfile, error)
}

// Deps aggregates the stage implementations a Pipeline runs.
type Deps struct {
	Parser    requirementParser
	HR        employeeSource
	Bookings  bookingLister
	Profiler  profiler
	Evaluator ai.MatchEvaluator
	Logger    *zap.Logger
}

type Config struct {
	MinimumScore       float64
	MaxBookedHours     float64
	BookingWindowDays  int
	IgnoreAvailability bool
}

type Pipeline struct {
	cfg  *Config
	deps Deps
}

func New(cfg *Config, deps Deps) *Pipeline {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Pipeline{cfg: cfg, deps: deps}
}

// Run matches employees against the free-text project description.
// Errors surface only for unusable input or infrastructure failures;
// every other dead end returns an outcome describing why it is empty.
func (p *Pipeline) Run(ctx context.Context, description string) (*recommend.Outcome, error) {
	started := time.Now()

	req, err := p.deps.Parser.Parse(ctx, description)
	if err != nil {
		return nil, err
	}

	analysis := requirement.Analyze(req)
	p.deps.Logger.Debug("requirement analysis",
		zap.Strings("frontend", analysis.Frontend),
		zap.Strings("backend", analysis.Backend),
		zap.Strings("other", analysis.Other),
	)

	employees, err := p.deps.HR.Employees()
	if err != nil {
		return nil, err
	}

	p.deps.Logger.Info("roster fetched",
		zap.Int("employees", employees.Len()),
		zap.String("project", req.Title),
	)

	available, err := p.filterAvailable(ctx, req, employees)
	if err != nil {
		return nil, err
	}
	if available.Len() == 0 {
		p.deps.Logger.Warn("no employees available at project start")
		return recommend.Empty(
			"No available employees found",
			"No employees are available for the project start date due to existing bookings.",
		), nil
	}

	candidates, err := filtering.Run(ctx, p.deps.Logger,
		[]filtering.Filter{filtering.NewSkills(req.TechStack)}, available)
	if err != nil {
		return nil, err
	}
	if candidates.Len() == 0 {
		p.deps.Logger.Warn("no employees share the required skills",
			zap.Strings("tech_stack", req.TechStack),
		)
		return recommend.Empty(
			"No matching skills",
			"No employees have skills matching the required technologies.",
		), nil
	}

	profiles, err := p.deps.Profiler.ProfileAll(ctx, candidates)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return recommend.Empty(
			"No valid employee analyses",
			"No valid employee profiles were found for analysis.",
		), nil
	}

	scores, err := p.deps.Evaluator.EvaluateAll(ctx, req, profiles)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return recommend.Empty(
			"No matches found",
			"No suitable matches were found for the project requirements.",
		), nil
	}

	outcome := recommend.Build(scores, p.cfg.MinimumScore)

	p.deps.Logger.Info("matching run complete",
		zap.String("project", req.Title),
		zap.Int("candidates", candidates.Len()),
		zap.Int("profiles", len(profiles)),
		zap.Int("recommended", len(outcome.RecommendedEmployees)),
		zap.Duration("took", time.Since(started)),
	)

	return outcome, nil
}

func (p *Pipeline) filterAvailable(ctx context.Context, req *requirement.Requirement, employees *hrapi.Employees) (*hrapi.Employees, error) {
	availability := filtering.NewAvailability(
		&filtering.AvailabilityConfig{
			StartDate:      req.StartDate,
			MaxBookedHours: p.cfg.MaxBookedHours,
			WindowDays:     p.cfg.BookingWindowDays,
		},
		&filtering.AvailabilityDeps{
			Status:   p.deps.HR,
			Bookings: p.deps.Bookings,
			Logger:   p.deps.Logger,
		},
	)

	steps := []filtering.Filter{availability}
	if p.cfg.IgnoreAvailability {
		filtering.DisableByName(steps, availability.Name(), "availability filtering disabled by configuration")
	}

	return filtering.Run(ctx, p.deps.Logger, steps, employees)
}
