package requirement

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Experience levels accepted by the matcher, ordered from least to most
// experienced.
const (
	LevelFresher      = "fresher"
	LevelJunior       = "junior"
	LevelIntermediate = "intermediate"
	LevelSenior       = "senior"
	LevelPrincipal    = "principal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Requirement is a structured project staffing requirement. It is immutable
// once parsed and validated.
type Requirement struct {
	Title     string    `json:"title" validate:"required"`
	TechStack []string  `json:"tech_stack"`
	Domains   []string  `json:"domains"`
	Level     string    `json:"required_level" validate:"required,oneof=fresher junior intermediate senior principal"`
	StartDate time.Time `json:"start_date" validate:"required"`
}

// ParseLevel normalizes and validates an experience level string.
func ParseLevel(s string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(s))
	switch level {
	case LevelFresher, LevelJunior, LevelIntermediate, LevelSenior, LevelPrincipal:
		return level, nil
	default:
		return "", NewInputError(fmt.Sprintf("invalid experience level: %q", s), nil)
	}
}

// Validate checks the requirement for structural validity. Violations are
// reported as input errors.
func (r *Requirement) Validate() error {
	if err := validate.Struct(r); err != nil {
		return NewInputError("invalid project requirement", err)
	}
	return nil
}

var (
	frontendStack = map[string]bool{
		"react": true, "angular": true, "javascript": true, "vue": true,
	}
	backendStack = map[string]bool{
		".net": true, "java": true, "python": true, "node.js": true, "go": true,
	}
)

// Analysis is a static breakdown of a requirement's tech stack used as
// context for the match evaluator prompt.
type Analysis struct {
	Frontend []string
	Backend  []string
	Other    []string
}

// Analyze splits the requirement tech stack into frontend, backend and
// everything else. No remote call is involved.
func Analyze(r *Requirement) *Analysis {
	a := &Analysis{}
	for _, skill := range r.TechStack {
		switch key := strings.ToLower(strings.TrimSpace(skill)); {
		case frontendStack[key]:
			a.Frontend = append(a.Frontend, skill)
		case backendStack[key]:
			a.Backend = append(a.Backend, skill)
		default:
			a.Other = append(a.Other, skill)
		}
	}
	return a
}
