package filtering

import (
	"context"
	"strings"

	"github.com/dnlam/staff-matcher/internal/hrapi"
)

type skillsFilter struct {
	techStack []string
}

// NewSkills creates a filter that removes employees with no usable skill
// data and employees sharing no technology with the required stack.
// Matching is a case-insensitive name comparison; fuzzy skill relevance
// is left to the scoring stage.
func NewSkills(techStack []string) Filter {
	return &skillsFilter{techStack: techStack}
}

func (f *skillsFilter) Name() string { return "skills" }

func (f *skillsFilter) Disable(string) {}

func (f *skillsFilter) IsEnabled() bool { return true }

func (f *skillsFilter) Validate() error { return nil }

func (f *skillsFilter) Apply(_ context.Context, e *hrapi.Employees) (*hrapi.Employees, Step, error) {
	initial := e.Len()

	required := make(map[string]bool, len(f.techStack))
	for _, tech := range f.techStack {
		if name := strings.ToLower(strings.TrimSpace(tech)); name != "" {
			required[name] = true
		}
	}

	left := e.Keep(func(emp *hrapi.Employee) bool {
		if !emp.HasValidSkills() {
			return false
		}
		if len(required) == 0 {
			return true
		}
		for name := range emp.SkillNames() {
			if required[name] {
				return true
			}
		}
		return false
	})

	return left, Step{Initial: initial, Dropped: initial - left.Len(), Left: left.Len()}, nil
}
