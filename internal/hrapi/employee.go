package hrapi

import (
	"fmt"
	"strings"
)

const skillsPath = "/integrate/skill"

type Employees struct {
	Items []*Employee
}

type Employee struct {
	EmpCode          string             `json:"empCode,omitempty"`
	Skills           []*Skill           `json:"skills,omitempty"`
	AdditionalSkills []*AdditionalSkill `json:"additionalSkills,omitempty"`
	BusinessDomains  []*BusinessDomain  `json:"businessDomains,omitempty"`
}

type Skill struct {
	SkillID           int    `json:"skillId,omitempty"`
	SkillName         string `json:"skillName,omitempty"`
	Level             string `json:"level,omitempty"`
	MonthOfExperience int    `json:"monthOfExperience,omitempty"`
	IsPrimary         bool   `json:"isPrimary,omitempty"`
}

type AdditionalSkill struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"additionalSkillName,omitempty"`
}

type BusinessDomain struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"businessDomainName,omitempty"`
}

// ListEmployees fetches employee skill records from the empinfo API.
func (c *Client) ListEmployees() (*Employees, error) {
	apiURL := fmt.Sprintf("%s%s", c.EmpInfoURL, skillsPath)

	var items []*Employee
	if err := c.getJSON(apiURL, c.empInfoToken, nil, &items); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	return &Employees{Items: items}, nil
}

func (e *Employees) Len() int {
	return len(e.Items)
}

func (e *Employees) Codes() []string {
	codes := make([]string, 0, len(e.Items))
	for _, emp := range e.Items {
		codes = append(codes, emp.EmpCode)
	}
	return codes
}

func (e *Employees) FindByCode(code string) *Employee {
	for _, emp := range e.Items {
		if emp.EmpCode == code {
			return emp
		}
	}
	return nil
}

// Keep returns a new collection containing the employees the predicate
// accepts, in the original order.
func (e *Employees) Keep(pred func(*Employee) bool) *Employees {
	kept := make([]*Employee, 0, len(e.Items))
	for _, emp := range e.Items {
		if pred(emp) {
			kept = append(kept, emp)
		}
	}
	return &Employees{Items: kept}
}

// HasValidSkills reports whether the employee has at least one skill entry
// and no entry with an empty or "none" name. Records failing this are data
// quality rejects.
func (emp *Employee) HasValidSkills() bool {
	if len(emp.Skills) == 0 {
		return false
	}
	for _, skill := range emp.Skills {
		name := strings.TrimSpace(skill.SkillName)
		if name == "" || strings.EqualFold(name, "none") {
			return false
		}
	}
	return true
}

// SkillNames returns the lowercased set of all skill names, primary and
// additional.
func (emp *Employee) SkillNames() map[string]bool {
	names := make(map[string]bool, len(emp.Skills)+len(emp.AdditionalSkills))
	for _, skill := range emp.Skills {
		if name := strings.ToLower(strings.TrimSpace(skill.SkillName)); name != "" {
			names[name] = true
		}
	}
	for _, skill := range emp.AdditionalSkills {
		if name := strings.ToLower(strings.TrimSpace(skill.Name)); name != "" {
			names[name] = true
		}
	}
	return names
}
