// Package profiling turns raw HR employee records into normalized
// profiles. Employees are summarized in batches running in parallel;
// a failed batch is logged and skipped without aborting its siblings.
package profiling

import (
	"context"
	"fmt"
	"strings"

	"github.com/dnlam/staff-matcher/internal/ai"
	"github.com/dnlam/staff-matcher/internal/hrapi"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBatchSize   = 50
	DefaultMaxParallel = 4
)

type Profiler struct {
	summarizer  ai.ProfileSummarizer
	logger      *zap.Logger
	batchSize   int
	maxParallel int
}

func New(summarizer ai.ProfileSummarizer, logger *zap.Logger, batchSize, maxParallel int) *Profiler {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}

	return &Profiler{
		summarizer:  summarizer,
		logger:      logger,
		batchSize:   batchSize,
		maxParallel: maxParallel,
	}
}

// ProfileAll summarizes every employee with usable skill data. Employees
// without any valid primary skill never reach the summarizer.
func (p *Profiler) ProfileAll(ctx context.Context, employees *hrapi.Employees) ([]*ai.EmployeeProfile, error) {
	requests := p.buildRequests(employees)
	if len(requests) == 0 {
		p.logger.Warn("no employees with usable skill data to profile")
		return nil, nil
	}

	batches := chunk(requests, p.batchSize)
	results := make([][]*ai.EmployeeProfile, len(batches))
	batchErrs := make([]error, len(batches))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.maxParallel)

	for i, batch := range batches {
		group.Go(func() error {
			profiles, err := p.summarizer.SummarizeBatch(groupCtx, batch)
			if err != nil {
				// One bad batch must not take down the run.
				batchErrs[i] = err
				p.logger.Error("profile batch failed",
					zap.Int("batch", i),
					zap.Int("size", len(batch)),
					zap.Error(err),
				)
				return nil
			}
			results[i] = profiles
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	var failedBatches int
	for _, err := range batchErrs {
		if err != nil {
			failedBatches++
		}
	}

	var profiles []*ai.EmployeeProfile
	for _, batch := range results {
		profiles = append(profiles, batch...)
	}

	p.logger.Info("profiling complete",
		zap.Int("employees", employees.Len()),
		zap.Int("requested", len(requests)),
		zap.Int("batches", len(batches)),
		zap.Int("failed_batches", failedBatches),
		zap.Int("profiles", len(profiles)),
	)

	return profiles, nil
}

func (p *Profiler) buildRequests(employees *hrapi.Employees) []ai.ProfileRequest {
	requests := make([]ai.ProfileRequest, 0, employees.Len())
	for _, emp := range employees.Items {
		if !emp.HasValidSkills() {
			p.logger.Debug("skipping employee, invalid primary skills",
				zap.String("employee", emp.EmpCode),
			)
			continue
		}

		skillsByLevel := groupSkills(emp.Skills)
		text := formatProfile(emp, skillsByLevel)
		if text == "" {
			p.logger.Debug("skipping employee, insufficient profile data",
				zap.String("employee", emp.EmpCode),
			)
			continue
		}

		requests = append(requests, ai.ProfileRequest{
			EmpCode:          emp.EmpCode,
			Text:             text,
			SkillsByLevel:    skillsByLevel,
			Domains:          domainNames(emp.BusinessDomains),
			AdditionalSkills: additionalSkillNames(emp.AdditionalSkills),
		})
	}
	return requests
}

func groupSkills(skills []*hrapi.Skill) map[string][]string {
	grouped := make(map[string][]string)
	for _, skill := range skills {
		name := strings.TrimSpace(skill.SkillName)
		level := strings.ToLower(strings.TrimSpace(skill.Level))
		if name == "" || strings.EqualFold(name, "none") || level == "" {
			continue
		}
		grouped[level] = append(grouped[level], name)
	}
	return grouped
}

func domainNames(domains []*hrapi.BusinessDomain) []string {
	names := make([]string, 0, len(domains))
	for _, domain := range domains {
		if name := strings.TrimSpace(domain.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func additionalSkillNames(skills []*hrapi.AdditionalSkill) []string {
	names := make([]string, 0, len(skills))
	for _, skill := range skills {
		name := strings.TrimSpace(skill.Name)
		if name == "" || strings.EqualFold(name, "none") {
			continue
		}
		names = append(names, name)
	}
	return names
}

func formatProfile(emp *hrapi.Employee, skillsByLevel map[string][]string) string {
	var skillLines []string
	for _, level := range []string{"advanced", "intermediate", "beginner"} {
		if names := skillsByLevel[level]; len(names) > 0 {
			skillLines = append(skillLines, fmt.Sprintf("- %s%s: %s",
				strings.ToUpper(level[:1]), level[1:], strings.Join(names, ", ")))
		}
	}
	if len(skillLines) == 0 {
		return ""
	}

	domainLines := "No domain information available"
	if domains := domainNames(emp.BusinessDomains); len(domains) > 0 {
		domainLines = "- " + strings.Join(domains, "\n- ")
	}

	additionalLines := "No additional skills information available"
	if additional := additionalSkillNames(emp.AdditionalSkills); len(additional) > 0 {
		additionalLines = "- " + strings.Join(additional, "\n- ")
	}

	return fmt.Sprintf(
		"Employee Code: %s\n\nTechnical Skills:\n%s\n\nBusiness Domains:\n%s\n\nAdditional Skills:\n%s",
		emp.EmpCode,
		strings.Join(skillLines, "\n"),
		domainLines,
		additionalLines,
	)
}

func chunk(requests []ai.ProfileRequest, size int) [][]ai.ProfileRequest {
	var batches [][]ai.ProfileRequest
	for start := 0; start < len(requests); start += size {
		end := start + size
		if end > len(requests) {
			end = len(requests)
		}
		batches = append(batches, requests[start:end])
	}
	return batches
}
