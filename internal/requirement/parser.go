package requirement

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/dnlam/staff-matcher/internal/util"
	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Parser turns a free-text project description into a structured
// Requirement using an LLM backend with a fixed output schema.
type Parser struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int

	// now is swapped in tests to pin the default start date.
	now func() time.Time
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

func NewParser(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Parser {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Parser{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
		now:       time.Now,
	}
}

// Parse extracts a validated Requirement from the project description.
// A start date missing from the text defaults to one month out.
func (p *Parser) Parse(ctx context.Context, text string) (*Requirement, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewInputError("project description must not be empty", nil)
	}

	system := buildSystemPrompt(p.defaultStartDate())

	p.logger.Debug("requirement parse request",
		zap.Int("description_length", utf8.RuneCountInString(text)),
		zap.String("description_preview", util.TruncateForLog(text, p.maxLogLen)),
	)

	raw, err := p.generator.GenerateContent(ctx, system, text)
	if err != nil {
		return nil, fmt.Errorf("requirement extraction: %w", err)
	}

	p.logger.Debug("requirement parse response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, p.maxLogLen)),
	)

	req, err := p.parseResponse(raw)
	if err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	p.logger.Info("parsed project requirement",
		zap.String("title", req.Title),
		zap.Strings("tech_stack", req.TechStack),
		zap.Strings("domains", req.Domains),
		zap.String("required_level", req.Level),
		zap.Time("start_date", req.StartDate),
	)

	return req, nil
}

func (p *Parser) defaultStartDate() time.Time {
	return p.now().AddDate(0, 1, 0).UTC().Truncate(24 * time.Hour)
}

func (p *Parser) parseResponse(raw string) (*Requirement, error) {
	cleaned := util.ExtractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, NewInputError("unparseable requirement description", err)
	}

	level, err := ParseLevel(util.CoerceString(data["required_level"]))
	if err != nil {
		return nil, err
	}

	startDate, err := p.parseStartDate(util.CoerceString(data["start_date"]))
	if err != nil {
		return nil, err
	}

	return &Requirement{
		Title:     util.CoerceString(data["title"]),
		TechStack: util.CoerceStringSlice(data["tech_stack"]),
		Domains:   util.CoerceStringSlice(data["domains"]),
		Level:     level,
		StartDate: startDate,
	}, nil
}

// Date layouts seen in extractor output, most specific first.
var startDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (p *Parser) parseStartDate(s string) (time.Time, error) {
	if s == "" {
		return p.defaultStartDate(), nil
	}

	for _, layout := range startDateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, NewInputError(fmt.Sprintf("invalid start date: %q", s), nil)
}

func buildSystemPrompt(defaultStart time.Time) string {
	return strings.ReplaceAll(promptTemplate, "{{DEFAULT_START_DATE}}", defaultStart.Format("2006-01-02"))
}
