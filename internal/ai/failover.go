package ai

import (
	"context"
	"strings"

	"github.com/dnlam/staff-matcher/internal/requirement"
	"github.com/dnlam/staff-matcher/internal/scoring"
	"go.uber.org/zap"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FailoverSummarizer tries the primary summarizer and falls back to the
// local one when the primary errors. With no primary configured it goes
// straight to the fallback.
type FailoverSummarizer struct {
	primary  ProfileSummarizer
	fallback ProfileSummarizer
	logger   *zap.Logger
}

func NewFailoverSummarizer(primary, fallback ProfileSummarizer, logger *zap.Logger) *FailoverSummarizer {
	return &FailoverSummarizer{primary: primary, fallback: fallback, logger: logger}
}

func (s *FailoverSummarizer) SummarizeBatch(ctx context.Context, batch []ProfileRequest) ([]*EmployeeProfile, error) {
	if s.primary != nil {
		profiles, err := s.primary.SummarizeBatch(ctx, batch)
		if err == nil {
			return profiles, nil
		}
		s.logger.Warn("profile summarization failed, falling back to local heuristic",
			zap.Int("batch_size", len(batch)),
			zap.Error(err),
		)
	}

	return s.fallback.SummarizeBatch(ctx, batch)
}

// FailoverEvaluator degrades the whole scoring pass to the deterministic
// local evaluator when the combined remote request fails. There is no
// partial degradation: either the remote path scores the batch or the
// local path scores every candidate.
type FailoverEvaluator struct {
	primary  MatchEvaluator
	fallback MatchEvaluator
	logger   *zap.Logger
}

func NewFailoverEvaluator(primary, fallback MatchEvaluator, logger *zap.Logger) *FailoverEvaluator {
	return &FailoverEvaluator{primary: primary, fallback: fallback, logger: logger}
}

func (e *FailoverEvaluator) EvaluateAll(ctx context.Context, req *requirement.Requirement, profiles []*EmployeeProfile) ([]*scoring.MatchScore, error) {
	if e.primary != nil {
		scores, err := e.primary.EvaluateAll(ctx, req, profiles)
		if err == nil {
			return scores, nil
		}
		e.logger.Warn("match evaluation failed, falling back to deterministic scoring",
			zap.Int("profiles", len(profiles)),
			zap.Error(err),
		)
	}

	return e.fallback.EvaluateAll(ctx, req, profiles)
}
