package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/theroslabs/vitals-tracker/internal/domain"
	"github.com/theroslabs/vitals-tracker/internal/logger"
)

// Narrative thresholds: minimum |change_pct| before a metric earns a
// sentence.
const (
	restingHRChangeThreshold = 3.0
	hrvChangeThreshold       = 6.0
)

const noChangesNarrative = "No notable changes detected in the last period."

// InsightService produces the deterministic narrative and, when a
// rewriter is configured, a best-effort AI rewrite of the summary.
type InsightService struct {
	summaries *SummaryService
	rewriter  domain.NarrativeRewriter // nil when no provider is configured
	timeout   time.Duration
}

func NewInsightService(summaries *SummaryService, rewriter domain.NarrativeRewriter, timeout time.Duration) *InsightService {
	return &InsightService{summaries: summaries, rewriter: rewriter, timeout: timeout}
}

// Insights computes the summary for the trailing window and narrates
// it. The rewriter call is bounded by the configured timeout and must
// never fail the request: any error leaves the ai field absent.
func (s *InsightService) Insights(ctx context.Context, days int) (*domain.Insights, error) {
	summary, err := s.summaries.Compute(ctx, days)
	if err != nil {
		return nil, err
	}

	out := &domain.Insights{
		Deterministic: Narrate(summary),
		Summary:       summary,
	}

	if s.rewriter != nil {
		rctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		text, err := s.rewriter.Rewrite(rctx, summary)
		if err != nil {
			logger.Warn("narrative rewrite failed", "error", err)
		} else if text != "" {
			out.AI = &text
		}
	}

	return out, nil
}

// Narrate renders the deterministic narrative: a fixed rule set, each
// rule contributing at most one sentence, joined by spaces.
func Narrate(summary *domain.Summary) string {
	var parts []string

	if r := summary.Stats[domain.MetricRestingHR]; r.ChangePct != nil && math.Abs(*r.ChangePct) >= restingHRChangeThreshold {
		parts = append(parts, trendSentence("Resting HR", *r.ChangePct, r.Avg, "bpm"))
	}
	if h := summary.Stats[domain.MetricHRV]; h.ChangePct != nil && math.Abs(*h.ChangePct) >= hrvChangeThreshold {
		parts = append(parts, trendSentence("HRV", *h.ChangePct, h.Avg, "ms"))
	}
	if len(summary.Anomalies) > 0 {
		parts = append(parts, "Anomalies: "+strings.Join(summary.Anomalies, "; "))
	}

	if len(parts) == 0 {
		return noChangesNarrative
	}
	return strings.Join(parts, " ")
}

func trendSentence(label string, changePct float64, avg *float64, unit string) string {
	direction := "decreased"
	if changePct > 0 {
		direction = "increased"
	}
	// avg is always present when change_pct is: both need at least one
	// value in the window.
	avgValue := 0.0
	if avg != nil {
		avgValue = *avg
	}
	return fmt.Sprintf("%s %s by %.1f%% (avg %.1f %s).", label, direction, math.Abs(changePct), avgValue, unit)
}
