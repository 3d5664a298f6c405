package aggregator

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/amrassal1991/MockCall/internal/rubric"
	"github.com/amrassal1991/MockCall/internal/types"
)

// Performance tiers for the whole call.
const (
	TierHighlyEffective   = "Highly Effective"
	TierMeetsExpectations = "Meets Expectations"
	TierBelowExpectations = "Below Expectations"
)

// Satisfaction tiers derived from the promoter probability.
const (
	SatisfactionPromoter  = "Promoter"
	SatisfactionPassive   = "Passive"
	SatisfactionDetractor = "Detractor"
)

var focusAdvice = map[types.SectionID]string{
	types.SectionStart:     "Drill the opening: company-name greeting, empathy, then verification, in that order.",
	types.SectionSolve:     "Practice leading with one probing question before offering any fix.",
	types.SectionSell:      "Rehearse permission-based transitions so offers feel earned, not bolted on.",
	types.SectionSummarize: "End every practice call with a recap and an anything-else check.",
	types.SectionBehaviors: "Record yourself and count blocker phrases; replace each with a can-do framing.",
}

// AggregateSession computes the final report for an ended call from its full
// turn history. Auto-failed turns count as zero toward the overall average;
// per-section averages only cover turns where the section was applicable, so
// an inapplicable SELL never drags the sales numbers down.
func AggregateSession(turns []types.TurnRecord, scenarioLabel string, duration time.Duration, endReason string) types.SessionReport {
	report := types.SessionReport{
		CallSummary: types.CallSummary{
			Scenario:        scenarioLabel,
			DurationSeconds: int64(duration.Seconds()),
			TurnCount:       len(turns),
			EndReason:       endReason,
		},
	}

	sections := make(map[types.SectionID]types.SectionBreakdown, len(rubric.SectionOrder))
	sectionPct := make(map[types.SectionID]int, len(rubric.SectionOrder))
	totalSum := 0
	for _, id := range rubric.SectionOrder {
		var scores []int
		maxScore := 0
		for _, rec := range turns {
			sr, ok := rec.Analysis.Sections[id]
			if !ok || !sr.Applicable {
				continue
			}
			scores = append(scores, sr.Score)
			maxScore = sr.MaxScore
		}
		bd := types.SectionBreakdown{
			MaxScore:        maxScore,
			ApplicableTurns: len(scores),
			Trend:           ClassifyTrend(scores),
		}
		if len(scores) > 0 && maxScore > 0 {
			bd.AverageScore = round2(average(scores))
			bd.Percentage = int(math.Round(bd.AverageScore * 100 / float64(maxScore)))
		}
		sections[id] = bd
		sectionPct[id] = bd.Percentage
	}
	for _, rec := range turns {
		totalSum += rec.Analysis.TotalScore
	}

	avg := 0.0
	if len(turns) > 0 {
		avg = float64(totalSum) / float64(len(turns))
	}
	pct := int(math.Round(avg * 100 / float64(rubric.MaxTotal)))

	report.QualityMetrics = types.QualityMetrics{
		AverageScore:    round2(avg),
		Percentage:      pct,
		PerformanceTier: performanceTier(pct),
		Sections:        sections,
	}
	report.CoachingPlan = coachingPlan(sections, pct)
	report.BusinessMetrics = businessMetrics(sectionPct, pct)
	return report
}

func performanceTier(pct int) string {
	switch {
	case pct >= 90:
		return TierHighlyEffective
	case pct >= 70:
		return TierMeetsExpectations
	default:
		return TierBelowExpectations
	}
}

func coachingPlan(sections map[types.SectionID]types.SectionBreakdown, overallPct int) types.CoachingPlan {
	plan := types.CoachingPlan{
		FocusAreas: []types.FocusArea{},
		Strengths:  []string{},
	}
	switch {
	case overallPct < 60:
		plan.Priority = "high"
	case overallPct < 80:
		plan.Priority = "medium"
	default:
		plan.Priority = "low"
	}

	for _, id := range rubric.SectionOrder {
		bd := sections[id]
		if bd.ApplicableTurns == 0 {
			continue
		}
		name := sectionName(id)
		if bd.Percentage >= 80 {
			plan.Strengths = append(plan.Strengths, name)
			continue
		}
		plan.FocusAreas = append(plan.FocusAreas, types.FocusArea{
			Section:    id,
			Name:       name,
			Percentage: bd.Percentage,
			Advice:     focusAdvice[id],
		})
	}
	sort.SliceStable(plan.FocusAreas, func(i, j int) bool {
		return plan.FocusAreas[i].Percentage < plan.FocusAreas[j].Percentage
	})
	if len(plan.FocusAreas) > 3 {
		plan.FocusAreas = plan.FocusAreas[:3]
	}

	if len(plan.FocusAreas) == 0 {
		plan.Recommendation = "Performance is consistent across the rubric; maintain it on harder scenarios."
	} else {
		plan.Recommendation = fmt.Sprintf(
			"Start with %s (%d%%); it is the lowest-scoring area of this call.",
			plan.FocusAreas[0].Name, plan.FocusAreas[0].Percentage,
		)
	}
	return plan
}

func businessMetrics(sectionPct map[types.SectionID]int, overallPct int) types.BusinessMetrics {
	promoter := 2 * (overallPct - 60)
	if sectionPct[types.SectionStart] > 80 && sectionPct[types.SectionSummarize] > 80 {
		promoter += 15
	}
	if sectionPct[types.SectionBehaviors] < 60 {
		promoter -= 20
	}
	promoter = clamp(promoter, 0, 100)

	solvePct := sectionPct[types.SectionSolve]
	return types.BusinessMetrics{
		PromoterProbability: promoter,
		ResolutionRate:      solvePct,
		SalesOpportunity:    sectionPct[types.SectionSell] > 70,
		FirstCallResolution: solvePct > 80,
		SatisfactionTier:    satisfactionTier(promoter),
	}
}

func satisfactionTier(promoter int) string {
	switch {
	case promoter >= 70:
		return SatisfactionPromoter
	case promoter >= 35:
		return SatisfactionPassive
	default:
		return SatisfactionDetractor
	}
}

func sectionName(id types.SectionID) string {
	switch id {
	case types.SectionStart:
		return "Call Opening"
	case types.SectionSolve:
		return "Issue Resolution"
	case types.SectionSell:
		return "Sales Offer"
	case types.SectionSummarize:
		return "Call Wrap-Up"
	case types.SectionBehaviors:
		return "Professional Behaviors"
	default:
		return string(id)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
