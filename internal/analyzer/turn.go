// Package analyzer orchestrates the scoring of a single conversational turn:
// auto-fail screen first, then every rubric section in fixed order, then the
// derived coaching output (insights, opportunities, next-step hint).
package analyzer

import (
	"fmt"

	"github.com/amrassal1991/MockCall/internal/rubric"
	"github.com/amrassal1991/MockCall/internal/types"
)

// TurnAnalyzer scores turns against a shared, immutable catalog. It holds no
// mutable state and is safe for concurrent use.
type TurnAnalyzer struct {
	catalog *rubric.Catalog
}

func New(catalog *rubric.Catalog) *TurnAnalyzer {
	return &TurnAnalyzer{catalog: catalog}
}

// AnalyzeTurn scores one agent/customer exchange against the full rubric.
// A detected auto-fail short-circuits: the turn scores zero and no section
// evaluation runs.
func (t *TurnAnalyzer) AnalyzeTurn(agentText, customerText string, ctx types.CallContext) types.TurnAnalysis {
	analysis := types.TurnAnalysis{
		MaxTotalScore: rubric.MaxTotal,
		Sections:      map[types.SectionID]types.SectionResult{},
	}

	if af := t.catalog.CheckAutoFail(agentText); af.Detected {
		analysis.AutoFailDetected = true
		analysis.AutoFailReason = af.Reason
		return analysis
	}

	for _, id := range rubric.SectionOrder {
		sr := t.catalog.AnalyzeSection(id, agentText, customerText, ctx)
		analysis.Sections[id] = sr
		analysis.TotalScore += sr.Score
	}

	analysis.Insights = t.insights(analysis)
	analysis.Opportunities = t.opportunities(analysis)
	analysis.NextStepHints = []types.NextStepHint{t.nextStepHint(analysis)}
	return analysis
}

func (t *TurnAnalyzer) insights(a types.TurnAnalysis) []types.Insight {
	pct := a.Percentage()
	var out []types.Insight
	switch {
	case pct >= 80:
		out = append(out, types.Insight{
			Tier:    types.InsightSuccess,
			Message: fmt.Sprintf("Strong turn: %d%% of available points earned", pct),
		})
	case pct >= 60:
		out = append(out, types.Insight{
			Tier:    types.InsightWarning,
			Message: fmt.Sprintf("Workable turn at %d%%; a few sections need attention", pct),
		})
	default:
		out = append(out, types.Insight{
			Tier:    types.InsightError,
			Message: fmt.Sprintf("Weak turn at %d%%; review the fundamentals below", pct),
		})
	}

	for _, id := range rubric.SectionOrder {
		sr := a.Sections[id]
		if !sr.Applicable {
			continue
		}
		switch {
		case sr.Score == 0:
			out = append(out, types.Insight{
				Tier:    types.InsightError,
				Section: id,
				Message: fmt.Sprintf("%s was missed entirely this turn", sr.Name),
			})
		case sr.Score == sr.MaxScore:
			out = append(out, types.Insight{
				Tier:    types.InsightSuccess,
				Section: id,
				Message: fmt.Sprintf("%s executed perfectly", sr.Name),
			})
		}
	}
	return out
}

func (t *TurnAnalyzer) opportunities(a types.TurnAnalysis) []types.Opportunity {
	var out []types.Opportunity
	for _, id := range rubric.SectionOrder {
		sr := a.Sections[id]
		if !sr.Applicable || sr.Score >= sr.MaxScore {
			continue
		}
		for _, cr := range sr.Criteria {
			if cr.Score >= cr.MaxScore {
				continue
			}
			impact := "medium"
			if cr.Score == 0 {
				impact = "high"
			}
			sec := t.catalog.Section(id)
			out = append(out, types.Opportunity{
				Section:     id,
				Criterion:   cr.Criterion,
				Description: criterionDescription(sec, cr.Criterion),
				Suggestion:  suggestionFor(sec, cr.Criterion),
				Impact:      impact,
			})
		}
	}
	return out
}

// nextStepHint picks the single highest-priority coaching hint: opening
// fundamentals first, then resolution, then (when pitching is allowed) the
// offer, and a wrap-up prompt when everything else is on track.
func (t *TurnAnalyzer) nextStepHint(a types.TurnAnalysis) types.NextStepHint {
	below := func(id types.SectionID) bool {
		sr := a.Sections[id]
		return sr.MaxScore > 0 && sr.Score*100 < sr.MaxScore*80
	}
	switch {
	case below(types.SectionStart):
		return types.NextStepHint{
			Stage:    types.StageStart,
			Hint:     "Reset the opening: greet with the company name, acknowledge the issue, and verify the caller.",
			Priority: "high",
		}
	case below(types.SectionSolve):
		return types.NextStepHint{
			Stage:    types.StageSolve,
			Hint:     "Dig into the issue: ask a probing question, then walk the customer through a concrete fix.",
			Priority: "high",
		}
	case a.Sections[types.SectionSell].Applicable && below(types.SectionSell):
		return types.NextStepHint{
			Stage:    types.StageSell,
			Hint:     "The issue is handled; bridge into the offer and ask permission before pitching.",
			Priority: "medium",
		}
	default:
		return types.NextStepHint{
			Stage:    types.StageSummarize,
			Hint:     "Recap what was done, invite remaining questions, and close the call warmly.",
			Priority: "low",
		}
	}
}

func criterionDescription(sec *rubric.Section, name string) string {
	if sec == nil {
		return ""
	}
	for _, crit := range sec.Criteria {
		if crit.Name == name {
			return crit.Description
		}
	}
	return ""
}

// suggestionTable maps criterion names to targeted coaching lines. Criteria
// without an entry fall back to a generic line built from the description.
var suggestionTable = map[string]string{
	"Professional greeting":       "Open every call with your name and the company name in the first sentence.",
	"Empathy statement":           "Reflect the customer's frustration back in your own words before troubleshooting.",
	"Ownership language":          "Say \"let me take care of that\" instead of describing what the system allows.",
	"Account verification":        "Verify identity early; it unlocks account actions and the sales conversation.",
	"Probing questions":           "Ask one open question about when the problem started before proposing fixes.",
	"Active listening":            "Paraphrase the customer's answer before moving on, so they hear you heard them.",
	"Solution offered":            "Name the specific fix you are applying, not just that you are \"looking into it\".",
	"Expectations set":            "Give a timeframe: when the fix lands, and when you will follow up if it doesn't.",
	"Transition to offer":         "Tie the offer to something the customer said earlier in the call.",
	"Value proposition":           "Lead with the saving or benefit, then the product name.",
	"Permission-based ask":        "Ask \"would you like to hear about it?\" and respect a no immediately.",
	"Resolution recap":            "Summarize what changed on the account in one or two sentences.",
	"Additional assistance offer": "Always ask whether anything else is needed before closing.",
	"Professional close":          "Thank the customer for calling and close on a warm note.",
	"Courtesy":                    "Sprinkle please and thank-you naturally; scripted politeness reads as cold.",
	"Positive language":           "Swap \"I can't\" for \"what I can do is\".",
	"Clear communication":         "Number the steps when walking a customer through a process.",
}

func suggestionFor(sec *rubric.Section, name string) string {
	if s, ok := suggestionTable[name]; ok {
		return s
	}
	return "Focus on: " + criterionDescription(sec, name)
}
