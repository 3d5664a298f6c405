package rubric

import (
	"github.com/amrassal1991/MockCall/internal/types"
)

// SellApplicable reports whether the SELL section counts for this context:
// never pitch an irate customer, an unverified caller, or one who opted out.
func SellApplicable(ctx types.CallContext) bool {
	return ctx.Sentiment != types.SentimentIrate && ctx.Authenticated && !ctx.OptedOutOfSales
}

func sellSkipReason(ctx types.CallContext) string {
	switch {
	case ctx.Sentiment == types.SentimentIrate:
		return "customer is irate; a sales offer would escalate the call"
	case !ctx.Authenticated:
		return "caller identity not verified; offers require authentication"
	default:
		return "customer opted out of sales offers"
	}
}

// AnalyzeSection evaluates every criterion of one section against the agent
// utterance and sums the results. An inapplicable SELL section returns a
// zero-score result flagged non-applicable, with a single synthetic criterion
// documenting why, so coaching output never penalizes the agent for it.
func (c *Catalog) AnalyzeSection(id types.SectionID, agentText, customerText string, ctx types.CallContext) types.SectionResult {
	sec := c.Section(id)
	if sec == nil {
		return types.SectionResult{Section: id}
	}

	res := types.SectionResult{
		Section:    id,
		Name:       sec.Name,
		MaxScore:   sec.MaxPoints,
		Applicable: true,
	}

	if id == types.SectionSell && !SellApplicable(ctx) {
		res.Applicable = false
		res.Criteria = []types.CriterionResult{{
			Criterion:     "Sales applicability",
			Score:         0,
			MaxScore:      0,
			Justification: "Not applicable: " + sellSkipReason(ctx),
		}}
		return res
	}

	text := Normalize(agentText)
	for _, crit := range sec.Criteria {
		cr := EvaluateCriterion(crit, text, ctx)
		res.Score += cr.Score
		res.Criteria = append(res.Criteria, cr)
		if cr.Strength != "" {
			res.Strengths = append(res.Strengths, cr.Strength)
		}
		if cr.Improvement != "" {
			res.Improvements = append(res.Improvements, cr.Improvement)
		}
	}
	return res
}
