// Package session owns the mutable per-call state: the conversational
// context tracker and the call lifecycle state machine. All scoring stays in
// the pure analyzer/rubric packages; this package only sequences it.
package session

import (
	"strings"

	"github.com/amrassal1991/MockCall/internal/rubric"
	"github.com/amrassal1991/MockCall/internal/types"
)

// Stage thresholds by turn count. This is a deliberately coarse estimate,
// independent of the per-section scoring: coaching hints key off this signal
// while scoring keys off the rubric. Do not collapse the two.
func stageForTurn(turnCount int) types.Stage {
	switch {
	case turnCount <= 2:
		return types.StageStart
	case turnCount <= 6:
		return types.StageSolve
	case turnCount <= 8:
		return types.StageSell
	default:
		return types.StageSummarize
	}
}

var irateIndicators = []string{
	"angry", "furious", "ridiculous", "unacceptable", "fed up",
	"terrible", "worst", "sick of", "outrageous",
}

var satisfiedIndicators = []string{
	"thank you", "thanks", "great", "perfect", "wonderful", "appreciate", "awesome",
}

var authIndicators = []string{
	"verify", "verified", "verification", "confirm your", "security question",
	"date of birth", "last four",
}

// Advance produces the context for the next turn: bumps the turn count,
// re-derives the coarse stage, rescans sentiment and authentication evidence,
// and finally applies any caller-supplied overrides on top. The input context
// is taken by value; the caller decides what to do with the result.
func Advance(ctx types.CallContext, agentText, customerText string, overrides *types.ContextOverrides) types.CallContext {
	ctx.TurnCount++
	ctx.Stage = stageForTurn(ctx.TurnCount)

	customer := rubric.Normalize(customerText)
	if hasAny(customer, irateIndicators) {
		// Irate always wins over an earlier satisfied reading.
		ctx.Sentiment = types.SentimentIrate
	} else if hasAny(customer, satisfiedIndicators) {
		ctx.Sentiment = types.SentimentSatisfied
	}

	// Authentication is sticky: once verified, never reset.
	if hasAny(rubric.Normalize(agentText), authIndicators) {
		ctx.Authenticated = true
	}

	if overrides != nil {
		if overrides.Sentiment != nil {
			ctx.Sentiment = *overrides.Sentiment
		}
		if overrides.Authenticated != nil {
			ctx.Authenticated = *overrides.Authenticated
		}
		if overrides.OptedOutOfSales != nil {
			ctx.OptedOutOfSales = *overrides.OptedOutOfSales
		}
	}
	return ctx
}

func hasAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
