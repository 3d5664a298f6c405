package rubric

import (
	"fmt"
	"math"
	"strings"

	"github.com/amrassal1991/MockCall/internal/types"
)

// Match-density thresholds. Empirically tuned rubric constants; kept as-is
// for behavioral compatibility with the calibrated scoring tables.
const (
	fullCreditRatio   = 0.5
	fullCreditMatches = 2
	partialFactor     = 0.6
)

// EvaluateCriterion scores one criterion against normalized agent text.
// Failure conditions are checked first and zero the criterion outright;
// otherwise the score is a step function of keyword match density.
func EvaluateCriterion(crit Criterion, text string, _ types.CallContext) types.CriterionResult {
	res := types.CriterionResult{
		Criterion: crit.Name,
		MaxScore:  crit.MaxScore,
	}

	for _, fc := range crit.FailureConditions {
		check := failureChecks[fc]
		if check.matches(text) {
			res.Score = 0
			res.Justification = fmt.Sprintf("Failed: %s", check.message)
			res.Improvement = check.advice
			return res
		}
	}

	matches := 0
	for _, kw := range crit.Keywords {
		if strings.Contains(text, kw) {
			matches++
		}
	}
	ratio := float64(matches)
	if len(crit.Keywords) > 0 {
		ratio = float64(matches) / float64(len(crit.Keywords))
	}

	switch {
	case ratio >= fullCreditRatio || matches >= fullCreditMatches:
		res.Score = crit.MaxScore
		res.Justification = fmt.Sprintf("Excellent: strong evidence of %s", strings.ToLower(crit.Name))
		res.Strength = crit.Name
	case matches >= 1:
		res.Score = int(math.Ceil(partialFactor * float64(crit.MaxScore)))
		res.Justification = fmt.Sprintf("Good: partial evidence of %s", strings.ToLower(crit.Name))
	default:
		res.Score = 0
		res.Justification = fmt.Sprintf("Missing: no evidence of %s", strings.ToLower(crit.Name))
		res.Improvement = fmt.Sprintf("%s — %s", crit.Name, crit.Description)
	}
	return res
}
