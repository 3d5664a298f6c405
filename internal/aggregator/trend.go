// Package aggregator turns a finished call's turn history into trend data,
// a coaching plan, and business-metric estimates.
package aggregator

// Trend labels returned by ClassifyTrend.
const (
	TrendInsufficientData = "insufficient_data"
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
)

// trendBand is the score-point delta beyond which a history counts as
// moving rather than stable.
const trendBand = 5

// ClassifyTrend labels a rolling score history by comparing the first and
// last of the most recent three scores.
func ClassifyTrend(scores []int) string {
	if len(scores) < 2 {
		return TrendInsufficientData
	}
	recent := scores
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	diff := recent[len(recent)-1] - recent[0]
	switch {
	case diff > trendBand:
		return TrendImproving
	case diff < -trendBand:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// LiveTrend is the coarser in-call comparator: average of the first half of
// the history against the second, with a one-point band. It intentionally
// reads differently from ClassifyTrend; live coaching wants a blunt signal,
// the final report wants the recency-weighted one.
func LiveTrend(scores []int) string {
	if len(scores) < 2 {
		return TrendInsufficientData
	}
	mid := len(scores) / 2
	early := average(scores[:mid])
	late := average(scores[mid:])
	switch {
	case late-early > 1:
		return TrendImproving
	case early-late > 1:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// LiveRecommendation renders the live trend as a one-line coaching prompt.
func LiveRecommendation(scores []int) string {
	switch LiveTrend(scores) {
	case TrendImproving:
		return "Scores are climbing; keep doing what you're doing."
	case TrendDeclining:
		return "Scores are slipping; slow down and return to the rubric basics."
	case TrendStable:
		return "Scores are holding steady; push one section from good to great."
	default:
		return "Not enough turns yet to read a trend."
	}
}

func average(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}
