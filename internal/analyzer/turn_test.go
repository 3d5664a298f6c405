package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrassal1991/MockCall/internal/rubric"
	"github.com/amrassal1991/MockCall/internal/types"
)

func newAnalyzer(t *testing.T) *TurnAnalyzer {
	t.Helper()
	catalog, err := rubric.New()
	require.NoError(t, err)
	return New(catalog)
}

func TestAnalyzeTurn_StrongOpening(t *testing.T) {
	a := newAnalyzer(t)
	agent := "Hello, this is John from Comcast. I understand your concern and I'm here to help resolve this for you. Let me verify your account."

	analysis := a.AnalyzeTurn(agent, "", types.NewCallContext())

	assert.False(t, analysis.AutoFailDetected)
	assert.Equal(t, rubric.MaxTotal, analysis.MaxTotalScore)
	assert.GreaterOrEqual(t, analysis.TotalScore, 0)
	assert.LessOrEqual(t, analysis.TotalScore, rubric.MaxTotal)

	start := analysis.Sections[types.SectionStart]
	assert.Greater(t, start.Score, 15, "opening of this quality should score high on START")
	assert.Equal(t, 22, start.MaxScore)

	// Default context is unauthenticated, so SELL cannot apply yet.
	assert.False(t, analysis.Sections[types.SectionSell].Applicable)
}

func TestAnalyzeTurn_AutoFailShortCircuits(t *testing.T) {
	a := newAnalyzer(t)

	analysis := a.AnalyzeTurn("Shut up and listen to me, you idiot!", "", types.NewCallContext())

	assert.True(t, analysis.AutoFailDetected)
	assert.Contains(t, analysis.AutoFailReason, "Rudeness")
	assert.Zero(t, analysis.TotalScore)
	assert.Empty(t, analysis.Sections)
	assert.Empty(t, analysis.Insights)
	assert.Empty(t, analysis.Opportunities)
}

func TestAnalyzeTurn_ScoreBounds(t *testing.T) {
	a := newAnalyzer(t)
	inputs := []string{
		"",
		"?????",
		"Absolutely, thank you for calling, to recap we've confirmed the fix, is there anything else?",
		"zzzzzzzz qqqq 12345 \x00\x01",
	}
	for _, agent := range inputs {
		analysis := a.AnalyzeTurn(agent, "", types.NewCallContext())
		assert.GreaterOrEqual(t, analysis.TotalScore, 0)
		assert.LessOrEqual(t, analysis.TotalScore, rubric.MaxTotal)
		for id, sr := range analysis.Sections {
			assert.GreaterOrEqual(t, sr.Score, 0, "section %s", id)
			assert.LessOrEqual(t, sr.Score, sr.MaxScore, "section %s", id)
		}
	}
}

func TestAnalyzeTurn_InsightTiers(t *testing.T) {
	a := newAnalyzer(t)

	analysis := a.AnalyzeTurn("", "", types.NewCallContext())
	require.NotEmpty(t, analysis.Insights)
	assert.Equal(t, types.InsightError, analysis.Insights[0].Tier)

	// Every applicable section at zero also yields a per-section insight.
	missed := 0
	for _, ins := range analysis.Insights[1:] {
		if ins.Section != "" {
			missed++
		}
	}
	assert.Equal(t, 4, missed, "all four applicable sections were fully missed")
}

func TestAnalyzeTurn_OpportunityImpact(t *testing.T) {
	a := newAnalyzer(t)
	// Partial empathy only; everything else missed.
	analysis := a.AnalyzeTurn("I'm sorry about that.", "", types.NewCallContext())

	require.NotEmpty(t, analysis.Opportunities)
	sawHigh := false
	for _, opp := range analysis.Opportunities {
		assert.NotEmpty(t, opp.Suggestion)
		assert.NotEmpty(t, opp.Description)
		switch opp.Impact {
		case "high":
			sawHigh = true
		case "medium":
			assert.Equal(t, "Empathy statement", opp.Criterion)
		default:
			t.Fatalf("unexpected impact %q", opp.Impact)
		}
	}
	assert.True(t, sawHigh)
}

func TestAnalyzeTurn_NextStepHintOrdering(t *testing.T) {
	a := newAnalyzer(t)

	tests := []struct {
		name      string
		agent     string
		ctx       types.CallContext
		wantStage types.Stage
	}{
		{
			name:      "weak opening flags the start stage",
			agent:     "yeah what's the problem",
			ctx:       types.NewCallContext(),
			wantStage: types.StageStart,
		},
		{
			name:      "solid opening but no resolution work flags solve",
			agent:     "Hello, this is Dana from Acme. I understand your concern and I'm sorry, let me take care of it. I'll verify your account and confirm your identity.",
			ctx:       types.NewCallContext(),
			wantStage: types.StageSolve,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := a.AnalyzeTurn(tt.agent, "", tt.ctx)
			require.Len(t, analysis.NextStepHints, 1)
			assert.Equal(t, tt.wantStage, analysis.NextStepHints[0].Stage)
		})
	}
}
