package rubric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrassal1991/MockCall/internal/types"
)

func TestSellApplicable(t *testing.T) {
	tests := []struct {
		name string
		ctx  types.CallContext
		want bool
	}{
		{
			name: "calm authenticated opted-in",
			ctx:  types.CallContext{Sentiment: types.SentimentNeutral, Authenticated: true},
			want: true,
		},
		{
			name: "satisfied authenticated",
			ctx:  types.CallContext{Sentiment: types.SentimentSatisfied, Authenticated: true},
			want: true,
		},
		{
			name: "irate customer",
			ctx:  types.CallContext{Sentiment: types.SentimentIrate, Authenticated: true},
			want: false,
		},
		{
			name: "not authenticated",
			ctx:  types.CallContext{Sentiment: types.SentimentNeutral},
			want: false,
		},
		{
			name: "opted out",
			ctx:  types.CallContext{Sentiment: types.SentimentNeutral, Authenticated: true, OptedOutOfSales: true},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SellApplicable(tt.ctx))
		})
	}
}

func TestAnalyzeSection_InapplicableSell(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	ctx := types.CallContext{Sentiment: types.SentimentIrate, Authenticated: true}

	res := c.AnalyzeSection(types.SectionSell, "Would you be interested in our upgrade offer?", "", ctx)
	assert.False(t, res.Applicable)
	assert.Zero(t, res.Score)
	assert.Equal(t, 20, res.MaxScore)
	require.Len(t, res.Criteria, 1)
	assert.Contains(t, res.Criteria[0].Justification, "Not applicable")
	assert.Empty(t, res.Improvements)
}

func TestAnalyzeSection_SumsCriteria(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	ctx := types.NewCallContext()

	res := c.AnalyzeSection(types.SectionStart, "Hello, this is Maria from Acme. I understand your concern, let me verify your account.", "", ctx)
	require.True(t, res.Applicable)
	require.Len(t, res.Criteria, 4)

	sum := 0
	for _, cr := range res.Criteria {
		assert.GreaterOrEqual(t, cr.Score, 0)
		assert.LessOrEqual(t, cr.Score, cr.MaxScore)
		sum += cr.Score
	}
	assert.Equal(t, sum, res.Score)
	assert.LessOrEqual(t, res.Score, res.MaxScore)
	assert.NotEmpty(t, res.Strengths)
}

func TestAnalyzeSection_EmptyTextIsImprovementsNotErrors(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	res := c.AnalyzeSection(types.SectionSolve, "", "", types.NewCallContext())
	assert.True(t, res.Applicable)
	assert.Zero(t, res.Score)
	assert.NotEmpty(t, res.Improvements)
}
