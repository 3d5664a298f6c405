package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amrassal1991/MockCall/internal/types"
)

func TestAdvance_StageFollowsTurnCount(t *testing.T) {
	wantByTurn := map[int]types.Stage{
		1:  types.StageStart,
		2:  types.StageStart,
		3:  types.StageSolve,
		6:  types.StageSolve,
		7:  types.StageSell,
		8:  types.StageSell,
		9:  types.StageSummarize,
		12: types.StageSummarize,
	}

	ctx := types.NewCallContext()
	for turn := 1; turn <= 12; turn++ {
		ctx = Advance(ctx, "let me check", "still waiting", nil)
		assert.Equal(t, turn, ctx.TurnCount)
		if want, ok := wantByTurn[turn]; ok {
			assert.Equal(t, want, ctx.Stage, "turn %d", turn)
		}
	}
}

func TestAdvance_Sentiment(t *testing.T) {
	tests := []struct {
		name     string
		prior    types.Sentiment
		customer string
		want     types.Sentiment
	}{
		{
			name:     "irate indicator",
			prior:    types.SentimentNeutral,
			customer: "This is completely unacceptable.",
			want:     types.SentimentIrate,
		},
		{
			name:     "satisfied indicator",
			prior:    types.SentimentNeutral,
			customer: "That's perfect, thanks!",
			want:     types.SentimentSatisfied,
		},
		{
			name:     "irate overrides earlier satisfied",
			prior:    types.SentimentSatisfied,
			customer: "Thanks for nothing, this is ridiculous.",
			want:     types.SentimentIrate,
		},
		{
			name:     "no indicators keep prior reading",
			prior:    types.SentimentSatisfied,
			customer: "Okay, go ahead.",
			want:     types.SentimentSatisfied,
		},
		{
			name:     "empty customer text keeps prior reading",
			prior:    types.SentimentIrate,
			customer: "",
			want:     types.SentimentIrate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := types.NewCallContext()
			ctx.Sentiment = tt.prior
			ctx = Advance(ctx, "let me check on that", tt.customer, nil)
			assert.Equal(t, tt.want, ctx.Sentiment)
		})
	}
}

func TestAdvance_AuthenticationIsSticky(t *testing.T) {
	ctx := types.NewCallContext()

	ctx = Advance(ctx, "Let me verify your account first.", "", nil)
	assert.True(t, ctx.Authenticated)

	// Nothing auth-related in later turns; the flag never resets.
	ctx = Advance(ctx, "Okay, done.", "Cool.", nil)
	assert.True(t, ctx.Authenticated)
}

func TestAdvance_OverridesApplyLast(t *testing.T) {
	optOut := true
	irate := types.SentimentIrate

	ctx := types.NewCallContext()
	ctx = Advance(ctx, "let me verify your account", "that's perfect, thanks", &types.ContextOverrides{
		OptedOutOfSales: &optOut,
		Sentiment:       &irate,
	})

	assert.True(t, ctx.OptedOutOfSales)
	assert.Equal(t, types.SentimentIrate, ctx.Sentiment, "override wins over the scanned satisfied reading")
	assert.True(t, ctx.Authenticated)
}
