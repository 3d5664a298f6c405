package rubric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrassal1991/MockCall/internal/types"
)

func TestNew_CatalogInvariants(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	total := 0
	for _, sec := range c.Sections() {
		sum := 0
		for _, crit := range sec.Criteria {
			assert.GreaterOrEqual(t, crit.MaxScore, 0)
			sum += crit.MaxScore
		}
		assert.Equal(t, sec.MaxPoints, sum, "section %s criteria must sum to maxPoints", sec.ID)
		total += sec.MaxPoints
	}
	assert.Equal(t, MaxTotal, total)
}

func TestNew_FixedSectionOrder(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	want := []types.SectionID{
		types.SectionStart,
		types.SectionSolve,
		types.SectionSell,
		types.SectionSummarize,
		types.SectionBehaviors,
	}
	secs := c.Sections()
	require.Len(t, secs, len(want))
	for i, id := range want {
		assert.Equal(t, id, secs[i].ID)
	}
	assert.Equal(t, want, SectionOrder)
}

func TestSection_Lookup(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	sec := c.Section(types.SectionSolve)
	require.NotNil(t, sec)
	assert.Equal(t, 27, sec.MaxPoints)

	assert.Nil(t, c.Section(types.SectionID("BOGUS")))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello there", Normalize("  Hello\n\tTHERE  "))
	assert.Equal(t, "", Normalize("   "))
}
