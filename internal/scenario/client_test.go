package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_MockMode(t *testing.T) {
	t.Setenv("USE_MOCK_SCENARIOS", "true")

	sc, err := Fetch("billing-dispute")
	require.NoError(t, err)
	assert.Equal(t, "billing-dispute", sc.ID)
	assert.NotEmpty(t, sc.Label)
	assert.NotEmpty(t, sc.OpeningComplaint)

	// Mock mode is deterministic.
	again, err := Fetch("billing-dispute")
	require.NoError(t, err)
	assert.Equal(t, sc, again)
}

func TestFetch_MockModeDefaultsID(t *testing.T) {
	t.Setenv("USE_MOCK_SCENARIOS", "true")

	sc, err := Fetch("")
	require.NoError(t, err)
	assert.Equal(t, "billing-dispute", sc.ID)
}

func TestFetch_RequiresProviderURL(t *testing.T) {
	t.Setenv("USE_MOCK_SCENARIOS", "false")
	t.Setenv("SCENARIO_API_URL", "")

	_, err := Fetch("any")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCENARIO_API_URL")
}
