package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingsComplete(t *testing.T) {
	for name, hands := range map[string][]string{
		"multiway": RankedHands,
		"headsup":  HeadsUpRankedHands,
	} {
		require.Len(t, hands, 169, "%s ordering must cover every starting hand", name)
		seen := make(map[string]bool, len(hands))
		for _, h := range hands {
			assert.False(t, seen[h], "%s ordering repeats %s", name, h)
			seen[h] = true
		}
	}
}

func TestRankingsSameHandSet(t *testing.T) {
	multiway := make(map[string]bool, len(RankedHands))
	for _, h := range RankedHands {
		multiway[h] = true
	}
	for _, h := range HeadsUpRankedHands {
		assert.True(t, multiway[h], "%s missing from multiway ordering", h)
	}
}

func TestIndexOf(t *testing.T) {
	i, err := IndexOf("AA")
	require.NoError(t, err)
	assert.Zero(t, i, "aces are the best starting hand")

	i, err = IndexOf("72o")
	require.NoError(t, err)
	assert.Equal(t, 168, i, "seven-deuce is the worst")

	_, err = IndexOf("ZZ")
	assert.Error(t, err)
}

func TestHeadsUpIndexOf(t *testing.T) {
	multi, err := IndexOf("A2o")
	require.NoError(t, err)
	hu, err := HeadsUpIndexOf("A2o")
	require.NoError(t, err)
	assert.Less(t, hu, multi, "ace-x climbs heads-up")

	_, err = HeadsUpIndexOf("XYs")
	assert.Error(t, err)
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange("AA", 1))
	assert.False(t, InRange("KK", 1))
	assert.True(t, InRange("72o", 169))
	assert.False(t, InRange("bogus", 169))
}

func TestTopN(t *testing.T) {
	top := TopN(3)
	assert.Equal(t, []string{RankedHands[0], RankedHands[1], RankedHands[2]}, top)
	assert.Len(t, TopN(500), 169)

	top[0] = "mutated"
	assert.NotEqual(t, "mutated", RankedHands[0])
}

func TestClampCutoff(t *testing.T) {
	assert.Equal(t, 1, clampCutoff(-5))
	assert.Equal(t, 1, clampCutoff(0))
	assert.Equal(t, 80, clampCutoff(80))
	assert.Equal(t, 169, clampCutoff(500))
}
