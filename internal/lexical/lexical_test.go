package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/suitability-engine/internal/catalog"
)

func TestNormalise(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello,   World! ", "hello world"},
		{"High-Level", "high level"},
		{"", ""},
		{"???", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalise(tt.in), "input %q", tt.in)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"climate, biodiversity and water", []string{"climate", "biodiversity", "water"}},
		{"tobacco; weapons\ngambling", []string{"tobacco", "weapons", "gambling"}},
		{"   ", nil},
	}
	for _, tt := range tests {
		got := SplitList(tt.in)
		if tt.want == nil {
			assert.Empty(t, got)
			continue
		}
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestIsAffirmativeAndNegative(t *testing.T) {
	for _, s := range []string{"yes", "Yeah, ready", "I consent", "okay", "I understand", "confirmed"} {
		assert.True(t, IsAffirmative(s), "expected affirmative: %q", s)
	}
	for _, s := range []string{"no", "none", "not at this time", "I decline"} {
		assert.True(t, IsNegative(s), "expected negative: %q", s)
	}
	assert.False(t, IsAffirmative("maybe later"))
	assert.False(t, IsNegative("growth"))
}

func TestLooksOffScript(t *testing.T) {
	assert.True(t, LooksOffScript("what happens to my data?"))
	assert.True(t, LooksOffScript("I was talking to my neighbour about investments last weekend actually"))
	assert.False(t, LooksOffScript("growth"))
	assert.False(t, LooksOffScript("7"))
}

func TestParseHorizonYears(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10 years", 10},
		{"about 5", 5},
		{"until retirement", 0},
		{"-3 years", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseHorizonYears(tt.in), "input %q", tt.in)
	}
}

func TestParseRiskTolerance(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"6", 6},
		{"I'd say a 3", 3},
		{"9", 0},
		{"very low", 1},
		{"low", 2},
		{"medium", 4},
		{"moderate", 4},
		{"high", 6},
		{"very high", 7},
		{"whatever", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRiskTolerance(tt.in), "input %q", tt.in)
	}
}

func TestParseCapacityForLoss(t *testing.T) {
	assert.Equal(t, "low", ParseCapacityForLoss("quite low I think"))
	assert.Equal(t, "medium", ParseCapacityForLoss("Medium"))
	assert.Equal(t, "high", ParseCapacityForLoss("high"))
	// Digits never classify capacity for loss.
	assert.Equal(t, "", ParseCapacityForLoss("3"))
	assert.Equal(t, "", ParseCapacityForLoss("low, maybe a 2"))
	assert.Equal(t, "", ParseCapacityForLoss("dunno"))
}

func TestMatchChoice(t *testing.T) {
	choices := catalog.ClientTypes
	assert.Equal(t, "individual", MatchChoice("Individual", choices))
	assert.Equal(t, "joint", MatchChoice("a joint account please", choices))
	assert.Equal(t, "", MatchChoice("individually minded", choices))
	assert.Equal(t, "", MatchChoice("", choices))
}

func TestFindPathway(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tell me about focus", catalog.PathwayFocus},
		{"the improvers one", catalog.PathwayImprovers},
		{"mixed goals sounds right", catalog.PathwayMixedGoals},
		{"mixed", catalog.PathwayMixedGoals},
		{"impact", catalog.PathwayImpact},
		{"growth", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FindPathway(tt.in), "input %q", tt.in)
	}
}

func TestFindPathwaysMultiple(t *testing.T) {
	got := FindPathways("focus and impact please")
	assert.ElementsMatch(t, []string{catalog.PathwayFocus, catalog.PathwayImpact}, got)
}

func TestParseExclusions(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		got := ParseExclusions("none")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("no exclusions phrase", func(t *testing.T) {
		got := ParseExclusions("no exclusions for me")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("sector list", func(t *testing.T) {
		got := ParseExclusions("tobacco, gambling")
		require.Len(t, got, 2)
		assert.Equal(t, "tobacco", got[0].Sector)
		assert.Nil(t, got[0].ThresholdPct)
	})

	t.Run("threshold", func(t *testing.T) {
		got := ParseExclusions("fossil fuels above 5%")
		require.Len(t, got, 1)
		assert.Equal(t, "fossil fuels", got[0].Sector)
		require.NotNil(t, got[0].ThresholdPct)
		assert.InDelta(t, 5.0, *got[0].ThresholdPct, 0.001)
	})

	t.Run("negative word inside a list does not clear it", func(t *testing.T) {
		got := ParseExclusions("tobacco and weapons")
		assert.Len(t, got, 2)
	})
}

func TestParseAllocations(t *testing.T) {
	got := ParseAllocations("Focus 50%, Impact 30% and Improvers 20%")
	require.Len(t, got, 3)
	assert.Equal(t, Allocation{Name: catalog.PathwayFocus, Pct: 50}, got[0])
	assert.Equal(t, Allocation{Name: catalog.PathwayImpact, Pct: 30}, got[1])
	assert.Equal(t, Allocation{Name: catalog.PathwayImprovers, Pct: 20}, got[2])

	assert.Empty(t, ParseAllocations("just the focus one"))
	assert.Empty(t, ParseAllocations("50% in something"))
}
