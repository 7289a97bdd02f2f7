package risk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		score       int
		level       RiskLevel
		diabetic    bool
		probability float64
	}{
		{0, Low, false, 5},
		{4, Low, false, 5},
		{5, Low, false, 5},
		{29, Low, false, 29},
		{30, Moderate, false, 35},
		{49, Moderate, false, 44.5},
		{50, High, true, 65},
		{69, High, true, 74.5},
		{70, VeryHigh, true, 85},
		{84, VeryHigh, true, 99},
		{85, VeryHigh, true, 99},
		{123, VeryHigh, true, 99},
	}

	for _, tt := range tests {
		level, diabetic, probability := Classify(tt.score)
		assert.Equal(t, tt.level, level, "score %d", tt.score)
		assert.Equal(t, tt.diabetic, diabetic, "score %d", tt.score)
		assert.Equal(t, tt.probability, probability, "score %d", tt.score)
	}
}

func TestClassify_BandsAreOrdered(t *testing.T) {
	prev := Low
	for s := 0; s <= 150; s++ {
		level, _, _ := Classify(s)
		assert.GreaterOrEqual(t, level, prev, "score %d", s)
		prev = level
	}
}

func TestRiskLevel_Text(t *testing.T) {
	b, err := json.Marshal(struct {
		Level RiskLevel `json:"level"`
	}{VeryHigh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"Very High"}`, string(b))

	var l RiskLevel
	require.NoError(t, l.UnmarshalText([]byte("VeryHigh")))
	assert.Equal(t, VeryHigh, l)
	require.NoError(t, l.UnmarshalText([]byte("moderate")))
	assert.Equal(t, Moderate, l)
	assert.Error(t, l.UnmarshalText([]byte("extreme")))

	assert.Equal(t, "RiskLevel(9)", RiskLevel(9).String())
}

func TestFeedback(t *testing.T) {
	fragments := []string{"a"}

	assert.Equal(t, []string{"a", msgEncouragement}, Feedback(fragments, nil, Low, false))
	assert.Equal(t, []string{"a"}, Feedback(fragments, []string{"x"}, Low, false))
	assert.Equal(t, []string{"a", msgActions}, Feedback(fragments, []string{"x"}, Moderate, false))
	assert.Equal(t, []string{"a", msgConsult, msgActions}, Feedback(fragments, []string{"x"}, High, true))
	assert.Equal(t, []string{"a"}, fragments)
}
