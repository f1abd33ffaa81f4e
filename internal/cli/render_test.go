package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/carpicker/internal/engine"
	"github.com/Veraticus/carpicker/internal/model"
	"github.com/Veraticus/carpicker/internal/testutil"
)

func runQuery(t *testing.T, q model.Query) *model.Result {
	t.Helper()
	result, err := engine.New().Run(testutil.ToyotaFixture(), q)
	require.NoError(t, err)
	return result
}

func TestRenderResult_Relevance(t *testing.T) {
	price := 19000.0
	result := runQuery(t, model.Query{Price: &price})

	var buf bytes.Buffer
	require.NoError(t, RenderResult(&buf, result))

	out := buf.String()
	assert.Contains(t, out, "Top 2 of 2 matching models")
	assert.Contains(t, out, "Corolla")
	assert.Contains(t, out, "Yaris")
	assert.Contains(t, out, "$18,000")
	assert.NotContains(t, out, "Best match")
}

func TestRenderResult_ExhaustivePrice(t *testing.T) {
	result := runQuery(t, model.Query{Mode: model.ModeExhaustivePrice})

	var buf bytes.Buffer
	require.NoError(t, RenderResult(&buf, result))

	out := buf.String()
	assert.Contains(t, out, "Best match")
	assert.Contains(t, out, "5 matching models, cheapest first")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Yaris")), bytes.Index(buf.Bytes(), []byte("Hilux")))
}

func TestRenderResult_Empty(t *testing.T) {
	year := 1999
	result := runQuery(t, model.Query{Year: &year})

	var buf bytes.Buffer
	require.NoError(t, RenderResult(&buf, result))
	assert.Contains(t, buf.String(), model.NoMatchesMessage)
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("Imported"), SuccessIcon)
	assert.Contains(t, FormatError("Failed"), ErrorIcon)
	assert.Contains(t, FormatTitle("Results"), "Results")
	assert.Contains(t, FormatPrompt("Year"), "→")
	assert.Contains(t, RenderCard("Title", "body"), "body")
}

func TestScoreStyle(t *testing.T) {
	tests := []struct {
		want  string
		score float64
	}{
		{score: 100, want: string(SuccessColor)},
		{score: 85, want: string(SuccessColor)},
		{score: 72.5, want: string(WarningColor)},
		{score: 12, want: string(ErrorColor)},
		{score: -40, want: string(ErrorColor)},
	}

	for _, tt := range tests {
		got := ScoreStyle(tt.score).GetForeground()
		assert.Equal(t, lipgloss.Color(tt.want), got, "score %.1f", tt.score)
	}
}
