package chart

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
)

func rows(start time.Time, closes ...float64) []fetch.Row {
	out := make([]fetch.Row, len(closes))
	for i, c := range closes {
		out[i] = fetch.Row{GregorianDate: start.AddDate(0, 0, i), JalaliDate: "1404/06/07", Close: c}
	}
	return out
}

func TestBuildWindowsSeries(t *testing.T) {
	start := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	series := rows(start, 10, 20, 30, 40, 50)

	p, err := Build("دلار", "تومان", series, start.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, p.Points, 3)
	assert.Equal(t, 30.0, p.Points[0].Close)
	assert.Contains(t, p.Title, "دلار")
}

func TestBuildEmptyWindow(t *testing.T) {
	start := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	_, err := Build("دلار", "تومان", rows(start, 10, 20), start.AddDate(0, 0, 10))
	assert.Error(t, err)
}

func TestTextRenderer(t *testing.T) {
	start := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	p, err := Build("طلا", "تومان", rows(start, 1000, 1500, 2000), start)
	require.NoError(t, err)

	out, err := TextRenderer{}.Render(p)
	require.NoError(t, err)
	assert.Contains(t, out, "نمودار قیمت طلا")
	assert.Contains(t, out, "2,000")
	// lowest and highest glyphs both present
	assert.Contains(t, out, "▁")
	assert.Contains(t, out, "█")
}

func TestTextRendererFlatSeries(t *testing.T) {
	start := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	p, err := Build("یورو", "تومان", rows(start, 100, 100), start)
	require.NoError(t, err)

	out, err := TextRenderer{}.Render(p)
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, "█"))
}
