package jalali

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromGregorian(t *testing.T) {
	// Nowruz 1403 fell on 2024-03-20.
	g := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "1403/01/01", FromGregorian(g))
}

func TestToGregorian(t *testing.T) {
	g, err := ToGregorian("1403/01/01")
	require.NoError(t, err)
	require.Equal(t, 2024, g.Year())
	require.Equal(t, time.March, g.Month())
	require.Equal(t, 20, g.Day())
}

func TestRoundTrip(t *testing.T) {
	g := time.Date(2025, time.August, 29, 0, 0, 0, 0, time.UTC)
	back, err := ToGregorian(FromGregorian(g))
	require.NoError(t, err)
	require.Equal(t, g, back)
}

func TestToGregorianMalformed(t *testing.T) {
	for _, input := range []string{"", "1403", "1403/01", "x/y/z"} {
		_, err := ToGregorian(input)
		require.Error(t, err, "input %q should not parse", input)
	}
}
