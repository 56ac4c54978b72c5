package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/registry"
)

var testNow = time.Date(2025, time.August, 29, 15, 30, 0, 0, time.UTC)

func newTestResolver() *Resolver {
	return NewResolver(registry.Default(), func() time.Time { return testNow })
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveExactPeriodPhrases(t *testing.T) {
	r := newTestResolver()
	require.Equal(t, day(2025, time.August, 22), r.Resolve("هفتگی"))
	require.Equal(t, day(2025, time.July, 29), r.Resolve("یکماهه"))
	require.Equal(t, day(2025, time.July, 29), r.Resolve("ماهانه"))
	require.Equal(t, day(2024, time.August, 29), r.Resolve("یکساله"))
}

func TestResolveRelativePattern(t *testing.T) {
	r := newTestResolver()
	tests := []struct {
		text string
		want time.Time
	}{
		{"3 روز پیش", day(2025, time.August, 26)},
		{"۳ روز پیش", day(2025, time.August, 26)},
		{"سه روز پیش", day(2025, time.August, 26)},
		{"2 هفته گذشته", day(2025, time.August, 15)},
		{"1 ماه اخیر", day(2025, time.July, 29)},
		{"10 سال پیش", day(2015, time.August, 29)},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, r.Resolve(tt.text), "resolve %q", tt.text)
	}
}

func TestResolvePersianDigitsEqualASCII(t *testing.T) {
	r := newTestResolver()
	require.Equal(t, r.Resolve("3 روز پیش"), r.Resolve("۳ روز پیش"))
}

func TestResolveFixedKeywords(t *testing.T) {
	r := newTestResolver()
	require.Equal(t, day(2025, time.August, 29), r.Resolve("قیمت دلار امروز چنده"))
	require.Equal(t, day(2025, time.August, 28), r.Resolve("قیمت دلار دیروز"))
	require.Equal(t, day(2025, time.August, 22), r.Resolve("هفته گذشته"))
	// Fixed-keyword month/year use flat day counts.
	require.Equal(t, day(2025, time.July, 30), r.Resolve("ماه گذشته"))
	require.Equal(t, day(2024, time.August, 29), r.Resolve("سال پیش"))
}

func TestResolveDefaultsToToday(t *testing.T) {
	r := newTestResolver()
	require.Equal(t, day(2025, time.August, 29), r.Resolve(""))
	require.Equal(t, day(2025, time.August, 29), r.Resolve("قیمت طلا چنده"))
}
