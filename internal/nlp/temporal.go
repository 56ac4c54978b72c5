package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/internal/registry"
)

// relativePattern matches "<N> <unit> [ی] {گذشته|پیش|اخیر}".
var relativePattern = regexp.MustCompile(`(\d+)\s+(روز|هفته|ماه|سال)\s*(?:ی)?\s*(?:گذشته|پیش|اخیر)`)

// Resolver converts a natural-language time expression to a calendar date.
// It never fails: anything it cannot interpret resolves to today.
type Resolver struct {
	reg *registry.Registry
	now func() time.Time

	fixedLongest []string
}

// NewResolver builds a resolver over the given keyword registry. A nil nowFn
// defaults to time.Now; tests inject a fixed clock.
func NewResolver(reg *registry.Registry, nowFn func() time.Time) *Resolver {
	if nowFn == nil {
		nowFn = time.Now
	}
	fixed := make([]string, 0, len(reg.FixedDates))
	for keyword := range reg.FixedDates {
		fixed = append(fixed, keyword)
	}
	return &Resolver{
		reg:          reg,
		now:          nowFn,
		fixedLongest: registry.LongestFirst(fixed),
	}
}

// Today returns the resolver's notion of today, truncated to a date.
func (r *Resolver) Today() time.Time {
	return dateOnly(r.now())
}

// Resolve maps text to a concrete date. Precedence: exact period phrases,
// then "<N> <unit> ago" patterns, then fixed keywords longest-first, then
// today.
func (r *Resolver) Resolve(text string) time.Time {
	today := r.Today()

	switch text {
	case "هفتگی":
		return today.AddDate(0, 0, -7)
	case "یکماهه", "ماهانه":
		return today.AddDate(0, -1, 0)
	case "یکساله", "سالانه":
		return today.AddDate(-1, 0, 0)
	}

	processed := normalizeDigits(text)
	for _, word := range registry.LongestFirst(numberWordKeys(r.reg.NumberWords)) {
		processed = replaceWholeWord(processed, word, strconv.Itoa(r.reg.NumberWords[word]))
	}

	if m := relativePattern.FindStringSubmatch(processed); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			switch m[2] {
			case "روز":
				return today.AddDate(0, 0, -n)
			case "هفته":
				return today.AddDate(0, 0, -7*n)
			case "ماه":
				return today.AddDate(0, -n, 0)
			case "سال":
				return today.AddDate(-n, 0, 0)
			}
		}
	}

	for _, keyword := range r.fixedLongest {
		if keyword == "" || !strings.Contains(text, keyword) {
			continue
		}
		switch r.reg.FixedDates[keyword] {
		case registry.TagToday:
			return today
		case registry.TagYesterday:
			return today.AddDate(0, 0, -1)
		case registry.TagLastWeek:
			return today.AddDate(0, 0, -7)
		case registry.TagLastMonth:
			return today.AddDate(0, 0, -30)
		case registry.TagLastYear:
			return today.AddDate(0, 0, -365)
		}
		break
	}

	return today
}

func numberWordKeys(words map[string]int) []string {
	keys := make([]string, 0, len(words))
	for w := range words {
		keys = append(keys, w)
	}
	return keys
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
