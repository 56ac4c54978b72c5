package nlp

import (
	"regexp"
	"strings"
	"sync"
)

// RE2's \b only understands ASCII word characters, so Persian keywords need
// an explicit boundary class: a match must not be adjacent to a letter,
// digit, or underscore.
const boundary = `[^\p{L}\p{N}_]`

var (
	patternMu    sync.RWMutex
	patternCache = map[string]*regexp.Regexp{}
)

func wholeWordPattern(word string) *regexp.Regexp {
	patternMu.RLock()
	re, ok := patternCache[word]
	patternMu.RUnlock()
	if ok {
		return re
	}
	re = regexp.MustCompile(`(?:^|` + boundary + `)` + regexp.QuoteMeta(word) + `(?:` + boundary + `|$)`)
	patternMu.Lock()
	patternCache[word] = re
	patternMu.Unlock()
	return re
}

// containsWholeWord reports whether word occurs in text as a whole word.
func containsWholeWord(text, word string) bool {
	if word == "" || !strings.Contains(text, word) {
		return false
	}
	return wholeWordPattern(word).MatchString(text)
}

// replaceWholeWord substitutes every whole-word occurrence of word in text.
func replaceWholeWord(text, word, replacement string) string {
	if !strings.Contains(text, word) {
		return text
	}
	re := wholeWordPattern(word)
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return strings.Replace(m, word, replacement, 1)
	})
}

var persianDigits = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
)

// normalizeDigits converts Persian digits to their ASCII equivalents.
func normalizeDigits(text string) string {
	return persianDigits.Replace(text)
}
