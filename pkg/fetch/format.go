package fetch

import (
	"fmt"
	"strings"
)

// FormatNumber renders v with thousand separators and the given number of
// decimal places.
func FormatNumber(v float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, v)
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	out := b.String() + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatPrice renders a price in its display unit: dollar amounts keep two
// decimals, toman and index values are whole numbers.
func FormatPrice(v float64, unit string) string {
	if unit == "دلار" {
		return FormatNumber(v, 2) + " " + unit
	}
	return FormatNumber(v, 0) + " " + unit
}
