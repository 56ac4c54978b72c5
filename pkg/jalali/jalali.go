// Package jalali converts between Gregorian and Jalali (Shamsi) calendar
// dates. Persisted series rows carry both representations and all
// user-facing messages print the Jalali one.
package jalali

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// FromGregorian formats a Gregorian time as a yyyy/mm/dd Jalali date string.
func FromGregorian(t time.Time) string {
	pt := ptime.New(t)
	return fmt.Sprintf("%04d/%02d/%02d", pt.Year(), int(pt.Month()), pt.Day())
}

// ToGregorian parses a yyyy/mm/dd Jalali date string into a Gregorian time
// (midnight UTC).
func ToGregorian(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("jalali: malformed date %q", s)
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return time.Time{}, fmt.Errorf("jalali: malformed date %q: %w", s, err)
		}
		nums[i] = n
	}
	pt := ptime.Date(nums[0], ptime.Month(nums[1]), nums[2], 0, 0, 0, 0, ptime.Iran())
	g := pt.Time()
	return time.Date(g.Year(), g.Month(), g.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Today returns today's Jalali date string.
func Today() string {
	return FromGregorian(time.Now())
}
