package brew

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBrewTime renders seconds as m:ss.
func FormatBrewTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ParseBrewTime parses "m:ss" or a plain number of minutes into seconds.
// A missing seconds part counts as zero.
func ParseBrewTime(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty brew time")
	}

	minPart, secPart, hasSec := strings.Cut(s, ":")
	minutes, err := strconv.Atoi(minPart)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes %q", minPart)
	}
	seconds := 0
	if hasSec && secPart != "" {
		seconds, err = strconv.Atoi(secPart)
		if err != nil {
			return 0, fmt.Errorf("invalid seconds %q", secPart)
		}
	}
	return minutes*60 + seconds, nil
}

// SplitBrewTime splits seconds into whole minutes and remaining seconds.
func SplitBrewTime(total int) (minutes, seconds int) {
	return total / 60, total % 60
}

// Ratio returns the water-to-coffee ratio, or 0 when coffeeWeight is 0.
func Ratio(coffeeWeight, waterWeight float64) float64 {
	if coffeeWeight == 0 {
		return 0
	}
	return waterWeight / coffeeWeight
}

// FormatRatio renders a ratio as "1:16.0", or "" when it is unknown.
func FormatRatio(coffeeWeight, waterWeight *float64) string {
	if coffeeWeight == nil || waterWeight == nil {
		return ""
	}
	r := Ratio(*coffeeWeight, *waterWeight)
	if r == 0 {
		return ""
	}
	return fmt.Sprintf("1:%.1f", r)
}
