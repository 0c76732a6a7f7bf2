package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// magnitudeRe matches a numeric token with an optional magnitude suffix:
// "150", "1.5m", "100k", "20 million", "$4.2MM", "1,200".
var magnitudeRe = regexp.MustCompile(`(?i)^\$?\s*(\d+(?:\.\d+)?)\s*(k|mm|m|million|b|bn|billion)?$`)

// ParseMagnitude converts a free-form numeric token into a base-unit number.
// A bare "k" multiplies by 1,000; "m"/"mm"/"million" by 1,000,000;
// "b"/"bn"/"billion" by 1,000,000,000. Currency symbols, commas and
// whitespace are ignored. Malformed tokens return nil, never zero.
func ParseMagnitude(token string) *float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(token), ",", "")
	m := magnitudeRe.FindStringSubmatch(cleaned)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	switch strings.ToLower(m[2]) {
	case "k":
		v *= 1_000
	case "m", "mm", "million":
		v *= 1_000_000
	case "b", "bn", "billion":
		v *= 1_000_000_000
	}
	return &v
}

// ParseMagnitudeInt is ParseMagnitude rounded to an integer.
func ParseMagnitudeInt(token string) *int {
	f := ParseMagnitude(token)
	if f == nil {
		return nil
	}
	n := int(*f + 0.5)
	return &n
}

// rangeSeparatorRe splits "100k-200k", "100k–200k" and "100k to 200k".
var rangeSeparatorRe = regexp.MustCompile(`(?i)\s*(?:–|—|-|to)\s*`)

// ParseMagnitudeRange parses "X", "X-Y", "X–Y" or "X to Y" into a
// (min, max) pair in base units. A single value fills both bounds.
// The second value inherits the first's suffix style only through
// its own token; "100-200k" therefore reads as 100 to 200,000.
func ParseMagnitudeRange(token string) (*float64, *float64) {
	parts := rangeSeparatorRe.Split(strings.TrimSpace(token), 2)
	if len(parts) == 1 {
		v := ParseMagnitude(parts[0])
		return v, v
	}
	lo := ParseMagnitude(parts[0])
	hi := ParseMagnitude(parts[1])
	if lo == nil {
		return hi, hi
	}
	if hi == nil {
		return lo, lo
	}
	if *lo > *hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// ParsePercent extracts a percentage value from tokens like "6%",
// "6.5 %" or "6.5". Malformed tokens return nil.
func ParsePercent(token string) *float64 {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(token), "%"))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

// orderInt returns the pair ordered min <= max, tolerating nil bounds.
func orderInt(lo, hi *int) (*int, *int) {
	if lo != nil && hi != nil && *lo > *hi {
		return hi, lo
	}
	return lo, hi
}

func orderFloat(lo, hi *float64) (*float64, *float64) {
	if lo != nil && hi != nil && *lo > *hi {
		return hi, lo
	}
	return lo, hi
}
