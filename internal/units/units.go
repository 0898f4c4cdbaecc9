// Package units normalizes the human-readable size and duration
// strings found in benchmark tool output to canonical integer values.
//
// Every byte conversion is base 1024, including the decimal-labeled
// family (KB, MB, ...): the tools that emit those suffixes report
// binary quantities under decimal names, so converting them as
// base 1000 would skew every derived metric.
package units

import (
	"regexp"
	"strconv"
	"strings"
)

// binaryPow maps a lowercased binary suffix to its power of 1024.
var binaryPow = map[string]int{
	"b":   0,
	"kib": 1,
	"mib": 2,
	"gib": 3,
	"tib": 4,
	"pib": 5,
}

// decimalPow maps a lowercased decimal-labeled suffix to its power of
// 1024. A bare "b" is deliberately absent: the bandwidth monitor only
// prefixes sizes it has scaled, so an unprefixed token carries no
// trustworthy unit.
var decimalPow = map[string]int{
	"kb": 1,
	"mb": 2,
	"gb": 3,
	"tb": 4,
	"pb": 5,
}

var decimalSizeRe = regexp.MustCompile(`([\d.]+)([KMGTP]B)`)

// BinaryBytes converts a numeric string with a binary size suffix
// (B, KiB ... PiB, case-insensitive) to bytes. An unknown or absent
// suffix yields 0 rather than an error: a name without a size token
// means no test size was encoded, which is a valid state.
func BinaryBytes(value, unit string) int64 {
	return bytesIn(value, unit, binaryPow)
}

// DecimalSizeBytes extracts the first decimal-labeled size token
// (e.g. "3.54MB") from s and converts it to bytes, base 1024.
// No token yields 0.
func DecimalSizeBytes(s string) int64 {
	m := decimalSizeRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	return bytesIn(m[1], m[2], decimalPow)
}

// Milliseconds converts a numeric string with a time suffix to
// milliseconds. "s" and "secs" multiply by 1000, "ms" passes through,
// anything else yields 0.
func Milliseconds(value, unit string) float64 {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}

	switch strings.ToLower(unit) {
	case "s", "secs":
		return v * 1000
	case "ms":
		return v
	}

	return 0
}

func bytesIn(value, unit string, pow map[string]int) int64 {
	p, ok := pow[strings.ToLower(unit)]
	if !ok {
		return 0
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}

	return int64(v * float64(int64(1)<<(10*p)))
}
