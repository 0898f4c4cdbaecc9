package extract

import (
	"regexp"
	"strconv"
)

// matchFloat returns the first capture group of re in text as a float,
// or a *PatternError naming the missing field.
func matchFloat(re *regexp.Regexp, text, tool, field string) (float64, error) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, &PatternError{Tool: tool, Field: field}
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &PatternError{Tool: tool, Field: field}
	}

	return v, nil
}
