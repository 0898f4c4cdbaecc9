package extract

import "fmt"

// PatternError reports a required field whose text pattern had no
// match in the source log.
type PatternError struct {
	Tool  string
	Field string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s output: no match for %s", e.Tool, e.Field)
}
