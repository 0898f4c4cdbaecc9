package extract

import (
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/benchreport/internal/units"
)

var iftopCumulativeRe = regexp.MustCompile(
	`Cumulative \(sent/received/total\):\s*([\d.]+[KMG]?B)\s+([\d.]+[KMG]?B)\s+([\d.]+[KMG]?B)`,
)

// Iftop extracts the final cumulative byte counters from the output
// of an iftop bandwidth monitoring run. Iftop reprints the cumulative
// line on every refresh; only the last occurrence is the run's total,
// so later matches supersede earlier ones.
func Iftop(log logrus.FieldLogger, text string) (Record, error) {
	matches := iftopCumulativeRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, &PatternError{Tool: "iftop", Field: "cumulative counters"}
	}

	last := matches[len(matches)-1]
	sent, received, total := last[1], last[2], last[3]

	log.WithFields(logrus.Fields{
		"cumulative_sent":     sent,
		"cumulative_received": received,
		"cumulative_total":    total,
	}).Info("Extracted iftop run")

	return Record{
		{Name: "Cumulative Sent", Value: float64(units.DecimalSizeBytes(sent)), Unit: "B"},
		{Name: "Cumulative Received", Value: float64(units.DecimalSizeBytes(received)), Unit: "B"},
		{Name: "Cumulative Total", Value: float64(units.DecimalSizeBytes(total)), Unit: "B"},
	}, nil
}
