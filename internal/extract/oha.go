package extract

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/benchreport/internal/units"
)

var (
	ohaHistogramRe = regexp.MustCompile(`(\d+\.\d+)\s\[(\d+)\]\s*\|`)
	ohaSlowestRe   = regexp.MustCompile(`Slowest:\s+(\d+\.\d+)\ssecs`)
	ohaFastestRe   = regexp.MustCompile(`Fastest:\s+(\d+\.\d+)\ssecs`)
	ohaReqPerSecRe = regexp.MustCompile(`Requests/sec:\s+(\d+\.\d+)`)
	ohaTotalDataRe = regexp.MustCompile(`Total data:\s+(\d+\.\d+)\s([KMGTP]?i?B)`)

	ohaPercentileRes = map[int]*regexp.Regexp{
		25: ohaPercentilePattern(25),
		50: ohaPercentilePattern(50),
		75: ohaPercentilePattern(75),
		90: ohaPercentilePattern(90),
		99: ohaPercentilePattern(99),
	}
)

func ohaPercentilePattern(p int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`%d%%\sin\s(\d+\.\d+)\ssecs`, p))
}

// Oha extracts latency percentiles, throughput and totals from the
// output of an oha HTTP load run. Latencies are reported by oha in
// seconds and normalized here to truncated integer milliseconds.
func Oha(log logrus.FieldLogger, text string) (Record, error) {
	hist := ohaHistogramRe.FindAllStringSubmatch(text, -1)
	if len(hist) == 0 {
		return nil, &PatternError{Tool: "oha", Field: "response time histogram"}
	}

	var total int64
	for _, m := range hist {
		n, _ := strconv.ParseInt(m[2], 10, 64)
		total += n
	}

	histMedian := histogramMedian(hist, total)

	slowest, err := matchFloat(ohaSlowestRe, text, "oha", "Slowest")
	if err != nil {
		return nil, err
	}

	fastest, err := matchFloat(ohaFastestRe, text, "oha", "Fastest")
	if err != nil {
		return nil, err
	}

	reqPerSec, err := matchFloat(ohaReqPerSecRe, text, "oha", "Requests/sec")
	if err != nil {
		return nil, err
	}

	pct := make(map[int]float64, len(ohaPercentileRes))
	for _, p := range []int{25, 50, 75, 90, 99} {
		v, err := matchFloat(
			ohaPercentileRes[p], text,
			"oha", fmt.Sprintf("%d%% response time", p),
		)
		if err != nil {
			return nil, err
		}

		pct[p] = v
	}

	td := ohaTotalDataRe.FindStringSubmatch(text)
	if td == nil {
		return nil, &PatternError{Tool: "oha", Field: "Total data"}
	}

	totalData := units.BinaryBytes(td[1], td[2])

	// The histogram walk approximates the median from bucket
	// boundaries; the record reports the percentile-line 50th. Both
	// are kept so a disagreement surfaces in the diagnostics instead
	// of vanishing.
	if int64(histMedian*1000) != int64(pct[50]*1000) {
		log.WithFields(logrus.Fields{
			"histogram_median_ms": int64(histMedian * 1000),
			"reported_50th_ms":    int64(pct[50] * 1000),
		}).Warn("oha histogram median disagrees with reported 50th percentile")
	}

	log.WithFields(logrus.Fields{
		"median_ms":           int64(pct[50] * 1000),
		"histogram_median_ms": int64(histMedian * 1000),
		"fastest_ms":          int64(fastest * 1000),
		"slowest_ms":          int64(slowest * 1000),
		"p25_ms":              int64(pct[25] * 1000),
		"p75_ms":              int64(pct[75] * 1000),
		"requests_per_sec":    reqPerSec,
		"total_data_bytes":    totalData,
		"total_requests":      total,
	}).Info("Extracted oha run")

	return Record{
		{Name: "Slowest", Value: float64(int64(slowest * 1000)), Unit: "ms"},
		{Name: "99th", Value: float64(int64(pct[99] * 1000)), Unit: "ms"},
		{Name: "90th", Value: float64(int64(pct[90] * 1000)), Unit: "ms"},
		{Name: "75th", Value: float64(int64(pct[75] * 1000)), Unit: "ms"},
		{Name: "50th", Value: float64(int64(pct[50] * 1000)), Unit: "ms"},
		{Name: "25th", Value: float64(int64(pct[25] * 1000)), Unit: "ms"},
		{Name: "Fastest", Value: float64(int64(fastest * 1000)), Unit: "ms"},
		{Name: "Requests/sec", Value: float64(int64(reqPerSec)), Unit: "req/s"},
		{Name: "Total data", Value: float64(totalData), Unit: "B"},
		{Name: "Total requests", Value: float64(total), Unit: "#"},
	}, nil
}

// histogramMedian walks histogram buckets in textual order and returns
// the time value of the first bucket whose cumulative count reaches
// half the total.
func histogramMedian(hist [][]string, total int64) float64 {
	var cumulative int64

	for _, m := range hist {
		n, _ := strconv.ParseInt(m[2], 10, 64)

		cumulative += n
		if cumulative >= total/2 {
			v, _ := strconv.ParseFloat(m[1], 64)
			return v
		}
	}

	return 0
}
