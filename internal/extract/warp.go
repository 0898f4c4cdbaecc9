package extract

import (
	"regexp"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/benchreport/internal/units"
)

var (
	warpRequestsRe   = regexp.MustCompile(`Requests considered:\s+(\d+)`)
	warpTTFBLineRe   = regexp.MustCompile(`TTFB:.+`)
	warpMedianRe     = regexp.MustCompile(`Median: (\d+\.?\d*)\s*(s|ms)`)
	warpBestRe       = regexp.MustCompile(`Best: (\d+\.?\d*)\s*(s|ms)`)
	warpWorstRe      = regexp.MustCompile(`Worst: (\d+\.?\d*)\s*(s|ms)`)
	warp25thRe       = regexp.MustCompile(`25th: (\d+\.?\d*)\s*(s|ms)`)
	warp75thRe       = regexp.MustCompile(`75th: (\d+\.?\d*)\s*(s|ms)`)
	warp90thRe       = regexp.MustCompile(`90th: (\d+\.?\d*)\s*(s|ms)`)
	warp99thRe       = regexp.MustCompile(`99th: (\d+\.?\d*)\s*(s|ms)`)
	warpThroughputRe = regexp.MustCompile(`Average:\s+(\d+\.\d+)\sMiB/s,\s+(\d+\.\d+)\sobj/s`)
)

// warpTTFBFields are the labeled entries of one TTFB summary block.
var warpTTFBFields = []struct {
	name string
	re   *regexp.Regexp
}{
	{"TTFB Median", warpMedianRe},
	{"TTFB Best", warpBestRe},
	{"TTFB Worst", warpWorstRe},
	{"TTFB 25th", warp25thRe},
	{"TTFB 75th", warp75thRe},
	{"TTFB 90th", warp90thRe},
	{"TTFB 99th", warp99thRe},
}

// Warp extracts the request count, the first TTFB summary block and
// the average throughput from the output of a warp object-storage
// load run. Warp mixes seconds and milliseconds within one TTFB line;
// every value is normalized to milliseconds. Of the two reported
// throughput rates the object rate is the one recorded.
func Warp(log logrus.FieldLogger, text string) (Record, error) {
	requests, err := matchFloat(warpRequestsRe, text, "warp", "Requests considered")
	if err != nil {
		return nil, err
	}

	// Warp prints one TTFB block per operation; only the first is
	// summarized.
	ttfb := warpTTFBLineRe.FindString(text)
	if ttfb == "" {
		return nil, &PatternError{Tool: "warp", Field: "TTFB summary"}
	}

	vals := make([]float64, len(warpTTFBFields))

	for i, f := range warpTTFBFields {
		m := f.re.FindStringSubmatch(ttfb)
		if m == nil {
			return nil, &PatternError{Tool: "warp", Field: f.name}
		}

		vals[i] = units.Milliseconds(m[1], m[2])
	}

	median, best, worst := vals[0], vals[1], vals[2]
	p25, p75, p90, p99 := vals[3], vals[4], vals[5], vals[6]

	tp := warpThroughputRe.FindStringSubmatch(text)
	if tp == nil {
		return nil, &PatternError{Tool: "warp", Field: "average throughput"}
	}

	dataRate, err := strconv.ParseFloat(tp[1], 64)
	if err != nil {
		return nil, &PatternError{Tool: "warp", Field: "average throughput"}
	}

	objRate, err := strconv.ParseFloat(tp[2], 64)
	if err != nil {
		return nil, &PatternError{Tool: "warp", Field: "average throughput"}
	}

	log.WithFields(logrus.Fields{
		"requests_considered": int64(requests),
		"median_ms":           median,
		"best_ms":             best,
		"worst_ms":            worst,
		"p25_ms":              p25,
		"p75_ms":              p75,
		"throughput_mib_s":    dataRate,
		"throughput_obj_s":    objRate,
	}).Info("Extracted warp run")

	return Record{
		{Name: "Total requests", Value: requests, Unit: "#"},
		{Name: "Slowest", Value: worst, Unit: "ms"},
		{Name: "99th", Value: p99, Unit: "ms"},
		{Name: "90th", Value: p90, Unit: "ms"},
		{Name: "75th", Value: p75, Unit: "ms"},
		{Name: "Median", Value: median, Unit: "ms"},
		{Name: "25th", Value: p25, Unit: "ms"},
		{Name: "Fastest", Value: best, Unit: "ms"},
		{Name: "Throughput", Value: float64(int64(objRate)), Unit: "obj/s"},
	}, nil
}
