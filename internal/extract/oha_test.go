package extract

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ohaFixture = `Summary:
  Success rate:	100.00%
  Total:	10.0000 secs
  Slowest:	0.3000 secs
  Fastest:	0.1000 secs
  Average:	0.2000 secs
  Requests/sec:	2.0000

  Total data:	10.00 MiB
  Size/request:	512.00 KiB

Response time histogram:
  100.0 [5] |■■■■■
  200.0 [10] |■■■■■■■■■■
  300.0 [5] |■■■■■

Response time distribution:
  25% in 0.1500 secs
  50% in 0.2000 secs
  75% in 0.2500 secs
  90% in 0.2800 secs
  99% in 0.2900 secs
`

func TestOha(t *testing.T) {
	log, _ := test.NewNullLogger()

	rec, err := Oha(log, ohaFixture)
	require.NoError(t, err)

	want := Record{
		{Name: "Slowest", Value: 300, Unit: "ms"},
		{Name: "99th", Value: 290, Unit: "ms"},
		{Name: "90th", Value: 280, Unit: "ms"},
		{Name: "75th", Value: 250, Unit: "ms"},
		{Name: "50th", Value: 200, Unit: "ms"},
		{Name: "25th", Value: 150, Unit: "ms"},
		{Name: "Fastest", Value: 100, Unit: "ms"},
		{Name: "Requests/sec", Value: 2, Unit: "req/s"},
		{Name: "Total data", Value: 10485760, Unit: "B"},
		{Name: "Total requests", Value: 20, Unit: "#"},
	}
	assert.Equal(t, want, rec)
}

func TestOha_HistogramMedianWalk(t *testing.T) {
	// Counts 5/10/5: total 20, half 10, so the cumulative count first
	// reaches 10 in the second bucket.
	hist := ohaHistogramRe.FindAllStringSubmatch(ohaFixture, -1)
	require.Len(t, hist, 3)

	assert.Equal(t, 200.0, histogramMedian(hist, 20))
}

func TestOha_HistogramDisagreementLogged(t *testing.T) {
	log, hook := test.NewNullLogger()

	// The fixture's histogram median bucket (200.0, raw seconds) never
	// equals the reported 50th (0.2 secs), so the discrepancy warning
	// must fire.
	_, err := Oha(log, ohaFixture)
	require.NoError(t, err)

	var warned bool

	for _, e := range hook.AllEntries() {
		if e.Message == "oha histogram median disagrees with reported 50th percentile" {
			warned = true
		}
	}

	assert.True(t, warned)
}

func TestOha_MissingHistogram(t *testing.T) {
	log, _ := test.NewNullLogger()

	_, err := Oha(log, "no histogram here")
	require.Error(t, err)

	var perr *PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "oha", perr.Tool)
	assert.Equal(t, "response time histogram", perr.Field)
}

func TestOha_MissingPercentile(t *testing.T) {
	log, _ := test.NewNullLogger()

	fixture := `Slowest:	0.3000 secs
Fastest:	0.1000 secs
Requests/sec:	2.0000
Total data:	10.00 MiB
100.0 [5] |■
`

	_, err := Oha(log, fixture)
	require.Error(t, err)

	var perr *PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "25% response time", perr.Field)
}

func TestOha_NeverReturnsPartialRecord(t *testing.T) {
	log, _ := test.NewNullLogger()

	rec, err := Oha(log, "100.0 [5] |")
	require.Error(t, err)
	assert.Nil(t, rec)
}
