package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/benchreport/internal/extract"
	"github.com/ethpandaops/benchreport/internal/logfile"
)

// calcGroup labels the derived cross-tool metric group.
const calcGroup = "calc"

// Table is the full result of aggregating one directory of benchmark
// logs. It is built once per invocation and not mutated afterwards.
type Table struct {
	// Labels are the size-label columns, ascending by test size.
	Labels []string

	// Groups are the row groups in emission order: warp, iftop-warp,
	// oha, iftop-oha, then calc.
	Groups []Group
}

// Group holds one tool's records keyed by size label.
type Group struct {
	Tool    string
	Records map[string]extract.Record
}

// MissingCompanionError reports a size label for which a cross-tool
// derivation has no matching record.
type MissingCompanionError struct {
	Tool string
	Size string
}

func (e *MissingCompanionError) Error() string {
	return fmt.Sprintf("no %s record for size %s", e.Tool, e.Size)
}

// Aggregator builds a Table from a directory of benchmark logs.
type Aggregator struct {
	log logrus.FieldLogger
}

// NewAggregator creates a new Aggregator.
func NewAggregator(log logrus.FieldLogger) *Aggregator {
	return &Aggregator{
		log: log.WithField("component", "aggregator"),
	}
}

// Aggregate parses every recognized benchmark log under dir, in
// ascending size order, and returns the result table including the
// derived calc group. Files whose names match no supported tool are
// skipped; any extraction or derivation failure aborts the whole run.
func (a *Aggregator) Aggregate(dir string) (*Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	sortFiles(names)

	byTool := make(map[logfile.Kind]map[string]extract.Record)
	labels := make([]string, 0, len(names))
	seen := make(map[string]bool)

	for _, name := range names {
		path := filepath.Join(dir, name)

		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !fi.Mode().IsRegular() {
			continue
		}

		info := logfile.Classify(name)
		if info.Kind == logfile.KindUnknown {
			continue
		}

		rec, err := a.extractFile(path, info.Kind)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", name, err)
		}

		if byTool[info.Kind] == nil {
			byTool[info.Kind] = make(map[string]extract.Record)
		}

		byTool[info.Kind][info.SizeLabel] = rec

		if !seen[info.SizeLabel] {
			seen[info.SizeLabel] = true

			labels = append(labels, info.SizeLabel)
		}
	}

	calc, err := deriveCalc(byTool, labels)
	if err != nil {
		return nil, err
	}

	table := &Table{Labels: labels}

	for _, kind := range []logfile.Kind{
		logfile.KindWarp,
		logfile.KindIftopWarp,
		logfile.KindOha,
		logfile.KindIftopOha,
	} {
		if recs, ok := byTool[kind]; ok {
			table.Groups = append(table.Groups, Group{
				Tool:    kind.String(),
				Records: recs,
			})
		}
	}

	if len(calc) > 0 {
		table.Groups = append(table.Groups, Group{
			Tool:    calcGroup,
			Records: calc,
		})
	}

	return table, nil
}

// sortFiles orders file names ascending by encoded test size, then by
// tool rank, so diagnostics and report columns run from the smallest
// test size to the largest with a stable tool order per size.
func sortFiles(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		a, b := logfile.Classify(names[i]), logfile.Classify(names[j])

		if a.SizeBytes != b.SizeBytes {
			return a.SizeBytes < b.SizeBytes
		}

		return a.Kind < b.Kind
	})
}

// extractFile reads one log and dispatches to the extractor for its
// tool. The file is fully read and closed before returning.
func (a *Aggregator) extractFile(path string, kind logfile.Kind) (extract.Record, error) {
	r, err := logfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	log := a.log.WithField("file", filepath.Base(path))
	text := string(data)

	switch kind {
	case logfile.KindWarp:
		return extract.Warp(log, text)
	case logfile.KindOha:
		return extract.Oha(log, text)
	default:
		return extract.Iftop(log, text)
	}
}

// deriveCalc computes the average bytes shipped per request for the
// warp and oha run of every size, dividing the companion iftop run's
// cumulative total by the tool's own request count. Both records must
// exist for every size label: derived metrics with holes make the
// whole report untrustworthy, so any gap fails the run.
func deriveCalc(
	byTool map[logfile.Kind]map[string]extract.Record,
	labels []string,
) (map[string]extract.Record, error) {
	if len(labels) == 0 {
		return nil, nil
	}

	pairs := []struct {
		tool      logfile.Kind
		companion logfile.Kind
	}{
		{logfile.KindWarp, logfile.KindIftopWarp},
		{logfile.KindOha, logfile.KindIftopOha},
	}

	calc := make(map[string]extract.Record, len(labels))

	for _, label := range labels {
		rec := make(extract.Record, 0, len(pairs))

		for _, p := range pairs {
			requests, err := lookup(byTool, p.tool, label, "Total requests")
			if err != nil {
				return nil, err
			}

			total, err := lookup(byTool, p.companion, label, "Cumulative Total")
			if err != nil {
				return nil, err
			}

			if int64(requests) == 0 {
				return nil, fmt.Errorf(
					"%s: zero request count for size %s", p.tool, label,
				)
			}

			rec = append(rec, extract.Metric{
				Name:  p.tool.String() + " Avg B/Req",
				Value: float64(int64(total) / int64(requests)),
				Unit:  "B",
			})
		}

		calc[label] = rec
	}

	return calc, nil
}

func lookup(
	byTool map[logfile.Kind]map[string]extract.Record,
	kind logfile.Kind,
	label, metric string,
) (float64, error) {
	rec, ok := byTool[kind][label]
	if !ok {
		return 0, &MissingCompanionError{Tool: kind.String(), Size: label}
	}

	v, ok := rec.Get(metric)
	if !ok {
		return 0, &MissingCompanionError{Tool: kind.String(), Size: label}
	}

	return v, nil
}
