package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Writer serializes a Table to a spreadsheet-style report file.
type Writer struct {
	log logrus.FieldLogger
	cfg *Config
}

// NewWriter creates a new Writer.
func NewWriter(log logrus.FieldLogger, cfg *Config) *Writer {
	return &Writer{
		log: log.WithField("component", "writer"),
		cfg: cfg,
	}
}

// Write flattens the table and writes <baseName>-output.<format> into
// the configured output directory, returning the written path.
func (w *Writer) Write(table *Table, baseName string) (string, error) {
	rows := flatten(table)

	name := fmt.Sprintf("%s-output.%s", baseName, w.cfg.Format)
	path := filepath.Join(w.cfg.OutputDir, name)

	var err error

	switch w.cfg.Format {
	case FormatCSV:
		err = writeCSV(path, rows)
	case FormatXLSX:
		err = writeXLSX(path, rows)
	default:
		err = fmt.Errorf("unsupported format %q", w.cfg.Format)
	}

	if err != nil {
		return "", err
	}

	w.log.WithFields(logrus.Fields{
		"path": path,
		"rows": len(rows),
	}).Info("Report written")

	return path, nil
}

// flatten turns the nested table into rows "<tool> <metric>" over the
// size-label columns, followed by one blank separator column and a
// Units column. Units come from each metric's own annotation, so row
// order can never desynchronize the legend.
func flatten(t *Table) [][]string {
	header := make([]string, 0, len(t.Labels)+3)
	header = append(header, "")
	header = append(header, t.Labels...)
	header = append(header, "", "Units")

	rows := [][]string{header}

	for _, g := range t.Groups {
		// All records of one tool share metric order by construction;
		// the first present record supplies it.
		var order []string

		var units map[string]string

		for _, label := range t.Labels {
			rec, ok := g.Records[label]
			if !ok {
				continue
			}

			units = make(map[string]string, len(rec))
			for _, m := range rec {
				order = append(order, m.Name)
				units[m.Name] = m.Unit
			}

			break
		}

		for _, metric := range order {
			row := make([]string, 0, len(header))
			row = append(row, g.Tool+" "+metric)

			for _, label := range t.Labels {
				rec, ok := g.Records[label]
				if !ok {
					row = append(row, "")
					continue
				}

				v, ok := rec.Get(metric)
				if !ok {
					row = append(row, "")
					continue
				}

				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			}

			row = append(row, "", units[metric])
			rows = append(rows, row)
		}
	}

	return rows
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return f.Close()
}

func writeXLSX(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		// Numeric cells are written as numbers, everything else as
		// strings, so spreadsheet formulas work on the values.
		vals := make([]any, len(row))

		for j, c := range row {
			if v, err := strconv.ParseFloat(c, 64); err == nil && c != "" {
				vals[j] = v
				continue
			}

			vals[j] = c
		}

		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	return nil
}
