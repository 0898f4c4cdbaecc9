// Package extract pulls normalized metrics out of raw benchmark tool
// output. Each supported tool has its own extractor because the three
// tools emit structurally unrelated text; sharing extraction logic
// would force a false abstraction.
//
// Extraction is all-or-nothing: a single missing field fails the file
// with a *PatternError and no partial record is ever returned.
package extract

// Metric is a single named measurement with its display unit attached.
// Units travel with the metric so the report writer never has to infer
// them from row position.
type Metric struct {
	Name  string
	Value float64
	Unit  string
}

// Record is an ordered list of metrics extracted from one log file.
// Order is significant: report rows are emitted in exactly the order
// the extractor appended them.
type Record []Metric

// Get returns the value of the named metric.
func (r Record) Get(name string) (float64, bool) {
	for _, m := range r {
		if m.Name == name {
			return m.Value, true
		}
	}

	return 0, false
}
