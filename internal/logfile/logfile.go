// Package logfile classifies benchmark log files by name and opens
// them for reading, transparently decompressing gzip archives.
package logfile

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/ethpandaops/benchreport/internal/units"
)

// Kind identifies which benchmark tool produced a log file. The
// numeric value doubles as the sort rank within one test size.
type Kind int

const (
	KindUnknown Kind = iota
	KindWarp
	KindIftopWarp
	KindOha
	KindIftopOha
)

// String returns the tool label used for grouping report rows.
func (k Kind) String() string {
	switch k {
	case KindWarp:
		return "warp"
	case KindIftopWarp:
		return "iftop-warp"
	case KindOha:
		return "oha"
	case KindIftopOha:
		return "iftop-oha"
	default:
		return "unknown"
	}
}

// KindOf classifies a file name by its leading tool token. Compound
// prefixes are checked first so "iftop-warp-..." never falls through
// to the bare tool.
func KindOf(name string) Kind {
	switch {
	case strings.HasPrefix(name, "iftop-warp"):
		return KindIftopWarp
	case strings.HasPrefix(name, "iftop-oha"):
		return KindIftopOha
	case strings.HasPrefix(name, "warp"):
		return KindWarp
	case strings.HasPrefix(name, "oha"):
		return KindOha
	default:
		return KindUnknown
	}
}

// canonicalUnit maps a lowercased binary suffix back to its
// conventional spelling for display in size labels.
var canonicalUnit = map[string]string{
	"kib": "KiB",
	"mib": "MiB",
	"gib": "GiB",
	"tib": "TiB",
	"pib": "PiB",
}

var sizeTokenRe = regexp.MustCompile(`(?i)([\d.]+)([KMGTP]iB)`)

// Info is the sort key and grouping labels derived from a file name.
type Info struct {
	Kind      Kind
	SizeBytes int64
	SizeLabel string
}

// Classify derives the tool kind, the test payload size in bytes and
// the canonical size label from a file name. The size token may appear
// anywhere in the name; a name without one gets size 0 and label "0b",
// so runs that encode no payload size still sort and group
// deterministically.
func Classify(name string) Info {
	info := Info{Kind: KindOf(name), SizeLabel: "0b"}

	m := sizeTokenRe.FindStringSubmatch(name)
	if m == nil {
		return info
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return info
	}

	unit := strings.ToLower(m[2])
	info.SizeBytes = units.BinaryBytes(m[1], unit)
	info.SizeLabel = fmt.Sprintf("%d%s", int64(v), canonicalUnit[unit])

	return info
}

// Open opens a log file for reading. Files named *.gz are wrapped in
// a gzip reader so archived benchmark runs aggregate without
// unpacking first.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening gzip reader for %s: %w", path, err)
	}

	return &gzipFile{zr: zr, f: f}, nil
}

type gzipFile struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) {
	return g.zr.Read(p)
}

func (g *gzipFile) Close() error {
	if err := g.zr.Close(); err != nil {
		g.f.Close()
		return err
	}

	return g.f.Close()
}
