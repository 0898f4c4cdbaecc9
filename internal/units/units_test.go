package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryBytes_Powers(t *testing.T) {
	cases := []struct {
		unit string
		pow  int64
	}{
		{"B", 1},
		{"KiB", 1 << 10},
		{"MiB", 1 << 20},
		{"GiB", 1 << 30},
		{"TiB", 1 << 40},
		{"PiB", 1 << 50},
	}

	for _, c := range cases {
		assert.Equal(t, 3*c.pow, BinaryBytes("3", c.unit), c.unit)
	}
}

func TestBinaryBytes_CaseInsensitive(t *testing.T) {
	assert.Equal(t, int64(1024), BinaryBytes("1", "kib"))
	assert.Equal(t, int64(1024), BinaryBytes("1", "KIB"))
	assert.Equal(t, int64(1024), BinaryBytes("1", "KiB"))
}

func TestBinaryBytes_Fractional(t *testing.T) {
	assert.Equal(t, int64(1536), BinaryBytes("1.5", "KiB"))
}

func TestBinaryBytes_UnknownUnit(t *testing.T) {
	assert.Equal(t, int64(0), BinaryBytes("42", "XB"))
	assert.Equal(t, int64(0), BinaryBytes("42", ""))
}

func TestBinaryBytes_BadNumber(t *testing.T) {
	assert.Equal(t, int64(0), BinaryBytes("abc", "KiB"))
}

func TestDecimalSizeBytes_Base1024(t *testing.T) {
	// Decimal labels, binary quantities.
	assert.Equal(t, int64(1024), DecimalSizeBytes("1KB"))
	assert.Equal(t, int64(2621440), DecimalSizeBytes("2.50MB"))
	assert.Equal(t, int64(3*(1<<30)), DecimalSizeBytes("3GB"))
}

func TestDecimalSizeBytes_NoToken(t *testing.T) {
	// A bare byte count has no scaled unit and converts to 0.
	assert.Equal(t, int64(0), DecimalSizeBytes("500B"))
	assert.Equal(t, int64(0), DecimalSizeBytes("nothing here"))
}

func TestMilliseconds(t *testing.T) {
	assert.Equal(t, float64(1200), Milliseconds("1.2", "s"))
	assert.Equal(t, float64(300), Milliseconds("0.3", "secs"))
	assert.Equal(t, float64(25), Milliseconds("25", "ms"))
}

func TestMilliseconds_UnknownUnit(t *testing.T) {
	assert.Equal(t, float64(0), Milliseconds("5", "h"))
	assert.Equal(t, float64(0), Milliseconds("junk", "s"))
}
