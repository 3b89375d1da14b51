package value

import (
	"errors"
	"math"
	"strconv"
)

const (
	bytesPerKB = 1024
	bytesPerMB = 1024 * bytesPerKB
	bytesPerGB = 1024 * bytesPerMB
	bytesPerTB = 1024 * bytesPerGB
)

// ErrNegativeSize is returned when a size would be below zero.
var ErrNegativeSize = errors.New("file size cannot be negative")

// FileSize is a non-negative byte count.
type FileSize struct {
	bytes int64
}

// FileSizeFromBytes returns ErrNegativeSize for n < 0.
func FileSizeFromBytes(n int64) (FileSize, error) {
	if n < 0 {
		return FileSize{}, ErrNegativeSize
	}
	return FileSize{bytes: n}, nil
}

// MustFileSize is FileSizeFromBytes that clamps negative input to zero.
// Upstream payloads occasionally report -1 for unknown sizes.
func MustFileSize(n int64) FileSize {
	return FileSize{bytes: max(n, 0)}
}

func FileSizeFromKB(kb float64) (FileSize, error) { return fromUnit(kb, bytesPerKB) }
func FileSizeFromMB(mb float64) (FileSize, error) { return fromUnit(mb, bytesPerMB) }
func FileSizeFromGB(gb float64) (FileSize, error) { return fromUnit(gb, bytesPerGB) }
func FileSizeFromTB(tb float64) (FileSize, error) { return fromUnit(tb, bytesPerTB) }

func fromUnit(v float64, unit int64) (FileSize, error) {
	return FileSizeFromBytes(int64(math.Round(v * float64(unit))))
}

func (f FileSize) Bytes() int64 { return f.bytes }
func (f FileSize) KB() float64  { return float64(f.bytes) / bytesPerKB }
func (f FileSize) MB() float64  { return float64(f.bytes) / bytesPerMB }
func (f FileSize) GB() float64  { return float64(f.bytes) / bytesPerGB }
func (f FileSize) TB() float64  { return float64(f.bytes) / bytesPerTB }

func (f FileSize) IsZero() bool { return f.bytes == 0 }

// Format renders the size in the largest binary unit it fills, rounded to
// precision decimals without trailing zeros, e.g. "1.5 GB".
func (f FileSize) Format(precision int) string {
	switch {
	case f.bytes >= bytesPerTB:
		return formatFloat(f.TB(), precision) + " TB"
	case f.bytes >= bytesPerGB:
		return formatFloat(f.GB(), precision) + " GB"
	case f.bytes >= bytesPerMB:
		return formatFloat(f.MB(), precision) + " MB"
	case f.bytes >= bytesPerKB:
		return formatFloat(f.KB(), precision) + " KB"
	default:
		return strconv.FormatInt(f.bytes, 10) + " B"
	}
}

// FormatDecimal is like Format but uses SI (1000-based) units.
func (f FileSize) FormatDecimal(precision int) string {
	units := []string{"B", "kB", "MB", "GB", "TB", "PB"}
	v := float64(f.bytes)
	i := 0
	for v >= 1000 && i < len(units)-1 {
		v /= 1000
		i++
	}
	if i == 0 {
		return strconv.FormatInt(f.bytes, 10) + " B"
	}
	return formatFloat(v, precision) + " " + units[i]
}

func (f FileSize) String() string {
	return f.Format(2)
}

func (f FileSize) Add(other FileSize) FileSize {
	return FileSize{bytes: f.bytes + other.bytes}
}

// Subtract floors at zero.
func (f FileSize) Subtract(other FileSize) FileSize {
	return FileSize{bytes: max(f.bytes-other.bytes, 0)}
}

func (f FileSize) GreaterThan(other FileSize) bool { return f.bytes > other.bytes }
func (f FileSize) LessThan(other FileSize) bool    { return f.bytes < other.bytes }
func (f FileSize) Equal(other FileSize) bool       { return f.bytes == other.bytes }

func (f FileSize) ToMap() map[string]any {
	return map[string]any{
		"bytes":     f.bytes,
		"formatted": f.Format(2),
	}
}

func roundTo(v float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(v*p) / p
}

func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(roundTo(v, precision), 'f', -1, 64)
}
