package value

import "math"

const progressEpsilon = 1e-4

// Progress is a completion ratio clamped to [0, 1].
type Progress struct {
	ratio float64
}

var (
	ProgressZero     = Progress{}
	ProgressComplete = Progress{ratio: 1}
)

func ProgressFromRatio(r float64) Progress {
	return Progress{ratio: clamp01(r)}
}

func ProgressFromPercentage(p float64) Progress {
	return Progress{ratio: clamp01(p / 100)}
}

// ProgressFromFraction returns zero progress when total <= 0.
func ProgressFromFraction(completed, total int64) Progress {
	if total <= 0 {
		return ProgressZero
	}
	return Progress{ratio: clamp01(float64(completed) / float64(total))}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func (p Progress) Ratio() float64      { return p.ratio }
func (p Progress) Percentage() float64 { return p.ratio * 100 }

// Remaining is the outstanding percentage.
func (p Progress) Remaining() float64 { return (1 - p.ratio) * 100 }
func (p Progress) IsZero() bool       { return p.ratio == 0 }
func (p Progress) IsComplete() bool   { return p.ratio >= 1 }

// Format renders the percentage rounded to precision decimals, e.g. "42.5%".
func (p Progress) Format(precision int) string {
	return formatFloat(p.Percentage(), precision) + "%"
}

func (p Progress) String() string {
	return p.Format(1)
}

func (p Progress) Equal(other Progress) bool {
	return math.Abs(p.ratio-other.ratio) < progressEpsilon
}

func (p Progress) ToMap() map[string]any {
	return map[string]any{
		"ratio":      p.ratio,
		"percentage": p.Percentage(),
		"formatted":  p.Format(1),
	}
}
