package model

import "math"

// Progress is one transport progress reading for a task.
// A negative Total means the transport cannot compute the body length.
type Progress struct {
	Sent  int64
	Total int64
}

// Indeterminate reports whether the total is unknown
func (p Progress) Indeterminate() bool {
	return p.Total < 0
}

// Percent returns the rounded completion percentage. ok is false for
// indeterminate progress, which has no meaningful percentage.
func (p Progress) Percent() (percent int, ok bool) {
	if p.Indeterminate() {
		return 0, false
	}
	if p.Total == 0 {
		return 100, true
	}
	percent = int(math.Round(float64(p.Sent) * 100 / float64(p.Total)))
	if percent > 100 {
		percent = 100
	}
	return percent, true
}

// Fraction returns Sent/Total in [0, 1] for progress bars. ok is false when indeterminate.
func (p Progress) Fraction() (float64, bool) {
	if p.Indeterminate() {
		return 0, false
	}
	if p.Total == 0 {
		return 1, true
	}
	return math.Min(float64(p.Sent)/float64(p.Total), 1), true
}

// Complete reports whether a determinate transfer has sent every byte
func (p Progress) Complete() bool {
	return !p.Indeterminate() && p.Sent >= p.Total
}
