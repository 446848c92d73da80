package domain

import "math"

// ValueOr returns *p, or fallback when p is nil or points at the zero value.
// Zero counts as missing so that an explicitly blank field defaults the same
// way an absent one does.
func ValueOr[T comparable](p *T, fallback T) T {
	var zero T
	if p == nil || *p == zero {
		return fallback
	}
	return *p
}

// FloatOr is ValueOr for numeric fields. NaN and ±Inf also count as
// missing, which is what a cleared number input produces.
func FloatOr(p *float64, fallback float64) float64 {
	if p == nil || !IsFinite(*p) || *p == 0 {
		return fallback
	}
	return *p
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
