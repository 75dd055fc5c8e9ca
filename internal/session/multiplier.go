package session

import "github.com/coreman2200/funtimes-silopad/internal/layout"

// has reports whether factor f is currently applied to m. NegHalf means both
// factors are applied.
func has(m, f layout.Multiplier) bool {
	return m == f || m == layout.NegHalf
}

// toggle applies or removes factor f. The bool is true when f was applied.
func toggle(m, f layout.Multiplier) (layout.Multiplier, bool) {
	if has(m, f) {
		switch {
		case m == f:
			return layout.One, false
		case f == layout.Half:
			return layout.NegOne, false
		default:
			return layout.Half, false
		}
	}
	if m == layout.One {
		return f, true
	}
	// the other single factor is applied; both together give -0.5
	return layout.NegHalf, true
}
