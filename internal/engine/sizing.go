package engine

import "unicode/utf8"

// compactWidth is the formatted-figure width beyond which the summary row
// drops to the smaller rendering.
const compactWidth = 9

// MaxFigureWidth returns the widest formatted figure, in runes.
func MaxFigureWidth(figures ...string) int {
	maxWidth := 0
	for _, fig := range figures {
		if w := utf8.RuneCountInString(fig); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// IsCompactSummary reports whether the summary figures are wide enough that
// the display should switch to its compact rendering. The policy is purely a
// function of the formatted strings, so any front end can apply it.
func IsCompactSummary(figures ...string) bool {
	return MaxFigureWidth(figures...) > compactWidth
}
