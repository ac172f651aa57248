// Package suggest implements autocomplete suggestions over historical
// free-text fields: case-insensitive substring matching, locale-aware
// ordering, capped result size.
package suggest

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// maxSuggestions caps the number of results per query.
const maxSuggestions = 3

// Suggester matches a search string against a candidate pool. Accepting a
// suggestion records it; the immediately following query for that exact text
// is suppressed so the dropdown does not reopen over a value the user just
// picked. Any divergent input clears the marker.
type Suggester struct {
	collator     *collate.Collator
	lastAccepted string
	hasAccepted  bool
}

// New returns a Suggester ordering matches with a case-insensitive,
// locale-aware collator.
func New() *Suggester {
	return &Suggester{
		collator: collate.New(language.Und, collate.IgnoreCase),
	}
}

// Accept records that the user picked this suggestion, suppressing the next
// query for the same text.
func (s *Suggester) Accept(value string) {
	s.lastAccepted = value
	s.hasAccepted = true
}

// Reset clears any accepted-suggestion marker.
func (s *Suggester) Reset() {
	s.lastAccepted = ""
	s.hasAccepted = false
}

// Suggestions returns up to three candidates containing searchText,
// case-insensitively, in locale order. An empty search yields nothing. A
// query matching the just-accepted suggestion yields nothing once, then the
// marker clears.
func (s *Suggester) Suggestions(searchText string, pool []string) []string {
	if s.hasAccepted {
		if searchText == s.lastAccepted {
			s.Reset()
			return nil
		}
		// Input diverged from the accepted value; forget it.
		s.Reset()
	}

	if searchText == "" {
		return nil
	}

	needle := strings.ToLower(searchText)
	seen := make(map[string]struct{}, len(pool))
	var matches []string
	for _, candidate := range pool {
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}

		if strings.Contains(strings.ToLower(candidate), needle) {
			matches = append(matches, candidate)
		}
	}

	s.collator.SortStrings(matches)

	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return matches
}
