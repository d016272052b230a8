// Package moderation flags board messages for review.
// Nothing here changes what the board shows, it only feeds the review queue.
package moderation

import (
	"aptos-board/errors"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

type Moderator struct {
	matcher *goahocorasick.Machine
}

// NewModerator initializes the Aho-Corasick automaton with a normalized version of the provided word list.
// Words made only of noise are ignored, words normalizing to the same pattern are kept once.
func NewModerator(words []string) (Moderator, error) {
	normalized := lo.Uniq(lo.FilterMap(words, func(word string, _ int) (string, bool) {
		n := string(normalizeRunes([]rune(word)))
		return n, n != ""
	}))
	patterns := lo.Map(normalized, func(word string, _ int) []rune {
		return []rune(word)
	})
	if len(patterns) == 0 {
		return Moderator{}, errors.ErrEmptyWords
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return Moderator{}, err
	}
	return Moderator{matcher: m}, nil
}

// Scan returns the listed words found in the text, in order of appearance.
// Matching ignores case, punctuation, spacing and common leet substitutions.
func (m Moderator) Scan(text string) []string {
	normalized := normalizeRunes([]rune(text))
	if len(normalized) == 0 {
		return nil
	}
	terms := m.matcher.MultiPatternSearch(normalized, false)
	if len(terms) == 0 {
		return nil
	}
	return lo.Map(terms, func(term *goahocorasick.Term, _ int) string {
		return string(term.Word)
	})
}

// normalizeRunes applies simplification and noise removal to a slice of runes.
func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps common Leet speak characters back to their standard alphabet counterparts.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// isNoise identifies characters that should be ignored during the pattern matching phase.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
