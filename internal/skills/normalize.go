// Package skills canonicalizes skill tokens and decides whether two tokens
// name the same skill.
package skills

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-tailor/internal/vocab"
)

// DefaultMinSubstringLen is the shortest canonical form allowed to take part
// in whole-word substring matching. Below this length only exact canonical
// equality counts, which keeps single letters like "r" or "c" from matching
// inside unrelated terms.
const DefaultMinSubstringLen = 2

// versionSuffix strips trailing version numbers ("Python 3.10" -> "Python")
var versionSuffix = regexp.MustCompile(`\s*v?\d+(\.\d+)*\s*$`)

// edge punctuation stripped during canonicalization. Leading dots survive so
// terms like ".NET" keep their meaning; "+" is never stripped for "C++".
const (
	leadingCutset  = ",;:-•*"
	trailingCutset = ".,;:-•*"
)

// Normalizer maps raw skill tokens to canonical forms using the shared alias
// table. A Normalizer is immutable and safe for concurrent use.
type Normalizer struct {
	tables          *vocab.Tables
	minSubstringLen int
}

// NewNormalizer builds a Normalizer over the given vocabulary tables.
// A minSubstringLen below 1 falls back to DefaultMinSubstringLen.
func NewNormalizer(tables *vocab.Tables, minSubstringLen int) *Normalizer {
	if minSubstringLen < 1 {
		minSubstringLen = DefaultMinSubstringLen
	}
	return &Normalizer{tables: tables, minSubstringLen: minSubstringLen}
}

// Canonical returns the canonical form of a raw skill token. Steps, in
// order: trim and lower-case, strip edge punctuation, strip trailing version
// numbers, resolve aliases, strip known suffixes, resolve aliases again.
// A token with no alias is its own canonical form.
func (n *Normalizer) Canonical(token string) string {
	canonical := strings.ToLower(strings.TrimSpace(token))
	canonical = strings.TrimLeft(canonical, leadingCutset)
	canonical = strings.TrimRight(canonical, trailingCutset)
	canonical = versionSuffix.ReplaceAllString(canonical, "")
	canonical = strings.TrimSpace(canonical)

	if alias, ok := n.tables.SkillAliases[canonical]; ok {
		canonical = alias
	}

	for _, suffix := range n.tables.SuffixStrips {
		if strings.HasSuffix(canonical, suffix) && len(canonical) > len(suffix) {
			canonical = canonical[:len(canonical)-len(suffix)]
			break
		}
	}

	if alias, ok := n.tables.SkillAliases[canonical]; ok {
		canonical = alias
	}

	return strings.TrimSpace(canonical)
}

// CanonicalList canonicalizes a list, dropping empties and duplicates while
// preserving first-seen order.
func (n *Normalizer) CanonicalList(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		canonical := n.Canonical(token)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out
}

// Match reports whether two raw tokens name the same skill: their canonical
// forms are equal, or one form is a whole-word substring of the other. The
// substring rule only applies when the shorter form is at least the
// configured minimum length, so "aws" matches inside "aws lambda" but
// "java" never matches "javascript".
func (n *Normalizer) Match(a, b string) bool {
	ca, cb := n.Canonical(a), n.Canonical(b)
	if ca == "" || cb == "" {
		return false
	}
	if ca == cb {
		return true
	}

	short, long := ca, cb
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) < n.minSubstringLen {
		return false
	}
	return containsWordSeq(strings.Fields(long), strings.Fields(short))
}

// MentionedIn reports whether the skill appears as a whole-word phrase
// anywhere in the free text.
func (n *Normalizer) MentionedIn(text, skill string) bool {
	canonical := n.Canonical(skill)
	if canonical == "" {
		return false
	}

	want := strings.Fields(canonical)
	raw := strings.Fields(strings.ToLower(text))
	have := make([]string, len(raw))
	for i, word := range raw {
		have[i] = n.Canonical(word)
	}
	return containsWordSeq(have, want)
}

// containsWordSeq reports whether want appears as a contiguous run in have
func containsWordSeq(have, want []string) bool {
	if len(want) == 0 || len(want) > len(have) {
		return false
	}
	for i := 0; i+len(want) <= len(have); i++ {
		matched := true
		for j := range want {
			if have[i+j] != want[j] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}
