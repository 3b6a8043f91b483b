// Package similarity removes near-duplicate skills by name so that a
// recommended set stays maximally diverse.
package similarity

import (
	"strings"
	"unicode"

	"github.com/peopleprotocol/skill-builder/internal/types"
)

const (
	// maxShortWords is the word-count ceiling below which the containment
	// and single-word-difference rules apply.
	maxShortWords = 3
	// maxWordCountDiff is the largest word-count gap the containment rule tolerates.
	maxWordCountDiff = 2
	// minSharedPrefix is the prefix length two differing words must share to
	// be treated as variants of the same term ("Analysis" vs "Analytics").
	minSharedPrefix = 5
)

// Normalize lowercases a skill name, strips punctuation, and collapses
// whitespace so that comparisons ignore formatting differences.
func Normalize(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Similar reports whether two skill names are near-duplicates. The predicate
// is symmetric.
func Similar(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	wordsA := strings.Fields(na)
	wordsB := strings.Fields(nb)

	// Containment: "python" inside "python programming". Only short names
	// qualify so that long phrases sharing a fragment stay distinct.
	shorter, longer := na, nb
	shorterWords := wordsA
	if len(nb) < len(na) {
		shorter, longer = nb, na
		shorterWords = wordsB
	}
	wordDiff := len(wordsA) - len(wordsB)
	if wordDiff < 0 {
		wordDiff = -wordDiff
	}
	if strings.Contains(longer, shorter) && wordDiff <= maxWordCountDiff && len(shorterWords) <= maxShortWords {
		return true
	}

	// Single-word variants: "data analysis" vs "data analytics".
	if len(wordsA) == len(wordsB) && len(wordsA) <= maxShortWords {
		diffIdx := -1
		for i := range wordsA {
			if wordsA[i] != wordsB[i] {
				if diffIdx >= 0 {
					return false
				}
				diffIdx = i
			}
		}
		if diffIdx >= 0 && sharedPrefix(wordsA[diffIdx], wordsB[diffIdx]) {
			return true
		}
	}

	return false
}

// sharedPrefix reports whether either word is a ≥minSharedPrefix-character
// prefix match of the other.
func sharedPrefix(a, b string) bool {
	n := minSharedPrefix
	if len(a) < n || len(b) < n {
		return false
	}
	return a[:n] == b[:n]
}

// Filter returns the stable subsequence of records in which no two entries
// are similar by name. First-seen order wins; later near-duplicates are
// dropped. Pairwise against the accepted set only, O(n²) over n≈30.
func Filter(records []types.SkillRecord) []types.SkillRecord {
	accepted := make([]types.SkillRecord, 0, len(records))
	for _, rec := range records {
		if !similarToAny(accepted, rec.Name) {
			accepted = append(accepted, rec)
		}
	}
	return accepted
}

// FilterAgainst appends candidates that are not similar to any already
// accepted record, checking each new candidate against the growing set.
// Used when topping up an existing selection from broader searches.
func FilterAgainst(accepted, candidates []types.SkillRecord) []types.SkillRecord {
	result := accepted
	for _, rec := range candidates {
		if !similarToAny(result, rec.Name) {
			result = append(result, rec)
		}
	}
	return result
}

func similarToAny(accepted []types.SkillRecord, name string) bool {
	for _, a := range accepted {
		if Similar(a.Name, name) {
			return true
		}
	}
	return false
}

// DedupeByID removes records whose taxonomy ID was already seen, preserving
// order. Run before the similarity pass; identity dedupe is cheaper and
// should not consume the similarity budget.
func DedupeByID(records []types.SkillRecord) []types.SkillRecord {
	seen := make(map[string]bool, len(records))
	result := make([]types.SkillRecord, 0, len(records))
	for _, rec := range records {
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		result = append(result, rec)
	}
	return result
}
