package classify

import (
	"regexp"
	"strings"
)

// Vocabulary decides how marker categories are counted in a message. The
// keyword vocabulary runs a presence test per keyword (a keyword matching
// twice still counts once); the pattern vocabulary sums every regex match
// weighted per pattern. Both are built once at process start and are
// immutable afterwards.
type Vocabulary struct {
	name     string
	matchers map[Category]matcher
}

// Name returns the vocabulary identifier ("keywords" or "patterns").
func (v *Vocabulary) Name() string { return v.name }

// Count returns the category's marker count for the lower-cased text.
func (v *Vocabulary) Count(cat Category, lower string) float64 {
	m, ok := v.matchers[cat]
	if !ok {
		return 0
	}
	return m.count(lower)
}

type matcher interface {
	count(lower string) float64
}

// keywordMatcher counts how many of its keywords appear at least once.
type keywordMatcher []string

func (m keywordMatcher) count(lower string) float64 {
	n := 0.0
	for _, w := range m {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}

// WeightedPattern is one compiled pattern with a per-match weight.
type WeightedPattern struct {
	re     *regexp.Regexp
	weight float64
}

type patternMatcher []WeightedPattern

func (m patternMatcher) count(lower string) float64 {
	total := 0.0
	for _, p := range m {
		if hits := p.re.FindAllStringIndex(lower, -1); hits != nil {
			total += float64(len(hits)) * p.weight
		}
	}
	return total
}

var (
	keywordVocab = buildKeywordVocabulary()
	patternVocab = buildPatternVocabulary()
)

// KeywordVocabulary returns the presence-test vocabulary.
func KeywordVocabulary() *Vocabulary { return keywordVocab }

// PatternVocabulary returns the weighted regex vocabulary. It is derived
// from the same keyword table: each category compiles to one alternation
// pattern counting every occurrence, weight 1 per match.
func PatternVocabulary() *Vocabulary { return patternVocab }

// VocabularyByName resolves a config value to a vocabulary, defaulting to
// keywords for unknown names.
func VocabularyByName(name string) *Vocabulary {
	if strings.EqualFold(strings.TrimSpace(name), "patterns") {
		return patternVocab
	}
	return keywordVocab
}

func buildKeywordVocabulary() *Vocabulary {
	v := &Vocabulary{name: "keywords", matchers: make(map[Category]matcher, len(markerKeywords))}
	for cat, words := range markerKeywords {
		v.matchers[cat] = keywordMatcher(words)
	}
	return v
}

func buildPatternVocabulary() *Vocabulary {
	v := &Vocabulary{name: "patterns", matchers: make(map[Category]matcher, len(markerKeywords))}
	for cat, words := range markerKeywords {
		quoted := make([]string, 0, len(words))
		for _, w := range words {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
		re := regexp.MustCompile(strings.Join(quoted, "|"))
		v.matchers[cat] = patternMatcher{{re: re, weight: 1}}
	}
	return v
}
