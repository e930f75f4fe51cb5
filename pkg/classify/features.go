package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// punctuation caps: a single symbol-heavy message must not dominate a score.
const symbolCap = 3

var numberRe = regexp.MustCompile(`\d+`)

// Features is the primitive-count bag for one message. It is derived from
// the text and discarded after scoring.
type Features struct {
	CharCount     int
	SentenceCount int
	QuestionMark  int
	Exclaim       int
	Emoji         int
	Laugh         int
	ListMarker    int
	PoliteCount   int
	NumberCount   int
	Markers       map[Category]float64
}

// ExtractFeatures converts one message's text into a feature vector. It is
// total over all string inputs; an empty string yields zeros except the
// sentence count, which floors at 1.
func ExtractFeatures(text string, vocab *Vocabulary) Features {
	if vocab == nil {
		vocab = keywordVocab
	}
	lower := strings.ToLower(text)

	f := Features{
		CharCount:     utf8.RuneCountInString(text),
		SentenceCount: maxInt(1, strings.Count(text, "。")+strings.Count(text, ".")+strings.Count(text, "\n")),
		QuestionMark:  strings.Count(text, "?") + strings.Count(text, "？"),
		Exclaim:       minInt(strings.Count(text, "!")+strings.Count(text, "！"), symbolCap),
		Emoji:         minInt(countEmoji(text), symbolCap),
		Laugh:         minInt(strings.Count(lower, "笑")+strings.Count(lower, "w"), symbolCap),
		NumberCount:   len(numberRe.FindAllString(text, -1)),
		Markers:       make(map[Category]float64, len(markerKeywords)),
	}

	for _, tok := range listMarkerTokens {
		if strings.Contains(text, tok) {
			f.ListMarker++
		}
	}
	for _, p := range politeMarkers {
		f.PoliteCount += strings.Count(text, p)
	}
	for _, cat := range Categories() {
		f.Markers[cat] = vocab.Count(cat, lower)
	}
	return f
}

// countEmoji counts runes inside the common emoji blocks (faces, symbols,
// transport, flags).
func countEmoji(text string) int {
	n := 0
	for _, r := range text {
		switch {
		case r >= 0x1F600 && r <= 0x1F64F,
			r >= 0x1F300 && r <= 0x1F5FF,
			r >= 0x1F680 && r <= 0x1F6FF,
			r >= 0x1F1E0 && r <= 0x1F1FF:
			n++
		}
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
