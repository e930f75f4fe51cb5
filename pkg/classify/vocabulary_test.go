package classify

import "testing"

func TestVocabularyByName(t *testing.T) {
	if v := VocabularyByName("patterns"); v.Name() != "patterns" {
		t.Errorf("patterns resolved to %q", v.Name())
	}
	if v := VocabularyByName("keywords"); v.Name() != "keywords" {
		t.Errorf("keywords resolved to %q", v.Name())
	}
	// unknown names default to keywords
	if v := VocabularyByName("nonsense"); v.Name() != "keywords" {
		t.Errorf("unknown name resolved to %q, want keywords", v.Name())
	}
}

func TestKeywordVocabularyCountsPresence(t *testing.T) {
	// the same keyword appearing twice still counts once per keyword
	got := KeywordVocabulary().Count(CatThanks, "感謝 感謝")
	if got != 1 {
		t.Errorf("keyword count = %v, want 1 (presence test)", got)
	}
}

func TestPatternVocabularyCountsOccurrences(t *testing.T) {
	got := PatternVocabulary().Count(CatThanks, "感謝 感謝")
	if got != 2 {
		t.Errorf("pattern count = %v, want 2 (every match)", got)
	}
}

func TestVocabulariesCoverEveryCategory(t *testing.T) {
	for _, v := range []*Vocabulary{KeywordVocabulary(), PatternVocabulary()} {
		for _, cat := range Categories() {
			if _, ok := v.matchers[cat]; !ok {
				t.Errorf("vocabulary %q missing category %q", v.Name(), cat)
			}
		}
	}
}
