package classify

import (
	"strings"
	"testing"
)

func TestPrimaryStylesQuestion(t *testing.T) {
	e := New(ModeCategorical, nil)
	comm, think := e.PrimaryStyles("なぜそうなった?")
	if comm != ActiveListening.Label() {
		t.Errorf("comm = %q, want %q", comm, ActiveListening.Label())
	}
	// no thinking evidence: neutral fallback
	if think != Abstractness.Label() {
		t.Errorf("think = %q, want %q", think, Abstractness.Label())
	}
}

func TestPrimaryStylesShortMessageIsBrief(t *testing.T) {
	e := New(ModeCategorical, nil)
	comm, _ := e.PrimaryStyles("うん")
	if comm != Brevity.Label() {
		t.Errorf("comm = %q, want %q for a short evidence-free message", comm, Brevity.Label())
	}
}

func TestPrimaryStylesLongEvidenceFreeIsPlain(t *testing.T) {
	e := New(ModeCategorical, nil)
	comm, _ := e.PrimaryStyles(strings.Repeat("あ", 40))
	if comm != PrimaryPlain {
		t.Errorf("comm = %q, want %q", comm, PrimaryPlain)
	}
}

func TestPrimaryStylesThinkingEvidence(t *testing.T) {
	e := New(ModeCategorical, nil)
	_, think := e.PrimaryStyles("リスクと問題が心配")
	if think != RiskAwareness.Label() {
		t.Errorf("think = %q, want %q", think, RiskAwareness.Label())
	}
}

func TestCategoricalSharesSumToLabelFractions(t *testing.T) {
	e := New(ModeCategorical, nil)
	s := e.GroupScores([]string{"なぜそうなった?", "うん"})

	if s[ActiveListening] != 0.5 {
		t.Errorf("Active_Listening share = %v, want 0.5", s[ActiveListening])
	}
	if s[Brevity] != 0.5 {
		t.Errorf("Brevity share = %v, want 0.5", s[Brevity])
	}
	if s[Abstractness] != 1.0 {
		t.Errorf("Abstractness share = %v, want 1.0 (both fall back)", s[Abstractness])
	}

	// comm shares never exceed 1 in total
	total := 0.0
	for a := Axis(0); a < NumCommAxes; a++ {
		total += s[a]
	}
	if total > 1+1e-9 {
		t.Errorf("communication shares sum to %v, want <= 1", total)
	}
}

func TestCategoricalEmptyGroup(t *testing.T) {
	e := New(ModeCategorical, nil)
	if s := e.GroupScores(nil); s != (Scores{}) {
		t.Fatalf("empty categorical group must be all zeros, got %v", s)
	}
}
