package classify

import (
	"math"
	"strings"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestGroupScoresEmptyGroup(t *testing.T) {
	e := New(ModeWeightedAxis, nil)
	s := e.GroupScores(nil)
	if s != (Scores{}) {
		t.Fatalf("empty group must score all zeros, got %v", s)
	}
	style := s.Style()
	if len(style) != NumCommAxes {
		t.Fatalf("style map has %d keys, want %d", len(style), NumCommAxes)
	}
	think := s.Think()
	if len(think) != int(NumAxes)-NumCommAxes {
		t.Fatalf("think map has %d keys, want %d", len(think), int(NumAxes)-NumCommAxes)
	}
	for l, v := range style {
		if v != 0 {
			t.Errorf("style[%s] = %v, want 0", l, v)
		}
	}
	for l, v := range think {
		if v != 0 {
			t.Errorf("think[%s] = %v, want 0", l, v)
		}
	}
}

func TestGroupScoresDeterministic(t *testing.T) {
	e := New(ModeWeightedAxis, nil)
	texts := []string{
		"まず結論から言うと、これで行きます",
		"なぜそうなったのか教えて?",
		"ありがとう、助かる!",
	}
	first := e.GroupScores(texts)
	for i := 0; i < 10; i++ {
		if got := e.GroupScores(texts); got != first {
			t.Fatalf("run %d differed: %v vs %v", i, got, first)
		}
	}
}

func TestBrevityInversion(t *testing.T) {
	e := New(ModeWeightedAxis, nil)
	short := e.GroupScores([]string{"了解", "うん", "おけ"})
	long := e.GroupScores([]string{strings.Repeat("あ", 150)})

	if short[Brevity] <= long[Brevity] {
		t.Fatalf("short corpus Brevity %v must exceed long corpus %v", short[Brevity], long[Brevity])
	}
	if long[Brevity] != 0 {
		t.Errorf("150-char messages saturate Brevity at 0, got %v", long[Brevity])
	}
	// avg 2 runes per message: 1 - 2/100 = 0.98
	if !almostEqual(short[Brevity], 0.98) {
		t.Errorf("short Brevity = %v, want 0.98", short[Brevity])
	}
}

func TestAbstractnessDegenerateConstant(t *testing.T) {
	e := New(ModeWeightedAxis, nil)
	// no abstract markers, no concrete markers, no digits
	s := e.GroupScores([]string{"了解"})
	if !almostEqual(s[Abstractness], 0.1) {
		t.Fatalf("no-evidence Abstractness = %v, want the 0.1 constant", s[Abstractness])
	}
}

func TestAbstractnessWithEvidence(t *testing.T) {
	e := New(ModeWeightedAxis, nil)

	abstract := e.GroupScores([]string{"本質的にはこう"})
	if !almostEqual(abstract[Abstractness], 1.0) {
		t.Errorf("pure abstract evidence = %v, want clamp at 1.0", abstract[Abstractness])
	}

	concrete := e.GroupScores([]string{"例えばこういうこと"})
	if !almostEqual(concrete[Abstractness], 0.0) {
		t.Errorf("pure concrete evidence = %v, want clamp at 0.0", concrete[Abstractness])
	}
}

func TestLeadDirectivenessFloorsAtZero(t *testing.T) {
	e := New(ModeWeightedAxis, nil)
	// a bare question: the question-mark penalty must not go negative
	s := e.GroupScores([]string{"どこ?"})
	if s[LeadDirectiveness] != 0 {
		t.Fatalf("Lead_Directiveness = %v, want floor at 0", s[LeadDirectiveness])
	}
	if !almostEqual(s[ActiveListening], 1.2) {
		t.Errorf("Active_Listening = %v, want 1.2 from one question mark", s[ActiveListening])
	}
}

func TestEmpathyFormula(t *testing.T) {
	e := New(ModeWeightedAxis, nil)
	// "ありがとうございます": thanks keywords ありがとう+ありがと both present (2),
	// one polite ます occurrence
	s := e.GroupScores([]string{"ありがとうございます"})
	want := 2*1.2 + 1*0.05
	if !almostEqual(s[EmpathyCare], want) {
		t.Fatalf("Empathy_Care = %v, want %v", s[EmpathyCare], want)
	}
}

func TestConfidenceBounds(t *testing.T) {
	cases := []struct {
		msgs, chars int
		want        float64
	}{
		{0, 0, 0},
		{200, 5000, 1},
		{100, 2500, 0.5},
		{1000, 999999, 1},
		{-5, -100, 0},
		{50, 0, 0.13}, // (0.25+0)/2 rounded
	}
	for _, c := range cases {
		got := Confidence(c.msgs, c.chars)
		if got < 0 || got > 1 {
			t.Errorf("Confidence(%d,%d) = %v out of [0,1]", c.msgs, c.chars, got)
		}
		if !almostEqual(got, c.want) {
			t.Errorf("Confidence(%d,%d) = %v, want %v", c.msgs, c.chars, got, c.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"", "weighted", "Weighted_Axis"} {
		m, err := ParseMode(s)
		if err != nil || m != ModeWeightedAxis {
			t.Errorf("ParseMode(%q) = %v, %v", s, m, err)
		}
	}
	if m, err := ParseMode("categorical"); err != nil || m != ModeCategorical {
		t.Errorf("ParseMode(categorical) = %v, %v", m, err)
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Error("ParseMode(bogus) should fail")
	}
}
