package classify

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects the rule engine variant. The two variants are historical
// siblings and are never mixed at runtime; the mode is fixed at startup.
type Mode int

const (
	// ModeWeightedAxis scores each group on 13 continuous axes (the
	// authoritative variant).
	ModeWeightedAxis Mode = iota
	// ModeCategorical assigns each message one primary communication label
	// and one primary thinking label; group scores are label shares.
	ModeCategorical
)

// ParseMode resolves a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "weighted", "weighted_axis":
		return ModeWeightedAxis, nil
	case "categorical":
		return ModeCategorical, nil
	}
	return ModeWeightedAxis, fmt.Errorf("unknown scoring mode: %q", s)
}

func (m Mode) String() string {
	if m == ModeCategorical {
		return "categorical"
	}
	return "weighted"
}

// Engine is the axis scorer. It is stateless apart from its immutable
// configuration and safe for concurrent use.
type Engine struct {
	mode  Mode
	vocab *Vocabulary
}

// New returns an engine for the given mode and vocabulary. A nil vocabulary
// selects the keyword vocabulary.
func New(mode Mode, vocab *Vocabulary) *Engine {
	if vocab == nil {
		vocab = keywordVocab
	}
	return &Engine{mode: mode, vocab: vocab}
}

// Mode returns the engine's scoring mode.
func (e *Engine) Mode() Mode { return e.mode }

// Vocabulary returns the engine's marker vocabulary.
func (e *Engine) Vocabulary() *Vocabulary { return e.vocab }

// totals is the component-wise sum of feature vectors across one group.
type totals struct {
	msgs         float64
	chars        float64
	questionMark float64
	exclaim      float64
	emoji        float64
	laugh        float64
	listMarker   float64
	polite       float64
	number       float64
	markers      map[Category]float64
}

func (t *totals) add(f Features) {
	t.msgs++
	t.chars += float64(f.CharCount)
	t.questionMark += float64(f.QuestionMark)
	t.exclaim += float64(f.Exclaim)
	t.emoji += float64(f.Emoji)
	t.laugh += float64(f.Laugh)
	t.listMarker += float64(f.ListMarker)
	t.polite += float64(f.PoliteCount)
	t.number += float64(f.NumberCount)
	for cat, v := range f.Markers {
		t.markers[cat] += v
	}
}

func newTotals() totals {
	return totals{markers: make(map[Category]float64, len(markerKeywords))}
}

// GroupScores computes the 13 axis scores for a group of message texts.
// An empty group yields all zeros; the function never fails and never
// mutates its input.
func (e *Engine) GroupScores(texts []string) Scores {
	if len(texts) == 0 {
		return Scores{}
	}
	if e.mode == ModeCategorical {
		return e.categoricalShares(texts)
	}
	t := newTotals()
	for _, txt := range texts {
		t.add(ExtractFeatures(txt, e.vocab))
	}
	return weightedScores(t)
}

// weightedScores applies the 13 fixed linear formulas to summed features.
// Scores are per-message averages, not probabilities; dense marker usage can
// push a score above 1.0.
func weightedScores(t totals) Scores {
	var s Scores
	n := t.msgs
	m := t.markers

	lead := m[CatDirective] + m[CatAssertive] + m[CatProposal]*1.5
	lead -= t.questionMark * 0.3 // questions reduce apparent directiveness
	s[LeadDirectiveness] = math.Max(0, lead/n)

	collab := m[CatCollaborative]*1.5 + m[CatOptions] + m[CatSeekOpinion]
	s[Collaboration] = collab / n

	listening := t.questionMark*1.2 + m[CatQuestionDeep]*2 + m[CatQuestionClarify]*1.5 + m[CatQuestionEmotion]
	s[ActiveListening] = listening / n

	logical := m[CatStructure]*1.5 + m[CatCausal]*1.2 + m[CatAnalytical] + t.listMarker*0.5
	s[LogicalExpression] = logical / n

	emotional := m[CatEmotionPositive] + m[CatEmotionNegative] + m[CatEmotionNeutral]*0.8 + m[CatSubjective]*0.5
	emotional += (t.exclaim + t.emoji + t.laugh) * 0.2 // symbol counts arrive pre-capped
	s[EmotionalExpression] = emotional / n

	empathy := m[CatEmpathy]*1.5 + m[CatCare]*1.2 + m[CatThanks]*1.2 + m[CatApology] + m[CatCushion]*1.3
	empathy += t.polite * 0.05 // politeness is an auxiliary, low-weight signal
	s[EmpathyCare] = empathy / n

	// Brevity is inverted: shorter messages score higher, 100 chars per
	// message is the saturation point.
	avgChars := t.chars / n
	brevity := 1.0 - math.Min(avgChars/100, 1.0)
	brevity -= m[CatDigression] / n * 0.2
	s[Brevity] = math.Max(0, brevity)

	structural := m[CatClassification]*1.5 + m[CatFramework]*1.3 + m[CatHierarchy]
	s[StructuralThinking] = structural / n

	abstract, concrete := abstractEvidence(t)
	if abstract == 0 && concrete == 0 {
		// No evidence either way must not read as "maximally concrete".
		s[Abstractness] = 0.1
	} else {
		s[Abstractness] = clamp01((abstract-concrete)/n + 0.3)
	}

	multi := m[CatPerspective]*1.5 + m[CatMultipleOptions]*1.3 + m[CatAnticipate]
	s[MultiPerspective] = multi / n

	reflective := m[CatSelfReference]*0.8 + m[CatMentalProcess]*1.5 + m[CatSelfImprovement]*1.8
	s[SelfReflection] = reflective / n

	future := m[CatFutureTime]*1.2 + m[CatPlanning]*1.5 + m[CatPossibility]
	s[FutureOriented] = future / n

	risk := m[CatRisk]*1.5 + m[CatConditional] + m[CatFailure]*1.2
	risk += m[CatCountermeasure] * 0.5 // mitigation language is a healthy signal
	s[RiskAwareness] = risk / n

	return s
}

// abstractEvidence returns the raw abstract and concrete evidence sums.
// Numeric tokens count as weak concrete evidence.
func abstractEvidence(t totals) (float64, float64) {
	return t.markers[CatAbstract], t.markers[CatConcrete] + t.number*0.2
}

// Confidence estimates how much statistical weight backs a distribution,
// from message volume (saturating at 200 messages) and character volume
// (saturating at 5000 chars). Always within [0, 1], rounded to 2 decimals.
func Confidence(msgCount, charCount int) float64 {
	if msgCount < 0 {
		msgCount = 0
	}
	if charCount < 0 {
		charCount = 0
	}
	msgFactor := math.Min(1.0, float64(msgCount)/200)
	charFactor := math.Min(1.0, float64(charCount)/5000)
	return math.Round((msgFactor+charFactor)/2*100) / 100
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
