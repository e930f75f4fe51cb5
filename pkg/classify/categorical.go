package classify

// PrimaryPlain is the categorical fallback label for messages with no
// communication-style evidence. It exists only in categorical mode and is
// not one of the 13 axes; plain messages simply contribute no axis share.
const PrimaryPlain = "Plain"

// shortMessageChars is the length under which an evidence-free message
// still reads as a deliberate brief style rather than plain text.
const shortMessageChars = 30

// PrimaryStyles classifies one message into a primary communication label
// (one of the 7 communication axes or Plain) and a primary thinking label
// (one of the 6 thinking axes). Ties break in fixed axis order; a message
// with no thinking evidence is read as neutral Abstractness.
func (e *Engine) PrimaryStyles(text string) (comm string, think string) {
	t := newTotals()
	f := ExtractFeatures(text, e.vocab)
	t.add(f)
	s := weightedScores(t)

	// Communication: argmax over the six content axes; Brevity is a
	// reference axis and only wins when nothing else fired on a short
	// message.
	best := Axis(-1)
	bestVal := 0.0
	for a := LeadDirectiveness; a < Brevity; a++ {
		if s[a] > bestVal {
			best, bestVal = a, s[a]
		}
	}
	switch {
	case best >= 0:
		comm = best.Label()
	case f.CharCount > 0 && f.CharCount <= shortMessageChars:
		comm = Brevity.Label()
	default:
		comm = PrimaryPlain
	}

	// Thinking: the degenerate Abstractness constant must not win by
	// default, so it only competes when real evidence exists.
	abstract, concrete := abstractEvidence(t)
	tBest := Axis(-1)
	tBestVal := 0.0
	for a := StructuralThinking; a < NumAxes; a++ {
		v := s[a]
		if a == Abstractness && abstract == 0 && concrete == 0 {
			v = 0
		}
		if v > tBestVal {
			tBest, tBestVal = a, v
		}
	}
	if tBest >= 0 {
		think = tBest.Label()
	} else {
		think = Abstractness.Label()
	}
	return comm, think
}

// categoricalShares computes label frequency shares: for each axis, the
// fraction of messages whose primary label is that axis. Plain mass leaves
// the communication shares summing below 1.
func (e *Engine) categoricalShares(texts []string) Scores {
	var s Scores
	n := float64(len(texts))
	if n == 0 {
		return s
	}
	labelToAxis := make(map[string]Axis, NumAxes)
	for a := Axis(0); a < NumAxes; a++ {
		labelToAxis[a.Label()] = a
	}
	for _, txt := range texts {
		comm, think := e.PrimaryStyles(txt)
		if a, ok := labelToAxis[comm]; ok {
			s[a]++
		}
		if a, ok := labelToAxis[think]; ok {
			s[a]++
		}
	}
	for a := Axis(0); a < NumAxes; a++ {
		s[a] /= n
	}
	return s
}
