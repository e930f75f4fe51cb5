package classify

// Axis is one of the 13 fixed behavioral dimensions. Communication axes
// come first, thinking axes after, so a fixed-size array indexed by Axis
// always carries every label.
type Axis int

const (
	LeadDirectiveness Axis = iota
	Collaboration
	ActiveListening
	LogicalExpression
	EmotionalExpression
	EmpathyCare
	Brevity

	StructuralThinking
	Abstractness
	MultiPerspective
	SelfReflection
	FutureOriented
	RiskAwareness

	NumAxes
)

// NumCommAxes is the count of communication-style axes; the remaining
// axes up to NumAxes are thinking-style axes.
const NumCommAxes = 7

var axisLabels = [NumAxes]string{
	LeadDirectiveness:   "Lead_Directiveness",
	Collaboration:       "Collaboration",
	ActiveListening:     "Active_Listening",
	LogicalExpression:   "Logical_Expression",
	EmotionalExpression: "Emotional_Expression",
	EmpathyCare:         "Empathy_Care",
	Brevity:             "Brevity",
	StructuralThinking:  "Structural_Thinking",
	Abstractness:        "Abstractness",
	MultiPerspective:    "Multi_Perspective",
	SelfReflection:      "Self_Reflection",
	FutureOriented:      "Future_Oriented",
	RiskAwareness:       "Risk_Awareness",
}

// Japanese display names, mirroring what the charting clients render.
var axisDisplay = [NumAxes]string{
	LeadDirectiveness:   "主導性",
	Collaboration:       "協調性",
	ActiveListening:     "傾聴性",
	LogicalExpression:   "論理表出性",
	EmotionalExpression: "感情表出性",
	EmpathyCare:         "配慮・共感性",
	Brevity:             "簡潔性",
	StructuralThinking:  "構造思考性",
	Abstractness:        "抽象度",
	MultiPerspective:    "多角性",
	SelfReflection:      "内省性",
	FutureOriented:      "未来志向性",
	RiskAwareness:       "リスク感知性",
}

// Label returns the stable external label for the axis.
func (a Axis) Label() string { return axisLabels[a] }

// Display returns the Japanese display name for the axis.
func (a Axis) Display() string { return axisDisplay[a] }

// IsComm reports whether the axis belongs to the communication group.
func (a Axis) IsComm() bool { return a >= 0 && a < NumCommAxes }

// CommAxes returns the communication axes in fixed order.
func CommAxes() []Axis {
	out := make([]Axis, 0, NumCommAxes)
	for a := Axis(0); a < NumCommAxes; a++ {
		out = append(out, a)
	}
	return out
}

// ThinkAxes returns the thinking axes in fixed order.
func ThinkAxes() []Axis {
	out := make([]Axis, 0, NumAxes-NumCommAxes)
	for a := Axis(NumCommAxes); a < NumAxes; a++ {
		out = append(out, a)
	}
	return out
}

// CommLabels returns the 7 communication labels in fixed order.
func CommLabels() []string {
	out := make([]string, 0, NumCommAxes)
	for _, a := range CommAxes() {
		out = append(out, a.Label())
	}
	return out
}

// ThinkLabels returns the 6 thinking labels in fixed order.
func ThinkLabels() []string {
	out := make([]string, 0, NumAxes-NumCommAxes)
	for _, a := range ThinkAxes() {
		out = append(out, a.Label())
	}
	return out
}

// Scores holds one value per axis for a group of messages. The array form
// guarantees all 13 axes are always populated; a zero Scores is the defined
// result for an empty message group.
type Scores [NumAxes]float64

// Style returns the communication-axis slice of the score set keyed by label.
func (s Scores) Style() map[string]float64 {
	out := make(map[string]float64, NumCommAxes)
	for _, a := range CommAxes() {
		out[a.Label()] = s[a]
	}
	return out
}

// Think returns the thinking-axis slice of the score set keyed by label.
func (s Scores) Think() map[string]float64 {
	out := make(map[string]float64, NumAxes-NumCommAxes)
	for _, a := range ThinkAxes() {
		out[a.Label()] = s[a]
	}
	return out
}
