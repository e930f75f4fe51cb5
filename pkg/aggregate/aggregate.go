// Package aggregate rolls per-message axis scores into per-counterparty and
// global distributions, relative-difference rankings and a privacy-safe
// summary. Everything is recomputed from scratch on each call; computation
// is cheap enough that nothing is cached.
package aggregate

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/classify"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/logger"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/models"
)

// GlobalKey is the reserved flattened key for the all-counterparties
// aggregate. It exists only at the serialization boundary; internally the
// global distribution lives in its own field.
const GlobalKey = "global"

// Distribution is the scored profile of one message group.
type Distribution struct {
	Count      int                `json:"count"`
	StyleDist  map[string]float64 `json:"style_dist"`
	ThinkDist  map[string]float64 `json:"think_dist"`
	Confidence float64            `json:"confidence"`
}

// DistributionSet holds the global distribution and one distribution per
// counterparty. The global entry is kept out of the counterparty namespace
// so a talk room literally named "global" cannot silently merge with it.
type DistributionSet struct {
	global         Distribution
	byCounterparty map[string]Distribution
}

// Global returns the distribution over all self-authored messages.
func (s *DistributionSet) Global() Distribution { return s.global }

// Counterparty returns the distribution for one counterparty.
func (s *DistributionSet) Counterparty(name string) (Distribution, bool) {
	d, ok := s.byCounterparty[name]
	return d, ok
}

// Counterparties returns the counterparty names in sorted order.
func (s *DistributionSet) Counterparties() []string {
	names := make([]string, 0, len(s.byCounterparty))
	for name := range s.byCounterparty {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Flatten renders the set as a single map keyed by counterparty name plus
// the reserved "global" entry. A counterparty actually named "global" is
// kept under "global#counterparty" and logged rather than silently merged.
func (s *DistributionSet) Flatten() map[string]Distribution {
	out := make(map[string]Distribution, len(s.byCounterparty)+1)
	out[GlobalKey] = s.global
	for name, d := range s.byCounterparty {
		if name == GlobalKey {
			logger.Warn("counterparty_name_collides_with_global", "renamed", GlobalKey+"#counterparty")
			out[GlobalKey+"#counterparty"] = d
			continue
		}
		out[name] = d
	}
	return out
}

// Build filters messages to the user's own (is_self), groups them by
// counterparty and scores every group plus the global aggregate. Messages
// are consumed read-only. No self-authored messages yields a set whose
// global distribution is the defined zero result.
func Build(engine *classify.Engine, msgs []models.Message) *DistributionSet {
	set := &DistributionSet{byCounterparty: map[string]Distribution{}}

	var allTexts []string
	groups := map[string][]string{}
	for _, m := range msgs {
		if !m.IsSelf {
			continue
		}
		allTexts = append(allTexts, m.Text)
		groups[m.Counterparty] = append(groups[m.Counterparty], m.Text)
	}
	if len(allTexts) == 0 {
		set.global = emptyDistribution()
		return set
	}

	set.global = scoreGroup(engine, allTexts)
	for name, texts := range groups {
		set.byCounterparty[name] = scoreGroup(engine, texts)
	}
	return set
}

func scoreGroup(engine *classify.Engine, texts []string) Distribution {
	scores := engine.GroupScores(texts)
	chars := 0
	for _, t := range texts {
		chars += utf8.RuneCountInString(t)
	}
	return Distribution{
		Count:      len(texts),
		StyleDist:  roundMap(scores.Style(), 4),
		ThinkDist:  roundMap(scores.Think(), 4),
		Confidence: classify.Confidence(len(texts), chars),
	}
}

func emptyDistribution() Distribution {
	style := make(map[string]float64, classify.NumCommAxes)
	think := make(map[string]float64, classify.NumAxes-classify.NumCommAxes)
	for _, l := range classify.CommLabels() {
		style[l] = 0.0
	}
	for _, l := range classify.ThinkLabels() {
		think[l] = 0.0
	}
	return Distribution{Count: 0, StyleDist: style, ThinkDist: think, Confidence: 0}
}

// DiffSet holds a counterparty's signed per-axis deltas from the global
// distribution.
type DiffSet struct {
	StyleDiff map[string]float64 `json:"style_diff"`
	ThinkDiff map[string]float64 `json:"think_diff"`
}

// DiffFromGlobal computes counterparty − global per axis for every
// counterparty. A missing axis key on either side reads as 0.
func DiffFromGlobal(set *DistributionSet) map[string]DiffSet {
	diffs := make(map[string]DiffSet, len(set.byCounterparty))
	g := set.global
	for name, d := range set.byCounterparty {
		ds := DiffSet{
			StyleDiff: make(map[string]float64, classify.NumCommAxes),
			ThinkDiff: make(map[string]float64, classify.NumAxes-classify.NumCommAxes),
		}
		for _, l := range classify.CommLabels() {
			ds.StyleDiff[l] = round(d.StyleDist[l]-g.StyleDist[l], 4)
		}
		for _, l := range classify.ThinkLabels() {
			ds.ThinkDiff[l] = round(d.ThinkDist[l]-g.ThinkDist[l], 4)
		}
		diffs[name] = ds
	}
	return diffs
}

// DiffEntry is one ranked deviation.
type DiffEntry struct {
	Label string  `json:"label"`
	Kind  string  `json:"kind"` // "comm" or "think"
	Diff  float64 `json:"diff"`
}

// TopDiffs returns the counterparty's n largest deviations by absolute
// value, communication and thinking axes pooled together. Ties keep the
// fixed label order (communication axes first). Unknown counterparties
// yield an empty slice; n <= 0 selects the default of 3.
func TopDiffs(diffs map[string]DiffSet, counterparty string, n int) []DiffEntry {
	if n <= 0 {
		n = 3
	}
	ds, ok := diffs[counterparty]
	if !ok {
		return []DiffEntry{}
	}
	items := make([]DiffEntry, 0, classify.NumAxes)
	for _, l := range classify.CommLabels() {
		items = append(items, DiffEntry{Label: l, Kind: "comm", Diff: ds.StyleDiff[l]})
	}
	for _, l := range classify.ThinkLabels() {
		items = append(items, DiffEntry{Label: l, Kind: "think", Diff: ds.ThinkDiff[l]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return math.Abs(items[i].Diff) > math.Abs(items[j].Diff)
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

func roundMap(m map[string]float64, places int) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = round(v, places)
	}
	return out
}
