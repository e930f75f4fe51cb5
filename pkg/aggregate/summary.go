package aggregate

import (
	"fmt"
	"hash/fnv"
)

// summaryNote is part of the external summary contract; downstream prompts
// rely on its exact wording.
const summaryNote = "This JSON contains only aggregated statistics. No raw message content is included."

// Summary is the export object handed to tools outside the trust boundary.
// It carries aggregated numbers only; raw message text must never appear in
// it under any input.
type Summary struct {
	Meta           SummaryMeta                    `json:"meta"`
	Global         Distribution                   `json:"global"`
	ByCounterparty map[string]CounterpartySummary `json:"by_counterparty"`
}

// SummaryMeta identifies the exporting user by hash only.
type SummaryMeta struct {
	MyNameHash string `json:"my_name_hash"`
	Note       string `json:"note"`
}

// CounterpartySummary is one counterparty's aggregated entry.
type CounterpartySummary struct {
	DisplayName    string             `json:"display_name"`
	Count          int                `json:"count"`
	Confidence     float64            `json:"confidence"`
	StyleDist      map[string]float64 `json:"style_dist"`
	ThinkDist      map[string]float64 `json:"think_dist"`
	DiffFromGlobal DiffSet            `json:"diff_from_global"`
	Top3Diff       []DiffEntry        `json:"top3_diff"`
}

// BuildSummary assembles the privacy-safe export. Distribution values are
// rounded to 3 decimals; counterparty entries are keyed by a stable FNV
// hash so the map keys themselves leak nothing.
func BuildSummary(set *DistributionSet, diffs map[string]DiffSet, displayName string, topN int) Summary {
	s := Summary{
		Meta: SummaryMeta{
			MyNameHash: nameHash("user", displayName),
			Note:       summaryNote,
		},
		Global:         roundDistribution(set.Global(), 3),
		ByCounterparty: map[string]CounterpartySummary{},
	}
	for _, name := range set.Counterparties() {
		d, _ := set.Counterparty(name)
		s.ByCounterparty[nameHash("room", name)] = CounterpartySummary{
			DisplayName:    name,
			Count:          d.Count,
			Confidence:     d.Confidence,
			StyleDist:      roundMap(d.StyleDist, 3),
			ThinkDist:      roundMap(d.ThinkDist, 3),
			DiffFromGlobal: diffs[name],
			Top3Diff:       TopDiffs(diffs, name, topN),
		}
	}
	return s
}

func roundDistribution(d Distribution, places int) Distribution {
	return Distribution{
		Count:      d.Count,
		StyleDist:  roundMap(d.StyleDist, places),
		ThinkDist:  roundMap(d.ThinkDist, places),
		Confidence: d.Confidence,
	}
}

// nameHash produces a deterministic short identifier like "room_04217".
func nameHash(prefix, name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return fmt.Sprintf("%s_%05d", prefix, h.Sum32()%99999)
}
