package aggregate

import (
	"math"
	"testing"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/classify"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/models"
)

func newEngine() *classify.Engine {
	return classify.New(classify.ModeWeightedAxis, nil)
}

func msg(counterparty, text string, self bool) models.Message {
	return models.Message{Counterparty: counterparty, Text: text, IsSelf: self, Speaker: "me"}
}

func TestBuildEmptyCorpus(t *testing.T) {
	set := Build(newEngine(), nil)
	g := set.Global()
	if g.Count != 0 || g.Confidence != 0 {
		t.Fatalf("empty corpus global = %+v, want zero count and confidence", g)
	}
	if len(g.StyleDist) != classify.NumCommAxes {
		t.Errorf("style dist has %d keys, want %d", len(g.StyleDist), classify.NumCommAxes)
	}
	for l, v := range g.StyleDist {
		if v != 0 {
			t.Errorf("style[%s] = %v, want 0", l, v)
		}
	}
	for l, v := range g.ThinkDist {
		if v != 0 {
			t.Errorf("think[%s] = %v, want 0", l, v)
		}
	}
	if len(set.Counterparties()) != 0 {
		t.Errorf("empty corpus has counterparties: %v", set.Counterparties())
	}
}

func TestBuildIgnoresNonSelfMessages(t *testing.T) {
	set := Build(newEngine(), []models.Message{
		msg("alice", "了解です", true),
		msg("alice", "このメッセージは相手のもの", false),
	})
	d, ok := set.Counterparty("alice")
	if !ok {
		t.Fatal("alice missing from set")
	}
	if d.Count != 1 {
		t.Errorf("alice count = %d, want 1 (only self messages)", d.Count)
	}
	if set.Global().Count != 1 {
		t.Errorf("global count = %d, want 1", set.Global().Count)
	}
}

func TestBuildGroupsByCounterparty(t *testing.T) {
	set := Build(newEngine(), []models.Message{
		msg("alice", "まず結論から整理します", true),
		msg("alice", "なぜそうなった?", true),
		msg("bob", "ありがとう、助かる", true),
	})
	names := set.Counterparties()
	if len(names) != 2 || names[0] != "alice" || names[1] != "bob" {
		t.Fatalf("counterparties = %v, want [alice bob]", names)
	}
	if d, _ := set.Counterparty("alice"); d.Count != 2 {
		t.Errorf("alice count = %d, want 2", d.Count)
	}
	if set.Global().Count != 3 {
		t.Errorf("global count = %d, want 3", set.Global().Count)
	}
}

func TestFlattenGlobalCollision(t *testing.T) {
	set := Build(newEngine(), []models.Message{
		msg("global", "了解です", true),
		msg("alice", "ありがとう", true),
	})
	flat := set.Flatten()
	if _, ok := flat["global#counterparty"]; !ok {
		t.Fatal("counterparty named global must be kept under global#counterparty")
	}
	if flat[GlobalKey].Count != 2 {
		t.Errorf("flattened global count = %d, want the aggregate 2", flat[GlobalKey].Count)
	}
}

func TestDiffSymmetry(t *testing.T) {
	set := Build(newEngine(), []models.Message{
		msg("alice", "まず結論から整理します", true),
		msg("alice", "リスクが心配", true),
		msg("bob", "ありがとう、助かる!", true),
		msg("bob", "うん", true),
	})
	diffs := DiffFromGlobal(set)
	g := set.Global()
	for name, ds := range diffs {
		d, _ := set.Counterparty(name)
		for l, diff := range ds.StyleDiff {
			want := d.StyleDist[l] - g.StyleDist[l]
			if math.Abs(diff-want) > 1e-6 {
				t.Errorf("%s style diff %s = %v, want %v", name, l, diff, want)
			}
		}
		for l, diff := range ds.ThinkDiff {
			want := d.ThinkDist[l] - g.ThinkDist[l]
			if math.Abs(diff-want) > 1e-6 {
				t.Errorf("%s think diff %s = %v, want %v", name, l, diff, want)
			}
		}
	}
}

func TestTopDiffsOrderingAndDefaults(t *testing.T) {
	diffs := map[string]DiffSet{
		"alice": {
			StyleDiff: map[string]float64{"Brevity": 0.2, "Collaboration": -0.5},
			ThinkDiff: map[string]float64{"Risk_Awareness": 0.3},
		},
	}
	top := TopDiffs(diffs, "alice", 2)
	if len(top) != 2 {
		t.Fatalf("len(top) = %d, want 2", len(top))
	}
	if top[0].Label != "Collaboration" || top[1].Label != "Risk_Awareness" {
		t.Errorf("top order = %v, want Collaboration then Risk_Awareness", top)
	}
	if top[0].Kind != "comm" || top[1].Kind != "think" {
		t.Errorf("kinds = %q,%q", top[0].Kind, top[1].Kind)
	}

	// n <= 0 selects the default of 3
	if got := TopDiffs(diffs, "alice", 0); len(got) != 3 {
		t.Errorf("default top length = %d, want 3", len(got))
	}
	// unknown counterparty yields empty, not nil panic
	if got := TopDiffs(diffs, "nobody", 3); len(got) != 0 {
		t.Errorf("unknown counterparty top = %v, want empty", got)
	}
}

func TestDistributionValuesRounded(t *testing.T) {
	set := Build(newEngine(), []models.Message{
		msg("alice", "ありがとうございます", true),
		msg("alice", "なぜ?", true),
		msg("alice", "了解", true),
	})
	d, _ := set.Counterparty("alice")
	for l, v := range d.StyleDist {
		if r := round(v, 4); r != v {
			t.Errorf("style[%s] = %v not rounded to 4 decimals", l, v)
		}
	}
}
