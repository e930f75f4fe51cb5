package aggregate

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/models"
)

func TestSummaryCarriesNoRawContent(t *testing.T) {
	// a token that can only leak via message text
	const canary = "XZQWVK9CANARY"
	msgs := []models.Message{
		msg("alice", "ここに秘密の "+canary+" が含まれる", true),
		msg("alice", "ありがとう", true),
		msg("bob", canary, true),
	}
	set := Build(newEngine(), msgs)
	diffs := DiffFromGlobal(set)
	sum := BuildSummary(set, diffs, "山田", 3)

	b, err := json.Marshal(sum)
	if err != nil {
		t.Fatalf("marshal summary: %v", err)
	}
	if strings.Contains(string(b), canary) {
		t.Fatal("summary JSON leaked raw message content")
	}
	if sum.Meta.Note != "This JSON contains only aggregated statistics. No raw message content is included." {
		t.Errorf("note = %q", sum.Meta.Note)
	}
}

func TestSummaryHashesAreDeterministic(t *testing.T) {
	if nameHash("user", "山田") != nameHash("user", "山田") {
		t.Fatal("nameHash not deterministic")
	}
	h := nameHash("room", "alice")
	if !strings.HasPrefix(h, "room_") || len(h) != len("room_")+5 {
		t.Errorf("hash format = %q, want room_ plus 5 digits", h)
	}
}

func TestSummaryKeysAreHashed(t *testing.T) {
	set := Build(newEngine(), []models.Message{
		msg("alice", "了解です", true),
	})
	diffs := DiffFromGlobal(set)
	sum := BuildSummary(set, diffs, "me", 3)
	if len(sum.ByCounterparty) != 1 {
		t.Fatalf("by_counterparty size = %d, want 1", len(sum.ByCounterparty))
	}
	for key, entry := range sum.ByCounterparty {
		if !strings.HasPrefix(key, "room_") {
			t.Errorf("counterparty key %q not hashed", key)
		}
		if entry.DisplayName != "alice" {
			t.Errorf("display name = %q, want alice", entry.DisplayName)
		}
		if len(entry.Top3Diff) == 0 {
			t.Error("top diffs missing from summary entry")
		}
	}
}

func TestSummaryRounding(t *testing.T) {
	set := Build(newEngine(), []models.Message{
		msg("alice", "ありがとうございます", true),
		msg("alice", "なぜ?", true),
	})
	diffs := DiffFromGlobal(set)
	sum := BuildSummary(set, diffs, "me", 3)
	for l, v := range sum.Global.StyleDist {
		if r := round(v, 3); r != v {
			t.Errorf("global style[%s] = %v not rounded to 3 decimals", l, v)
		}
	}
}
