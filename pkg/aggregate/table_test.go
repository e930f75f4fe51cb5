package aggregate

import (
	"testing"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/classify"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/models"
)

func TestTablesShape(t *testing.T) {
	set := Build(newEngine(), []models.Message{
		msg("bob", "ありがとう", true),
		msg("alice", "了解です", true),
	})
	style, think := Tables(set)

	if len(style.Columns) != classify.NumCommAxes {
		t.Errorf("style columns = %d, want %d", len(style.Columns), classify.NumCommAxes)
	}
	if len(think.Columns) != int(classify.NumAxes)-classify.NumCommAxes {
		t.Errorf("think columns = %d, want %d", len(think.Columns), int(classify.NumAxes)-classify.NumCommAxes)
	}

	// global row first, then sorted counterparties
	wantRows := []string{GlobalKey, "alice", "bob"}
	if len(style.Rows) != len(wantRows) {
		t.Fatalf("style rows = %d, want %d", len(style.Rows), len(wantRows))
	}
	for i, w := range wantRows {
		if style.Rows[i].Counterparty != w {
			t.Errorf("row %d = %q, want %q", i, style.Rows[i].Counterparty, w)
		}
	}
	for _, row := range style.Rows {
		if len(row.Values) != classify.NumCommAxes {
			t.Errorf("row %q has %d values, want %d", row.Counterparty, len(row.Values), classify.NumCommAxes)
		}
	}
}
