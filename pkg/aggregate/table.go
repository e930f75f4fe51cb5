package aggregate

import "github.com/itoken5577-cpun/zenbu-jibun/pkg/classify"

// Table is a flat row/column view of one axis group for charting clients.
// This is a reshaping adapter only; no scoring logic lives here.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// TableRow is one group's values in column order.
type TableRow struct {
	Counterparty string             `json:"counterparty"`
	Count        int                `json:"count"`
	Values       map[string]float64 `json:"values"`
}

// Tables reshapes a distribution set into one table per axis group, the
// global row first and counterparties in sorted order.
func Tables(set *DistributionSet) (style Table, think Table) {
	style.Columns = classify.CommLabels()
	think.Columns = classify.ThinkLabels()

	appendRows := func(name string, d Distribution) {
		style.Rows = append(style.Rows, TableRow{Counterparty: name, Count: d.Count, Values: d.StyleDist})
		think.Rows = append(think.Rows, TableRow{Counterparty: name, Count: d.Count, Values: d.ThinkDist})
	}
	appendRows(GlobalKey, set.Global())
	for _, name := range set.Counterparties() {
		d, _ := set.Counterparty(name)
		appendRows(name, d)
	}
	return style, think
}
