// Package report turns ledger state plus the shift's opening snapshot
// into the rows and totals of the reconciliation export.
package report

import "github.com/evtushenkodev/BeerCounter/internal/model"

// Build produces one row per item in ledger order and the summed totals.
// Received and sold come straight from the accumulators; the snapshot
// only feeds the per-row difference (items first seen mid-shift count
// from a zero opening).
func Build(items []model.Item, opening map[string]float64) ([]model.ReconciliationRow, model.ReconciliationTotals) {
	rows := make([]model.ReconciliationRow, 0, len(items))
	var totals model.ReconciliationTotals

	for _, it := range items {
		row := model.ReconciliationRow{
			Name:       it.Name,
			EndAmount:  it.Quantity,
			Received:   it.Received,
			Sold:       it.Sold,
			Difference: it.Quantity - opening[it.Name],
		}
		rows = append(rows, row)

		totals.EndAmount += row.EndAmount
		totals.Received += row.Received
		totals.Sold += row.Sold
	}
	return rows, totals
}
