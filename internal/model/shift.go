package model

type ShiftState string

const (
	ShiftClosed ShiftState = "closed"
	ShiftOpen   ShiftState = "open"
)

// ReconciliationRow is one exported line of the end-of-shift report.
// Difference is the change against the opening snapshot; it is computed
// for every row but the export format does not include it.
type ReconciliationRow struct {
	Name       string
	EndAmount  float64
	Received   float64
	Sold       float64
	Difference float64
}

type ReconciliationTotals struct {
	EndAmount float64
	Received  float64
	Sold      float64
}
