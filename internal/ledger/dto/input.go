package dto

// ImportItem is one (name, quantity) pair from a spreadsheet import.
type ImportItem struct {
	Name     string
	Quantity float64
}

// AdjustInput targets an absolute quantity for one item. IsReceipt
// decides whether the delta is booked as received or sold.
type AdjustInput struct {
	Name        string
	NewQuantity float64
	IsReceipt   bool
	Note        string
}
