package model

import "time"

// Item is one tracked tap position: the current on-hand amount in liters
// plus the receipts and sales accumulated since the current shift opened.
type Item struct {
	Name      string    `db:"name"`
	Quantity  float64   `db:"quantity"`
	Received  float64   `db:"received"`
	Sold      float64   `db:"sold"`
	Position  int       `db:"position"`
	UpdatedAt time.Time `db:"updated_at"`
}

type MovementKind string

const (
	MovementReceipt MovementKind = "receipt"
	MovementSale    MovementKind = "sale"
)

// Movement is the audit record of one accepted quantity adjustment.
// The log covers the current shift only and is cleared on shift open.
type Movement struct {
	ID             string       `db:"id"`
	ItemName       string       `db:"item_name"`
	Kind           MovementKind `db:"kind"`
	QuantityChange float64      `db:"quantity_change"`
	QuantityBefore float64      `db:"quantity_before"`
	QuantityAfter  float64      `db:"quantity_after"`
	Note           string       `db:"note"`
	CreatedAt      time.Time    `db:"created_at"`
}
