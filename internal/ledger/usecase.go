package ledger

import (
	"context"

	"github.com/evtushenkodev/BeerCounter/internal/ledger/dto"
	"github.com/evtushenkodev/BeerCounter/internal/model"
)

type UseCase interface {
	// Restore fills the ledger from the durable store at startup. An
	// empty or missing table is a "no data" condition, not an error.
	Restore(ctx context.Context) error
	// Load replaces the whole collection from an import. Accumulators
	// start at zero and the durable store is rewritten.
	Load(ctx context.Context, items []dto.ImportItem) error
	// ApplyDelta moves one item to an absolute quantity, booking the
	// difference as a receipt or a sale.
	ApplyDelta(ctx context.Context, input *dto.AdjustInput) (*model.Item, error)
	// Receive and Sell are amount-based shorthands over ApplyDelta.
	Receive(ctx context.Context, name string, amount float64) (*model.Item, error)
	Sell(ctx context.Context, name string, amount float64) (*model.Item, error)

	Get(name string) (*model.Item, error)
	List() []model.Item
	Movements(ctx context.Context) ([]model.Movement, error)

	// ResetShiftAccumulators zeroes received/sold on every item and
	// clears the movement log. Quantities are untouched.
	ResetShiftAccumulators(ctx context.Context) error
	// Snapshot returns the current name -> quantity mapping.
	Snapshot() map[string]float64

	// OnItemChanged registers a callback invoked after every accepted
	// mutation. The callback must not call back into the ledger.
	OnItemChanged(fn func(model.Item))
}
