package ledger

import (
	"context"

	"github.com/evtushenkodev/BeerCounter/internal/model"
)

type Repository interface {
	// Items
	LoadAll(ctx context.Context) ([]model.Item, error)
	ReplaceAll(ctx context.Context, items []model.Item) error
	Upsert(ctx context.Context, item *model.Item) error

	// Movements / Audit
	UpsertWithMovement(ctx context.Context, item *model.Item, movement *model.Movement) error
	ListMovements(ctx context.Context) ([]model.Movement, error)
	ClearMovements(ctx context.Context) error

	// Application state (shift flag, opening snapshot)
	GetState(ctx context.Context, key string) (string, bool, error)
	SetState(ctx context.Context, key, value string) error
}
