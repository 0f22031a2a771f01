package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/evtushenkodev/BeerCounter/internal/ledger"
	"github.com/evtushenkodev/BeerCounter/internal/ledger/dto"
	"github.com/evtushenkodev/BeerCounter/internal/model"
	"github.com/evtushenkodev/BeerCounter/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ledgerUseCase owns the live item collection. A single mutex serializes
// every mutation; the expected event rate is one dialog commit at a time,
// so per-item locking would buy nothing.
type ledgerUseCase struct {
	mu      sync.Mutex
	items   []*model.Item
	index   map[string]*model.Item
	repo    ledger.Repository
	logger  logger.ZapLogger
	onItem  []func(model.Item)
	nowFunc func() time.Time
}

func NewLedgerUseCase(repo ledger.Repository, log logger.ZapLogger) ledger.UseCase {
	return &ledgerUseCase{
		index:   make(map[string]*model.Item),
		repo:    repo,
		logger:  log,
		nowFunc: time.Now,
	}
}

var _ ledger.UseCase = (*ledgerUseCase)(nil)

func (uc *ledgerUseCase) Restore(ctx context.Context) error {
	items, err := uc.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.items = uc.items[:0]
	uc.index = make(map[string]*model.Item, len(items))
	for i := range items {
		it := items[i]
		uc.items = append(uc.items, &it)
		uc.index[it.Name] = &it
	}
	return nil
}

func (uc *ledgerUseCase) Load(ctx context.Context, imports []dto.ImportItem) error {
	// 1. Validate before touching anything.
	seen := make(map[string]struct{}, len(imports))
	for _, in := range imports {
		if in.Name == "" {
			return ledger.Validationf("item with empty name")
		}
		if _, dup := seen[in.Name]; dup {
			return ledger.Validationf("duplicate item %q", in.Name)
		}
		seen[in.Name] = struct{}{}
	}

	now := uc.nowFunc()
	fresh := make([]*model.Item, 0, len(imports))
	for i, in := range imports {
		fresh = append(fresh, &model.Item{
			Name:      in.Name,
			Quantity:  in.Quantity,
			Position:  i,
			UpdatedAt: now,
		})
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	// 2. Replace the collection wholesale.
	uc.items = fresh
	uc.index = make(map[string]*model.Item, len(fresh))
	rows := make([]model.Item, 0, len(fresh))
	for _, it := range fresh {
		uc.index[it.Name] = it
		rows = append(rows, *it)
	}

	// 3. Write-through.
	if err := uc.repo.ReplaceAll(ctx, rows); err != nil {
		uc.logger.Error("failed to rewrite inventory store", zap.Error(err))
		return fmt.Errorf("%w: replace all: %v", ledger.ErrPersistFailed, err)
	}
	uc.logger.Info("inventory loaded", zap.Int("items", len(rows)))
	return nil
}

func (uc *ledgerUseCase) ApplyDelta(ctx context.Context, input *dto.AdjustInput) (*model.Item, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	it, ok := uc.index[input.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ledger.ErrItemNotFound, input.Name)
	}

	// 1. Reject before mutating. A sale below zero is the stock guard;
	// a receipt below zero violates the non-negativity invariant.
	if input.NewQuantity < 0 {
		if !input.IsReceipt {
			return nil, fmt.Errorf("%w: %q has %.1f", ledger.ErrInsufficientStock, it.Name, it.Quantity)
		}
		return nil, ledger.Validationf("quantity for %q would become negative", it.Name)
	}

	// 2. Book the delta. Receipt corrections may carry any sign.
	before := it.Quantity
	kind := model.MovementSale
	if input.IsReceipt {
		it.Received += input.NewQuantity - before
		kind = model.MovementReceipt
	} else {
		it.Sold += before - input.NewQuantity
	}
	it.Quantity = input.NewQuantity
	it.UpdatedAt = uc.nowFunc()

	movement := &model.Movement{
		ID:             uuid.New().String(),
		ItemName:       it.Name,
		Kind:           kind,
		QuantityChange: it.Quantity - before,
		QuantityBefore: before,
		QuantityAfter:  it.Quantity,
		Note:           input.Note,
		CreatedAt:      it.UpdatedAt,
	}

	cp := *it
	uc.notify(cp)

	// 3. Write-through. On failure the in-memory state stays
	// authoritative and the updated item is returned with the error.
	if err := uc.repo.UpsertWithMovement(ctx, &cp, movement); err != nil {
		uc.logger.Error("failed to persist item", zap.String("name", it.Name), zap.Error(err))
		return &cp, fmt.Errorf("%w: upsert %q: %v", ledger.ErrPersistFailed, it.Name, err)
	}
	return &cp, nil
}

func (uc *ledgerUseCase) Receive(ctx context.Context, name string, amount float64) (*model.Item, error) {
	q, err := uc.quantityOf(name)
	if err != nil {
		return nil, err
	}
	return uc.ApplyDelta(ctx, &dto.AdjustInput{
		Name:        name,
		NewQuantity: q + amount,
		IsReceipt:   true,
	})
}

func (uc *ledgerUseCase) Sell(ctx context.Context, name string, amount float64) (*model.Item, error) {
	if amount < 0 {
		return nil, ledger.Validationf("sale amount must not be negative")
	}
	q, err := uc.quantityOf(name)
	if err != nil {
		return nil, err
	}
	return uc.ApplyDelta(ctx, &dto.AdjustInput{
		Name:        name,
		NewQuantity: q - amount,
		IsReceipt:   false,
	})
}

func (uc *ledgerUseCase) quantityOf(name string) (float64, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	it, ok := uc.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ledger.ErrItemNotFound, name)
	}
	return it.Quantity, nil
}

func (uc *ledgerUseCase) Get(name string) (*model.Item, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	it, ok := uc.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ledger.ErrItemNotFound, name)
	}
	cp := *it
	return &cp, nil
}

func (uc *ledgerUseCase) List() []model.Item {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]model.Item, 0, len(uc.items))
	for _, it := range uc.items {
		out = append(out, *it)
	}
	return out
}

func (uc *ledgerUseCase) Movements(ctx context.Context) ([]model.Movement, error) {
	return uc.repo.ListMovements(ctx)
}

func (uc *ledgerUseCase) ResetShiftAccumulators(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.nowFunc()
	rows := make([]model.Item, 0, len(uc.items))
	for _, it := range uc.items {
		it.Received = 0
		it.Sold = 0
		it.UpdatedAt = now
		rows = append(rows, *it)
	}

	if err := uc.repo.ReplaceAll(ctx, rows); err != nil {
		uc.logger.Error("failed to persist accumulator reset", zap.Error(err))
		return fmt.Errorf("%w: reset accumulators: %v", ledger.ErrPersistFailed, err)
	}
	if err := uc.repo.ClearMovements(ctx); err != nil {
		return fmt.Errorf("%w: clear movements: %v", ledger.ErrPersistFailed, err)
	}
	return nil
}

func (uc *ledgerUseCase) Snapshot() map[string]float64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	snap := make(map[string]float64, len(uc.items))
	for _, it := range uc.items {
		snap[it.Name] = it.Quantity
	}
	return snap
}

func (uc *ledgerUseCase) OnItemChanged(fn func(model.Item)) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.onItem = append(uc.onItem, fn)
}

func (uc *ledgerUseCase) notify(it model.Item) {
	for _, fn := range uc.onItem {
		fn(it)
	}
}
