package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/evtushenkodev/BeerCounter/internal/ledger"
	"github.com/evtushenkodev/BeerCounter/internal/ledger/dto"
	"github.com/evtushenkodev/BeerCounter/internal/model"
	"github.com/evtushenkodev/BeerCounter/pkg/logger"
)

// fakeRepo is an in-memory ledger.Repository with switchable failures.
type fakeRepo struct {
	items     map[string]model.Item
	movements []model.Movement
	state     map[string]string
	failWrite bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items: make(map[string]model.Item),
		state: make(map[string]string),
	}
}

var errWriteFailed = errors.New("disk on fire")

func (r *fakeRepo) LoadAll(ctx context.Context) ([]model.Item, error) {
	out := make([]model.Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeRepo) ReplaceAll(ctx context.Context, items []model.Item) error {
	if r.failWrite {
		return errWriteFailed
	}
	r.items = make(map[string]model.Item, len(items))
	for _, it := range items {
		r.items[it.Name] = it
	}
	return nil
}

func (r *fakeRepo) Upsert(ctx context.Context, item *model.Item) error {
	if r.failWrite {
		return errWriteFailed
	}
	r.items[item.Name] = *item
	return nil
}

func (r *fakeRepo) UpsertWithMovement(ctx context.Context, item *model.Item, movement *model.Movement) error {
	if r.failWrite {
		return errWriteFailed
	}
	r.items[item.Name] = *item
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *fakeRepo) ListMovements(ctx context.Context) ([]model.Movement, error) {
	return append([]model.Movement(nil), r.movements...), nil
}

func (r *fakeRepo) ClearMovements(ctx context.Context) error {
	if r.failWrite {
		return errWriteFailed
	}
	r.movements = nil
	return nil
}

func (r *fakeRepo) GetState(ctx context.Context, key string) (string, bool, error) {
	v, ok := r.state[key]
	return v, ok, nil
}

func (r *fakeRepo) SetState(ctx context.Context, key, value string) error {
	r.state[key] = value
	return nil
}

func newTestLedger(t *testing.T, repo ledger.Repository) ledger.UseCase {
	t.Helper()
	return NewLedgerUseCase(repo, logger.NewNop())
}

func mustLoad(t *testing.T, uc ledger.UseCase, items ...dto.ImportItem) {
	t.Helper()
	if err := uc.Load(context.Background(), items); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}

func TestLoadReplacesFully(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestLedger(t, repo)

	mustLoad(t, uc, dto.ImportItem{Name: "A", Quantity: 5}, dto.ImportItem{Name: "B", Quantity: 3})
	mustLoad(t, uc, dto.ImportItem{Name: "C", Quantity: 1})

	items := uc.List()
	if len(items) != 1 {
		t.Fatalf("expected 1 item after reload, got %d", len(items))
	}
	got := items[0]
	if got.Name != "C" || got.Quantity != 1 || got.Received != 0 || got.Sold != 0 {
		t.Errorf("unexpected item after reload: %+v", got)
	}
	if len(repo.items) != 1 {
		t.Errorf("store not rewritten, holds %d items", len(repo.items))
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		items []dto.ImportItem
	}{
		{"empty name", []dto.ImportItem{{Name: "", Quantity: 1}}},
		{"duplicate name", []dto.ImportItem{{Name: "A", Quantity: 1}, {Name: "A", Quantity: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestLedger(t, newFakeRepo())
			mustLoad(t, uc, dto.ImportItem{Name: "Existing", Quantity: 7})

			err := uc.Load(context.Background(), tt.items)
			var verr *ledger.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			// Failed load must leave the previous collection in place.
			if items := uc.List(); len(items) != 1 || items[0].Name != "Existing" {
				t.Errorf("collection changed after failed load: %+v", items)
			}
		})
	}
}

func TestApplyDeltaReceiptAndSale(t *testing.T) {
	uc := newTestLedger(t, newFakeRepo())
	mustLoad(t, uc, dto.ImportItem{Name: "X", Quantity: 10})

	item, err := uc.ApplyDelta(context.Background(), &dto.AdjustInput{Name: "X", NewQuantity: 15, IsReceipt: true})
	if err != nil {
		t.Fatalf("receipt failed: %v", err)
	}
	if item.Quantity != 15 || item.Received != 5 || item.Sold != 0 {
		t.Errorf("after receipt: %+v", item)
	}

	item, err = uc.ApplyDelta(context.Background(), &dto.AdjustInput{Name: "X", NewQuantity: 12, IsReceipt: false})
	if err != nil {
		t.Fatalf("sale failed: %v", err)
	}
	if item.Quantity != 12 || item.Received != 5 || item.Sold != 3 {
		t.Errorf("after sale: %+v", item)
	}
}

func TestSellInsufficientStockLeavesStateUnchanged(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestLedger(t, repo)
	mustLoad(t, uc, dto.ImportItem{Name: "X", Quantity: 2})

	if _, err := uc.Sell(context.Background(), "X", 5); !errors.Is(err, ledger.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	item, err := uc.Get("X")
	if err != nil {
		t.Fatal(err)
	}
	if item.Quantity != 2 || item.Received != 0 || item.Sold != 0 {
		t.Errorf("state changed by rejected sale: %+v", item)
	}
	if movements, _ := uc.Movements(context.Background()); len(movements) != 0 {
		t.Errorf("rejected sale logged a movement")
	}
}

func TestNegativeReceiptIsAllowedAsCorrection(t *testing.T) {
	uc := newTestLedger(t, newFakeRepo())
	mustLoad(t, uc, dto.ImportItem{Name: "X", Quantity: 10})

	if _, err := uc.Receive(context.Background(), "X", 5); err != nil {
		t.Fatal(err)
	}
	// The operator over-entered; a smaller receipt corrects it.
	item, err := uc.Receive(context.Background(), "X", -2)
	if err != nil {
		t.Fatalf("correction rejected: %v", err)
	}
	if item.Quantity != 13 || item.Received != 3 {
		t.Errorf("after correction: %+v", item)
	}
}

func TestReceiptBelowZeroRejected(t *testing.T) {
	uc := newTestLedger(t, newFakeRepo())
	mustLoad(t, uc, dto.ImportItem{Name: "X", Quantity: 1})

	_, err := uc.Receive(context.Background(), "X", -5)
	var verr *ledger.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAccumulatorInvariant(t *testing.T) {
	uc := newTestLedger(t, newFakeRepo())
	mustLoad(t, uc, dto.ImportItem{Name: "X", Quantity: 20})
	ctx := context.Background()

	start := 20.0
	ops := []struct {
		amount  float64
		receipt bool
	}{
		{5, true}, {3, false}, {1.5, false}, {2, true}, {-1, true}, {2, false},
	}
	for _, op := range ops {
		var err error
		if op.receipt {
			_, err = uc.Receive(ctx, "X", op.amount)
		} else {
			_, err = uc.Sell(ctx, "X", op.amount)
		}
		if err != nil {
			t.Fatalf("op %+v: %v", op, err)
		}
		item, _ := uc.Get("X")
		if diff := item.Received - item.Sold - (item.Quantity - start); diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("invariant broken after %+v: %+v", op, item)
		}
	}
}

func TestResetShiftAccumulatorsIdempotent(t *testing.T) {
	uc := newTestLedger(t, newFakeRepo())
	mustLoad(t, uc, dto.ImportItem{Name: "X", Quantity: 10})
	ctx := context.Background()

	if _, err := uc.Receive(ctx, "X", 4); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := uc.ResetShiftAccumulators(ctx); err != nil {
			t.Fatalf("reset %d: %v", i+1, err)
		}
		item, _ := uc.Get("X")
		if item.Quantity != 14 || item.Received != 0 || item.Sold != 0 {
			t.Errorf("after reset %d: %+v", i+1, item)
		}
	}
	if movements, _ := uc.Movements(ctx); len(movements) != 0 {
		t.Errorf("reset kept movements")
	}
}

func TestSnapshotAndOrder(t *testing.T) {
	uc := newTestLedger(t, newFakeRepo())
	mustLoad(t, uc,
		dto.ImportItem{Name: "Lager", Quantity: 4},
		dto.ImportItem{Name: "Ale", Quantity: 10},
		dto.ImportItem{Name: "Stout", Quantity: 7},
	)

	items := uc.List()
	want := []string{"Lager", "Ale", "Stout"}
	for i, name := range want {
		if items[i].Name != name {
			t.Fatalf("iteration order broken: got %v", items)
		}
	}

	snap := uc.Snapshot()
	if len(snap) != 3 || snap["Ale"] != 10 {
		t.Errorf("unexpected snapshot: %v", snap)
	}
}

func TestOnItemChangedFires(t *testing.T) {
	uc := newTestLedger(t, newFakeRepo())
	mustLoad(t, uc, dto.ImportItem{Name: "X", Quantity: 10})

	var seen []model.Item
	uc.OnItemChanged(func(it model.Item) { seen = append(seen, it) })

	if _, err := uc.Receive(context.Background(), "X", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Sell(context.Background(), "X", 100); err == nil {
		t.Fatal("expected rejected sale")
	}

	if len(seen) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(seen))
	}
	if seen[0].Quantity != 12 {
		t.Errorf("notification carries stale state: %+v", seen[0])
	}
}

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestLedger(t, repo)
	mustLoad(t, uc, dto.ImportItem{Name: "X", Quantity: 10})

	repo.failWrite = true
	item, err := uc.Receive(context.Background(), "X", 5)
	if !errors.Is(err, ledger.ErrPersistFailed) {
		t.Fatalf("expected ErrPersistFailed, got %v", err)
	}
	if item == nil || item.Quantity != 15 {
		t.Fatalf("updated item not returned alongside the error: %+v", item)
	}

	// In-memory state holds the change; a retry of the same write
	// reconciles the store.
	repo.failWrite = false
	if got, _ := uc.Get("X"); got.Quantity != 15 || got.Received != 5 {
		t.Errorf("in-memory state rolled back: %+v", got)
	}
	if _, err := uc.Receive(context.Background(), "X", 0); err != nil {
		t.Fatalf("retry write failed: %v", err)
	}
	if stored := repo.items["X"]; stored.Quantity != 15 {
		t.Errorf("store not reconciled: %+v", stored)
	}
}

func TestSellNegativeAmountRejected(t *testing.T) {
	uc := newTestLedger(t, newFakeRepo())
	mustLoad(t, uc, dto.ImportItem{Name: "X", Quantity: 10})

	_, err := uc.Sell(context.Background(), "X", -1)
	var verr *ledger.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAdjustUnknownItem(t *testing.T) {
	uc := newTestLedger(t, newFakeRepo())
	if _, err := uc.Receive(context.Background(), "Ghost", 1); !errors.Is(err, ledger.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRestoreFromStore(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestLedger(t, repo)
	mustLoad(t, uc, dto.ImportItem{Name: "X", Quantity: 10})
	if _, err := uc.Receive(context.Background(), "X", 2); err != nil {
		t.Fatal(err)
	}

	// A fresh process sees the persisted mirror.
	restored := newTestLedger(t, repo)
	if err := restored.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	item, err := restored.Get("X")
	if err != nil {
		t.Fatal(err)
	}
	if item.Quantity != 12 || item.Received != 2 {
		t.Errorf("restored state wrong: %+v", item)
	}
}
