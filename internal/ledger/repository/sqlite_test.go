package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/evtushenkodev/BeerCounter/internal/model"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "beer_data.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteRepository(db)
}

func testItem(name string, position int, quantity float64) model.Item {
	return model.Item{
		Name:      name,
		Quantity:  quantity,
		Position:  position,
		UpdatedAt: time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
	}
}

func TestLoadAllEmpty(t *testing.T) {
	repo := newTestRepo(t)
	items, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("fresh database holds items: %+v", items)
	}
}

func TestReplaceAllAndLoadAllKeepOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := []model.Item{testItem("B", 0, 2), testItem("A", 1, 5)}
	if err := repo.ReplaceAll(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := []model.Item{testItem("C", 0, 1)}
	if err := repo.ReplaceAll(ctx, second); err != nil {
		t.Fatal(err)
	}

	items, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Name != "C" || items[0].Quantity != 1 {
		t.Errorf("items = %+v", items)
	}
}

func TestUpsertInsertsAndUpdates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	it := testItem("X", 0, 10)
	if err := repo.Upsert(ctx, &it); err != nil {
		t.Fatal(err)
	}
	it.Quantity = 12.5
	it.Sold = 2.5
	if err := repo.Upsert(ctx, &it); err != nil {
		t.Fatal(err)
	}

	items, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Quantity != 12.5 || items[0].Sold != 2.5 {
		t.Errorf("updated row = %+v", items[0])
	}
}

func TestUpsertWithMovement(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	it := testItem("X", 0, 15)
	it.Received = 5
	movement := model.Movement{
		ID:             "m-1",
		ItemName:       "X",
		Kind:           model.MovementReceipt,
		QuantityChange: 5,
		QuantityBefore: 10,
		QuantityAfter:  15,
		CreatedAt:      time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC),
	}
	if err := repo.UpsertWithMovement(ctx, &it, &movement); err != nil {
		t.Fatal(err)
	}

	movements, err := repo.ListMovements(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(movements) != 1 {
		t.Fatalf("movements = %+v", movements)
	}
	got := movements[0]
	if got.ItemName != "X" || got.Kind != model.MovementReceipt || got.QuantityAfter != 15 {
		t.Errorf("movement = %+v", got)
	}

	if err := repo.ClearMovements(ctx); err != nil {
		t.Fatal(err)
	}
	if movements, _ = repo.ListMovements(ctx); len(movements) != 0 {
		t.Errorf("movements survive clear: %+v", movements)
	}
}

func TestStateRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, ok, err := repo.GetState(ctx, "shift_open"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := repo.SetState(ctx, "shift_open", "1"); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetState(ctx, "shift_open", "0"); err != nil {
		t.Fatal(err)
	}

	value, ok, err := repo.GetState(ctx, "shift_open")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || value != "0" {
		t.Errorf("value=%q ok=%v", value, ok)
	}
}
