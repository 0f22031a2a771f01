package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evtushenkodev/BeerCounter/internal/ledger"
	"github.com/evtushenkodev/BeerCounter/internal/model"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func init() {
	// The modernc driver registers as "sqlite", which sqlx does not
	// know a bindvar type for out of the box.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

const schema = `
CREATE TABLE IF NOT EXISTS items (
    name        TEXT PRIMARY KEY,
    quantity    REAL NOT NULL,
    received    REAL NOT NULL DEFAULT 0,
    sold        REAL NOT NULL DEFAULT 0,
    position    INTEGER NOT NULL,
    updated_at  TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS movements (
    id              TEXT PRIMARY KEY,
    item_name       TEXT NOT NULL,
    kind            TEXT NOT NULL,
    quantity_change REAL NOT NULL,
    quantity_before REAL NOT NULL,
    quantity_after  REAL NOT NULL,
    note            TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS app_state (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

// Open connects to the sqlite database file, creating it and the schema
// on first use.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// A single writer keeps sqlite happy and matches the serialized
	// mutation model.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

var _ ledger.Repository = (*SQLiteRepository)(nil)

func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.DB.SelectContext(ctx, &items, `SELECT * FROM items ORDER BY position`)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []model.Item) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	for i := range items {
		if _, err := tx.NamedExecContext(ctx, insertItemQuery, &items[i]); err != nil {
			return fmt.Errorf("insert item %q: %w", items[i].Name, err)
		}
	}
	return tx.Commit()
}

const insertItemQuery = `
    INSERT INTO items (name, quantity, received, sold, position, updated_at)
    VALUES (:name, :quantity, :received, :sold, :position, :updated_at)
    ON CONFLICT (name)
    DO UPDATE SET
        quantity   = excluded.quantity,
        received   = excluded.received,
        sold       = excluded.sold,
        position   = excluded.position,
        updated_at = excluded.updated_at`

func (r *SQLiteRepository) Upsert(ctx context.Context, item *model.Item) error {
	_, err := r.DB.NamedExecContext(ctx, insertItemQuery, item)
	return err
}

const insertMovementQuery = `
    INSERT INTO movements (
        id, item_name, kind, quantity_change, quantity_before,
        quantity_after, note, created_at
    )
    VALUES (
        :id, :item_name, :kind, :quantity_change, :quantity_before,
        :quantity_after, :note, :created_at
    )`

// UpsertWithMovement writes the adjusted row and its audit record in one
// transaction so the store never holds one without the other.
func (r *SQLiteRepository) UpsertWithMovement(ctx context.Context, item *model.Item, movement *model.Movement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, insertItemQuery, item); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, insertMovementQuery, movement); err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}
	return tx.Commit()
}

func (r *SQLiteRepository) ListMovements(ctx context.Context) ([]model.Movement, error) {
	var movements []model.Movement
	err := r.DB.SelectContext(ctx, &movements, `SELECT * FROM movements ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *SQLiteRepository) ClearMovements(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM movements`)
	return err
}

func (r *SQLiteRepository) GetState(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.DB.GetContext(ctx, &value, `SELECT value FROM app_state WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *SQLiteRepository) SetState(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO app_state (key, value) VALUES (?, ?)
        ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}
