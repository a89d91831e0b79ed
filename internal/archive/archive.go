// Package archive persists inventory snapshots. The inventory store itself
// is session-local; the archive saves a snapshot on shutdown and restores it
// on startup, when the user has opted into a database file.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Rockhound-GO/Attic-Inventory/internal/domain"
)

// Snapshot is the full persisted inventory state.
type Snapshot struct {
	Items      []domain.Item
	Categories []string
}

// Archive reads and writes snapshots through a migrated database handle.
type Archive struct {
	db     *sql.DB
	logger *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Archive {
	return &Archive{db: db, logger: logger}
}

// Save replaces the stored snapshot with snap in one transaction.
func (a *Archive) Save(ctx context.Context, snap Snapshot) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			a.logger.Error("failed to roll back snapshot transaction", "error", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	for _, name := range snap.Categories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("failed to insert category %q: %w", name, err)
		}
	}

	for _, item := range snap.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO items (id, name, category, value, history, photo, created_at, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, item.ID, item.Name, item.Category, item.Value, item.History, item.Photo, item.CreatedAt, string(item.Status))
		if err != nil {
			return fmt.Errorf("failed to insert item %d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	a.logger.Info("snapshot saved", "items", len(snap.Items), "categories", len(snap.Categories))
	return nil
}

// Load reads the stored snapshot. An empty database yields an empty snapshot,
// not an error.
func (a *Archive) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	rows, err := a.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY name ASC`)
	if err != nil {
		return snap, fmt.Errorf("failed to load categories: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			a.logger.Error("failed to close rows", "error", err)
		}
	}()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return snap, fmt.Errorf("failed to scan category: %w", err)
		}
		snap.Categories = append(snap.Categories, name)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("error iterating categories: %w", err)
	}

	itemRows, err := a.db.QueryContext(ctx, `
		SELECT id, name, category, value, history, photo, created_at, status
		FROM items ORDER BY id ASC
	`)
	if err != nil {
		return snap, fmt.Errorf("failed to load items: %w", err)
	}
	defer func() {
		if err := itemRows.Close(); err != nil {
			a.logger.Error("failed to close rows", "error", err)
		}
	}()

	for itemRows.Next() {
		var item domain.Item
		var status string
		if err := itemRows.Scan(&item.ID, &item.Name, &item.Category, &item.Value,
			&item.History, &item.Photo, &item.CreatedAt, &status); err != nil {
			return snap, fmt.Errorf("failed to scan item: %w", err)
		}
		item.Status = domain.Status(status)
		snap.Items = append(snap.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return snap, fmt.Errorf("error iterating items: %w", err)
	}

	return snap, nil
}
