package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/xob0t/boothframe/pkg/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	id TEXT PRIMARY KEY,
	name TEXT,
	media_type TEXT,
	size INTEGER,
	data BLOB,
	created_at INTEGER
);`

type sqliteStore struct {
	db *sql.DB
}

// NewStore opens (or creates) the database and its assets table.
func NewStore(dataSourceName string) (*sqliteStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create assets table: %w", err)
	}
	return &sqliteStore{db}, nil
}

// Close releases the database handle.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) Put(ctx context.Context, asset *store.Asset) (string, error) {
	store.Prepare(asset, time.Now())
	log := logrus.WithFields(logrus.Fields{
		"asset_id":    asset.ID,
		"data_length": asset.Size,
	})

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO assets (id, name, media_type, size, data, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		asset.ID, asset.Name, asset.MediaType, asset.Size, asset.Data, asset.CreatedAt.UnixNano())
	if err != nil {
		log.WithError(err).Error("Failed to create asset")
		return "", fmt.Errorf("insert asset: %w", err)
	}
	log.Info("Asset created successfully")
	return asset.ID, nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*store.Asset, error) {
	var (
		a       store.Asset
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, media_type, size, data, created_at FROM assets WHERE id = ?", id).
		Scan(&a.ID, &a.Name, &a.MediaType, &a.Size, &a.Data, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logrus.WithField("asset_id", id).Warn("Asset with specified ID not found")
			return nil, fmt.Errorf("asset %s: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("select asset: %w", err)
	}
	a.CreatedAt = time.Unix(0, created).UTC()
	return &a, nil
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM assets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("asset %s: %w", id, store.ErrNotFound)
	}
	logrus.WithField("asset_id", id).Info("Asset deleted successfully")
	return nil
}

func (s *sqliteStore) List(ctx context.Context) ([]*store.Asset, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, media_type, size, created_at FROM assets ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	out := []*store.Asset{}
	for rows.Next() {
		var (
			a       store.Asset
			created int64
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.MediaType, &a.Size, &created); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		a.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, &a)
	}
	return out, rows.Err()
}
