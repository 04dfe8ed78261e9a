package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/genius-board/internal/model"
)

// Store is a local SQLite read-cache. It keeps the last-fetched master
// data and board snapshot so the UI has something to render while the
// first fetch of a session is still in flight. The backend stays
// authoritative; nothing is ever written back from here.
type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the cache database at dbPath, enables WAL
// mode, and runs any pending schema migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *Store) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// PutMasterData stores the latest reference collections, replacing any
// previous copy.
func (s *Store) PutMasterData(ctx context.Context, data *model.MasterData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling master data: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO master_data (id, payload, fetched_at)
		VALUES (1, ?, ?)`,
		string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("caching master data: %w", err)
	}

	return nil
}

// GetMasterData returns the cached reference collections, or nil when
// the cache is empty.
func (s *Store) GetMasterData(ctx context.Context) (*model.MasterData, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload,
		"SELECT payload FROM master_data WHERE id = 1",
	)
	if err != nil {
		// An empty cache is not an error; the caller falls through
		// to a network fetch.
		return nil, nil
	}

	var data model.MasterData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("unmarshaling cached master data: %w", err)
	}

	return &data, nil
}

// PutSnapshot stores a board snapshot keyed by the board filter it was
// fetched under. Only the newest snapshot per board is kept.
func (s *Store) PutSnapshot(ctx context.Context, board string, cards []model.Card) error {
	payload, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM board_snapshots WHERE board = ?", board,
	); err != nil {
		return fmt.Errorf("dropping stale snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO board_snapshots (id, board, payload, fetched_at)
		VALUES (?, ?, ?, ?)`,
		uuid.New().String(), board, string(payload), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("caching snapshot: %w", err)
	}

	return tx.Commit()
}

// GetSnapshot returns the cached card list for a board filter, or nil
// when nothing is cached.
func (s *Store) GetSnapshot(ctx context.Context, board string) ([]model.Card, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload,
		"SELECT payload FROM board_snapshots WHERE board = ?", board,
	)
	if err != nil {
		return nil, nil
	}

	var cards []model.Card
	if err := json.Unmarshal([]byte(payload), &cards); err != nil {
		return nil, fmt.Errorf("unmarshaling cached snapshot: %w", err)
	}

	return cards, nil
}
