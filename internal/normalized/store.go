package normalized

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Config mirrors the connection-pool knobs the rest of the codebase
// exposes for its own sqlite-backed stores.
type Config struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// Store is the downstream database consumed by the rest of the product:
// one process-wide *sql.DB shared by every source's poller worker,
// holding the trigger snapshot, item projection, and event log for all
// configured sources.
type Store struct {
	db *sql.DB
}

// Open creates the schema if absent and returns a ready Store.
func Open(cfg Config) (*Store, error) {
	dbDir := filepath.Dir(cfg.DSN)
	if dbDir != "." && dbDir != "" {
		if _, err := os.Stat(dbDir); os.IsNotExist(err) {
			if err := os.MkdirAll(dbDir, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("normalized: initialize schema: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.MaxIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying connection pool, for callers that need a
// read-only query this package does not otherwise expose.
func (s *Store) DB() *sql.DB {
	return s.db
}

// SetTriggerList replaces the trigger snapshot for sourceID with rows,
// within a single transaction: delete-then-reinsert, matching the "the
// snapshot is authoritative as of this cycle" semantics rather than a
// row-by-row diff.
func (s *Store) SetTriggerList(rows []TriggerRow, sourceID int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM triggers WHERE source_id = ?`, sourceID); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO triggers (source_id, triggerid, description, status, value, priority, lastchange, hostid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		var hostID any
		if !row.HostIDNull {
			hostID = strconv.FormatUint(row.HostID, 10)
		}
		if _, err := stmt.Exec(
			sourceID, strconv.FormatUint(row.TriggerID, 10), row.Description,
			row.Status, row.Value, row.Priority, row.LastChange, hostID,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// AddEventList appends events, ignoring rows whose (source_id, eventid)
// already exist.
func (s *Store) AddEventList(rows []EventRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO events (source_id, eventid, source, object, objectid, clock, value, acknowledged)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(
			row.SourceID, strconv.FormatUint(row.EventID, 10), row.Source, row.Object,
			strconv.FormatUint(row.ObjectID, 10), row.Clock, row.Value, row.Acknowledged,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// AddItemList upserts items by (source_id, itemid).
func (s *Store) AddItemList(rows []ItemRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO items (source_id, itemid, hostid, name, key_, lastvalue, lastclock, status, applicationid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (source_id, itemid) DO UPDATE SET
			hostid = excluded.hostid,
			name = excluded.name,
			key_ = excluded.key_,
			lastvalue = excluded.lastvalue,
			lastclock = excluded.lastclock,
			status = excluded.status,
			applicationid = excluded.applicationid
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		var appID any
		if !row.ApplicationIDNull {
			appID = strconv.FormatUint(row.ApplicationID, 10)
		}
		if _, err := stmt.Exec(
			row.SourceID, strconv.FormatUint(row.ItemID, 10), strconv.FormatUint(row.HostID, 10),
			row.Name, row.Key, row.LastValue, row.LastClock, row.Status, appID,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
