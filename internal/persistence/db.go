// Package persistence stores the game snapshot in SQLite: one JSON blob per
// save slot, a metadata table, and a queryable archive of history lines.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/tu-tien/internal/game"
)

// DefaultSlot is the single-player save slot name.
const DefaultSlot = "tu_tien_save_game"

// Store wraps a SQLite connection for snapshot persistence.
type Store struct {
	conn *sqlx.DB
	log  *slog.Logger
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	st := &Store{conn: conn, log: slog.Default()}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	return st.conn.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		at TEXT NOT NULL,
		message TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_at ON history(at);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// Save serializes the snapshot into the slot, refreshing its LastUpdate,
// and archives any history lines newer than the previous save.
func (st *Store) Save(s *game.State) error {
	s.LastUpdate = time.Now()

	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO saves (slot, payload, saved_at) VALUES (?, ?, ?)",
		DefaultSlot, string(payload), s.LastUpdate.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}

	if err := archiveHistory(tx, s.History); err != nil {
		return fmt.Errorf("archive history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	st.log.Debug("snapshot saved", "bytes", len(payload))
	return nil
}

// archiveHistory appends history rows newer than the stored watermark.
func archiveHistory(tx *sqlx.Tx, history []game.HistoryEntry) error {
	var watermark string
	err := tx.Get(&watermark, "SELECT value FROM meta WHERE key = 'history_watermark'")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var since time.Time
	if watermark != "" {
		since, _ = time.Parse(time.RFC3339Nano, watermark)
	}

	// History is most-recent-first; insert oldest-first so row ids follow
	// narrative order.
	newest := since
	for i := len(history) - 1; i >= 0; i-- {
		e := history[i]
		if !e.At.After(since) {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO history (at, message) VALUES (?, ?)",
			e.At.UTC().Format(time.RFC3339Nano), e.Message,
		); err != nil {
			return err
		}
		if e.At.After(newest) {
			newest = e.At
		}
	}

	if newest.After(since) {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO meta (key, value) VALUES ('history_watermark', ?)",
			newest.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return err
		}
	}
	return nil
}

// Load deserializes the stored snapshot. Missing fields keep their seed
// defaults (the payload unmarshals over a fresh seed state), so saves from
// older versions migrate forward without data loss. A missing or corrupt
// payload falls back to the seed: loading never fails startup.
func (st *Store) Load() *game.State {
	var payload string
	err := st.conn.Get(&payload, "SELECT payload FROM saves WHERE slot = ?", DefaultSlot)
	if errors.Is(err, sql.ErrNoRows) {
		st.log.Info("no saved game, starting fresh")
		return game.NewState()
	}
	if err != nil {
		st.log.Error("load failed, falling back to seed state", "error", err)
		return game.NewState()
	}

	s := game.NewState()
	if err := json.Unmarshal([]byte(payload), s); err != nil {
		st.log.Error("corrupt save, falling back to seed state", "error", err)
		return game.NewState()
	}

	// Backfill nested defaults the blob may predate.
	if s.Equipped == nil {
		s.Equipped = map[game.EquipmentSlot]string{}
	}
	if s.EffectCooldowns == nil {
		s.EffectCooldowns = map[string]time.Time{}
	}
	if s.TreasuryBought == nil {
		s.TreasuryBought = map[string]bool{}
	}
	if s.SongTuCooldowns == nil {
		s.SongTuCooldowns = map[string]time.Time{}
	}
	if s.API.Keys == nil {
		s.API.Keys = map[string]game.APIKey{}
	}
	if s.API.Groups == nil {
		s.API.Groups = map[string]game.APIKeyGroup{}
	}
	// A save only exists after character creation, so blobs that predate
	// the flag are created characters.
	s.Created = true
	return s
}

// Reset deletes the save slot and returns a fresh seed state.
func (st *Store) Reset() (*game.State, error) {
	if _, err := st.conn.Exec("DELETE FROM saves WHERE slot = ?", DefaultSlot); err != nil {
		return nil, fmt.Errorf("delete save: %w", err)
	}
	st.log.Info("save slot cleared")
	return game.NewState(), nil
}

// RecentHistory returns the most recent archived history lines.
func (st *Store) RecentHistory(limit int) ([]game.HistoryEntry, error) {
	rows, err := st.conn.Queryx(
		"SELECT at, message FROM history ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.HistoryEntry
	for rows.Next() {
		var at, message string
		if err := rows.Scan(&at, &message); err != nil {
			return nil, err
		}
		t, _ := time.Parse(time.RFC3339Nano, at)
		out = append(out, game.HistoryEntry{At: t, Message: message})
	}
	return out, rows.Err()
}
