package datastore

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"matchwatch/internal/config"
	"matchwatch/internal/errorwrapper"
	"matchwatch/internal/models"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Store persists the latest known-good snapshot, its metadata, and a
// bounded history of successful saves in a SQLite database.
type Store struct {
	db           *sql.DB
	historyLimit int
	logger       zerolog.Logger
}

// NewStore opens (or creates) the database and ensures the schema exists.
func NewStore(cfg config.StorageConfig, logger zerolog.Logger) (*Store, error) {
	storeLogger := logger.With().Str("component", "Store").Logger()
	storeLogger.Info().Str("db_path", cfg.SQLiteDBPath).Msg("Initializing state store")

	dbDir := filepath.Dir(cfg.SQLiteDBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create state store directory "+dbDir)
	}

	db, err := sql.Open("sqlite", cfg.SQLiteDBPath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "sql.Open failed for "+cfg.SQLiteDBPath)
	}

	store := &Store{
		db:           db,
		historyLimit: cfg.HistoryLimit,
		logger:       storeLogger,
	}

	if err := store.initSchema(); err != nil {
		store.Close()
		return nil, errorwrapper.WrapError(err, "failed to initialize schema")
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshot (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS metadata (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		last_update DATETIME,
		last_check DATETIME,
		total_teams INTEGER NOT NULL DEFAULT 0,
		total_matches INTEGER NOT NULL DEFAULT 0,
		season TEXT NOT NULL DEFAULT '',
		club_id TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		total_teams INTEGER NOT NULL,
		total_matches INTEGER NOT NULL,
		season TEXT NOT NULL
	);
	INSERT OR IGNORE INTO metadata (id) VALUES (1);`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the persisted snapshot (nil when none was ever saved) and
// the current metadata.
func (s *Store) Load() (*models.ClubSnapshot, models.Metadata, error) {
	meta, err := s.loadMetadata()
	if err != nil {
		return nil, models.Metadata{}, err
	}

	var data string
	err = s.db.QueryRow(`SELECT data FROM snapshot WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, meta, nil
	}
	if err != nil {
		return nil, models.Metadata{}, errorwrapper.WrapError(err, "failed to read snapshot row")
	}

	var snapshot models.ClubSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, models.Metadata{}, errorwrapper.WrapError(err, "failed to decode persisted snapshot")
	}
	return &snapshot, meta, nil
}

// Save atomically replaces the persisted snapshot and metadata and appends
// a history record, evicting the oldest entries beyond the history limit.
// On any failure the previous state stays intact.
func (s *Store) Save(snapshot *models.ClubSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to encode snapshot")
	}
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return errorwrapper.WrapError(err, "failed to begin save transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO snapshot (id, data) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`, string(data)); err != nil {
		return errorwrapper.WrapError(err, "failed to write snapshot row")
	}

	if _, err := tx.Exec(`
		UPDATE metadata SET last_update = ?, total_teams = ?, total_matches = ?, season = ?, club_id = ?
		WHERE id = 1`,
		now, snapshot.TotalTeams, snapshot.TotalMatches, snapshot.Season, snapshot.ClubID); err != nil {
		return errorwrapper.WrapError(err, "failed to write metadata row")
	}

	if _, err := tx.Exec(`
		INSERT INTO history (timestamp, total_teams, total_matches, season)
		VALUES (?, ?, ?, ?)`,
		now, snapshot.TotalTeams, snapshot.TotalMatches, snapshot.Season); err != nil {
		return errorwrapper.WrapError(err, "failed to append history record")
	}

	if _, err := tx.Exec(`
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY id DESC LIMIT ?)`, s.historyLimit); err != nil {
		return errorwrapper.WrapError(err, "failed to evict old history records")
	}

	if err := tx.Commit(); err != nil {
		return errorwrapper.WrapError(err, "failed to commit save transaction")
	}

	s.logger.Info().Int("total_teams", snapshot.TotalTeams).Int("total_matches", snapshot.TotalMatches).Msg("Snapshot saved")
	return nil
}

// TouchLastChecked records that a run completed without changes.
func (s *Store) TouchLastChecked() error {
	_, err := s.db.Exec(`UPDATE metadata SET last_check = ? WHERE id = 1`, time.Now().UTC())
	if err != nil {
		return errorwrapper.WrapError(err, "failed to update last check timestamp")
	}
	return nil
}

// History returns the saved history records in chronological order.
func (s *Store) History() ([]models.HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT timestamp, total_teams, total_matches, season
		FROM history ORDER BY id ASC`)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to query history")
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var entry models.HistoryEntry
		if err := rows.Scan(&entry.Timestamp, &entry.TotalTeams, &entry.TotalMatches, &entry.Season); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to scan history row")
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) loadMetadata() (models.Metadata, error) {
	var meta models.Metadata
	var lastUpdate, lastCheck sql.NullTime
	err := s.db.QueryRow(`
		SELECT last_update, last_check, total_teams, total_matches, season, club_id
		FROM metadata WHERE id = 1`).
		Scan(&lastUpdate, &lastCheck, &meta.TotalTeams, &meta.TotalMatches, &meta.Season, &meta.ClubID)
	if err != nil {
		return models.Metadata{}, errorwrapper.WrapError(err, "failed to read metadata row")
	}
	if lastUpdate.Valid {
		meta.LastUpdate = &lastUpdate.Time
	}
	if lastCheck.Valid {
		meta.LastCheck = &lastCheck.Time
	}
	return meta, nil
}
