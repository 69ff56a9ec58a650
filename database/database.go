package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Database holds the sqlite-backed token cache. A single active session is
// assumed, so the session table carries exactly one row.
type Database struct {
	db *sql.DB
}

// SessionRecord is the persisted shape of a Spotify session.
type SessionRecord struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// New opens (or creates) the database at dbPath. An empty dbPath defaults
// to ./data/moodlist.db.
func New(dbPath string) (*Database, error) {
	if dbPath == "" {
		dbPath = "data/moodlist.db"
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	d := &Database{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Infof("Database initialized at %s", dbPath)
	return d, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expiry TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// SaveSession upserts the single cached session row.
func (d *Database) SaveSession(rec SessionRecord) error {
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO session (id, access_token, refresh_token, expiry, updated_at)
		 VALUES (1, ?, ?, ?, ?)`,
		rec.AccessToken, rec.RefreshToken,
		rec.Expiry.UTC().Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadSession returns the cached session, or nil when none has been stored.
func (d *Database) LoadSession() (*SessionRecord, error) {
	var rec SessionRecord
	var expiryStr string
	err := d.db.QueryRow(
		`SELECT access_token, refresh_token, expiry FROM session WHERE id = 1`,
	).Scan(&rec.AccessToken, &rec.RefreshToken, &expiryStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	expiry, err := time.Parse(time.RFC3339Nano, expiryStr)
	if err != nil {
		log.Warnf("failed to parse session expiry '%s', treating session as expired", expiryStr)
		expiry = time.Time{}
	}
	rec.Expiry = expiry

	return &rec, nil
}

// ClearSession drops the cached session. Called when the refresh token is
// rejected or the user revokes authorization.
func (d *Database) ClearSession() error {
	if _, err := d.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
