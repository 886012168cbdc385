package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// The archive is a persistent store of raw caption cues keyed by video ID.
// Processed responses live in the 2-tier cache and expire quickly; the
// archive keeps the expensive part (the upstream fetch) across restarts so a
// refetch of the same video only reruns the grouping.

// ArchiveEntry is one archived caption fetch.
type ArchiveEntry struct {
	VideoID       string
	LanguageCode  string
	IsGenerated   bool
	Source        string // "page_scrape" or "player_api"
	Title         string
	Author        string
	LengthSeconds int
	CuesJSON      []byte // serialized []transcript.Cue
	FetchedAt     time.Time
}

var (
	archiveDB   *sql.DB
	archiveOnce sync.Once
	archiveErr  error
)

// openArchiveDB opens (or creates) the SQLite archive database at
// Cfg.ArchivePath. Returns (nil, nil) when the archive is disabled.
func openArchiveDB() (*sql.DB, error) {
	if Cfg.ArchivePath == "" {
		return nil, nil
	}
	archiveOnce.Do(func() {
		dir := filepath.Dir(Cfg.ArchivePath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			archiveErr = fmt.Errorf("archive: mkdir %s: %w", dir, err)
			return
		}
		db, err := sql.Open("sqlite", Cfg.ArchivePath)
		if err != nil {
			archiveErr = fmt.Errorf("archive: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if err := initArchiveSchema(db); err != nil {
			archiveErr = fmt.Errorf("archive: init schema: %w", err)
			return
		}
		archiveDB = db
	})
	return archiveDB, archiveErr
}

// initArchiveSchema creates the transcripts table if it doesn't exist.
func initArchiveSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS transcripts (
		video_id       TEXT PRIMARY KEY,
		language_code  TEXT NOT NULL,
		is_generated   INTEGER NOT NULL,
		source         TEXT NOT NULL,
		title          TEXT,
		author         TEXT,
		length_seconds INTEGER,
		cues_json      BLOB NOT NULL,
		fetched_at     TEXT NOT NULL
	)`)
	return err
}

// ArchiveGet returns the archived cues for a video, if present and fresh.
func ArchiveGet(_ context.Context, videoID string) (*ArchiveEntry, bool) {
	db, err := openArchiveDB()
	if err != nil || db == nil {
		return nil, false
	}

	var e ArchiveEntry
	var isGenerated int
	var fetchedAt string
	err = db.QueryRow(
		`SELECT video_id, language_code, is_generated, source, title, author, length_seconds, cues_json, fetched_at
		 FROM transcripts WHERE video_id = ?`,
		videoID,
	).Scan(&e.VideoID, &e.LanguageCode, &isGenerated, &e.Source,
		&e.Title, &e.Author, &e.LengthSeconds, &e.CuesJSON, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		slog.Warn("archive: lookup failed", slog.String("video_id", videoID), slog.Any("error", err))
		return nil, false
	}

	e.IsGenerated = isGenerated != 0
	e.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)

	if Cfg.ArchiveTTL > 0 && time.Since(e.FetchedAt) > Cfg.ArchiveTTL {
		return nil, false
	}

	archiveHits.Add(1)
	return &e, true
}

// ArchivePut inserts or replaces the archived cues for a video.
func ArchivePut(_ context.Context, e ArchiveEntry) error {
	db, err := openArchiveDB()
	if err != nil {
		return err
	}
	if db == nil {
		return nil // archive disabled
	}

	isGenerated := 0
	if e.IsGenerated {
		isGenerated = 1
	}
	fetchedAt := e.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err = db.Exec(
		`INSERT OR REPLACE INTO transcripts
		 (video_id, language_code, is_generated, source, title, author, length_seconds, cues_json, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.VideoID, e.LanguageCode, isGenerated, e.Source,
		e.Title, e.Author, e.LengthSeconds, e.CuesJSON,
		fetchedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("archive: insert %s: %w", e.VideoID, err)
	}
	return nil
}
