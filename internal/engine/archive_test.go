package engine

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// resetArchive resets the singleton so each test gets a fresh DB.
func resetArchive(t *testing.T, ttl time.Duration) {
	t.Helper()
	dir := t.TempDir()
	archiveDB = nil
	archiveErr = nil
	archiveOnce = sync.Once{}
	Init(Config{
		ArchivePath: filepath.Join(dir, "transcripts.db"),
		ArchiveTTL:  ttl,
	})
}

func TestArchiveRoundTrip(t *testing.T) {
	resetArchive(t, 0)
	ctx := context.Background()

	entry := ArchiveEntry{
		VideoID:       "dQw4w9WgXcQ",
		LanguageCode:  "en",
		IsGenerated:   true,
		Source:        "page_scrape",
		Title:         "Test Video",
		Author:        "Test Channel",
		LengthSeconds: 212,
		CuesJSON:      []byte(`[{"text":"hello","start":0,"duration":2}]`),
	}
	if err := ArchivePut(ctx, entry); err != nil {
		t.Fatalf("ArchivePut error: %v", err)
	}

	got, ok := ArchiveGet(ctx, "dQw4w9WgXcQ")
	if !ok {
		t.Fatal("expected archive hit")
	}
	if got.LanguageCode != "en" || !got.IsGenerated || got.Title != "Test Video" {
		t.Errorf("unexpected entry: %+v", got)
	}
	if string(got.CuesJSON) != string(entry.CuesJSON) {
		t.Errorf("cues JSON mismatch: %s", got.CuesJSON)
	}
	if got.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}
}

func TestArchiveMiss(t *testing.T) {
	resetArchive(t, 0)
	if _, ok := ArchiveGet(context.Background(), "missing00000"); ok {
		t.Error("expected miss for unknown video")
	}
}

func TestArchiveReplace(t *testing.T) {
	resetArchive(t, 0)
	ctx := context.Background()

	first := ArchiveEntry{VideoID: "abc12345678", LanguageCode: "en", CuesJSON: []byte(`[]`)}
	if err := ArchivePut(ctx, first); err != nil {
		t.Fatalf("first put: %v", err)
	}
	second := ArchiveEntry{VideoID: "abc12345678", LanguageCode: "de", CuesJSON: []byte(`[]`)}
	if err := ArchivePut(ctx, second); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, ok := ArchiveGet(ctx, "abc12345678")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.LanguageCode != "de" {
		t.Errorf("expected replaced entry, got language %q", got.LanguageCode)
	}
}

func TestArchiveTTLExpiry(t *testing.T) {
	resetArchive(t, time.Hour)
	ctx := context.Background()

	stale := ArchiveEntry{
		VideoID:      "old00000000",
		LanguageCode: "en",
		CuesJSON:     []byte(`[]`),
		FetchedAt:    time.Now().UTC().Add(-2 * time.Hour),
	}
	if err := ArchivePut(ctx, stale); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := ArchiveGet(ctx, "old00000000"); ok {
		t.Error("expected stale entry to be skipped")
	}
}

func TestArchiveDisabled(t *testing.T) {
	archiveDB = nil
	archiveErr = nil
	archiveOnce = sync.Once{}
	Init(Config{ArchivePath: ""})

	ctx := context.Background()
	if err := ArchivePut(ctx, ArchiveEntry{VideoID: "any00000000", CuesJSON: []byte(`[]`)}); err != nil {
		t.Fatalf("put with archive disabled: %v", err)
	}
	if _, ok := ArchiveGet(ctx, "any00000000"); ok {
		t.Error("expected miss with archive disabled")
	}
}
