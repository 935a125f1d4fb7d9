package save

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

// Entry is one recorded save.
type Entry struct {
	ID      string
	Hull    string
	Money   float32
	Items   string
	SavedAt time.Time
}

// History is an append-only log of ship saves in SQLite. Item lists are
// stored zstd-compressed.
type History struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
	now func() time.Time

	mu     sync.Mutex
	closed bool
}

func OpenHistory(path string) (*History, error) {
	if path == "" {
		return nil, fmt.Errorf("empty history path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithZeroFrames(true))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		_ = db.Close()
		return nil, err
	}

	return &History{db: db, enc: enc, dec: dec, now: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			hull TEXT NOT NULL,
			money REAL NOT NULL,
			items BLOB NOT NULL,
			saved_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_saved_at ON saves(saved_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Record appends e. ID and SavedAt are filled in when empty.
func (h *History) Record(ctx context.Context, e Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHistoryClosed
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.SavedAt.IsZero() {
		e.SavedAt = h.now()
	}

	_, err := h.db.ExecContext(ctx,
		`INSERT INTO saves (id, hull, money, items, saved_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Hull, e.Money, h.enc.EncodeAll([]byte(e.Items), nil), e.SavedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting save: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (h *History) Recent(ctx context.Context, n int) ([]Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrHistoryClosed
	}

	rows, err := h.db.QueryContext(ctx,
		`SELECT id, hull, money, items, saved_at FROM saves ORDER BY seq DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying saves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		var items []byte
		var savedAt string
		if err := rows.Scan(&e.ID, &e.Hull, &e.Money, &items, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning save: %w", err)
		}

		raw, err := h.dec.DecodeAll(items, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing items of %s: %w", e.ID, err)
		}
		e.Items = string(raw)

		e.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing time of %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of recorded saves.
func (h *History) Count(ctx context.Context) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0, ErrHistoryClosed
	}

	var n int
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saves`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting saves: %w", err)
	}
	return n, nil
}

func (h *History) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true

	h.dec.Close()
	_ = h.enc.Close()
	return h.db.Close()
}
