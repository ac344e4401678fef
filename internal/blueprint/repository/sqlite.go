package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"blueprint-editor/internal/blueprint/models"
	"blueprint-editor/internal/blueprint/quote"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

//go:embed schema.sql
var schemaSQL string

var ErrNotFound = errors.New("snapshot not found")

// ============================================================
// Records
// ============================================================

// Record is one saved state of a session.
type Record struct {
	SessionID uuid.UUID         `json:"sessionId"`
	Name      string            `json:"name"`
	Floor     int               `json:"floor"`
	Entities  []models.Entity3D `json:"entities"`
	Quote     quote.Snapshot    `json:"quote"`
	SavedAt   time.Time         `json:"savedAt"`
}

// Summary lists a record without its payload.
type Summary struct {
	Name    string    `json:"name"`
	Floor   int       `json:"floor"`
	Objects int       `json:"objects"`
	Total   float64   `json:"total"`
	SavedAt time.Time `json:"savedAt"`
}

// payload is what gets compressed into the blob column.
type payload struct {
	Floor    int               `json:"floor"`
	Entities []models.Entity3D `json:"entities"`
	Quote    json.RawMessage   `json:"quote"`
}

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func New(db *sql.DB) (*Repository, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &Repository{db: db, enc: enc, dec: dec}, nil
}

// Init applies the schema.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close releases the codecs. The database handle belongs to the caller.
func (r *Repository) Close() error {
	r.dec.Close()
	return r.enc.Close()
}

// Save stores rec, replacing a previous record with the same session and name.
// The quote must match the persisted object/quote shape.
func (r *Repository) Save(ctx context.Context, rec Record) error {
	if err := quote.ValidateSnapshot(rec.Quote); err != nil {
		return fmt.Errorf("save %s: %w", rec.Name, err)
	}
	quoteJSON, err := json.Marshal(rec.Quote.Normalized())
	if err != nil {
		return fmt.Errorf("marshal quote: %w", err)
	}
	raw, err := json.Marshal(payload{Floor: rec.Floor, Entities: rec.Entities, Quote: quoteJSON})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO snapshots (session_id, name, floor, objects, total, payload, saved_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (session_id, name) DO UPDATE SET
            floor = excluded.floor,
            objects = excluded.objects,
            total = excluded.total,
            payload = excluded.payload,
            saved_at = excluded.saved_at
    `,
		rec.SessionID.String(),
		rec.Name,
		rec.Floor,
		len(rec.Quote.Objects),
		rec.Quote.Total,
		r.enc.EncodeAll(raw, nil),
		rec.SavedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (r *Repository) Load(ctx context.Context, sessionID uuid.UUID, name string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT payload, saved_at
        FROM snapshots
        WHERE session_id = ? AND name = ?
    `, sessionID.String(), name)

	var (
		blob    []byte
		savedAt int64
	)
	if err := row.Scan(&blob, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("load %s: %w", name, ErrNotFound)
		}
		return nil, err
	}

	raw, err := r.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := quote.ValidateJSON(p.Quote); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	rec := &Record{
		SessionID: sessionID,
		Name:      name,
		Floor:     p.Floor,
		Entities:  p.Entities,
		SavedAt:   time.UnixMilli(savedAt),
	}
	if err := json.Unmarshal(p.Quote, &rec.Quote); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	return rec, nil
}

// List returns the saved records of a session, newest first.
func (r *Repository) List(ctx context.Context, sessionID uuid.UUID) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT name, floor, objects, total, saved_at
        FROM snapshots
        WHERE session_id = ?
        ORDER BY saved_at DESC, name
    `, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			s       Summary
			savedAt int64
		)
		if err := rows.Scan(&s.Name, &s.Floor, &s.Objects, &s.Total, &savedAt); err != nil {
			return nil, err
		}
		s.SavedAt = time.UnixMilli(savedAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, sessionID uuid.UUID, name string) error {
	res, err := r.db.ExecContext(ctx, `
        DELETE FROM snapshots WHERE session_id = ? AND name = ?
    `, sessionID.String(), name)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete %s: %w", name, ErrNotFound)
	}
	return nil
}

// OpenSQLite opens the database at dbPath, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
