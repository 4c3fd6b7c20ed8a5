// Package sqlite implements storage.SessionStore on SQLite.
package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"

	"github.com/samdwyer/dungeoncrawl/internal/storage"
	"github.com/samdwyer/dungeoncrawl/internal/storage/sqlite/migrations"
	"github.com/samdwyer/dungeoncrawl/internal/storage/sqlitemigrate"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

var tracer = telemetry.Tracer("storage")

// Store provides SQLite-backed save slots.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSession writes record into its slot, replacing any earlier save.
func (s *Store) PutSession(ctx context.Context, record storage.SessionRecord) error {
	_, span := tracer.Start(ctx, "storage.put_session")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	slot := strings.TrimSpace(record.Slot)
	if slot == "" {
		return fmt.Errorf("slot is required")
	}
	if len(record.Payload) == 0 {
		return fmt.Errorf("payload is required")
	}
	savedAt := record.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	span.SetAttributes(
		attribute.String("save.slot", slot),
		attribute.Int("save.level", record.Level),
		attribute.Int("save.bytes", len(record.Payload)),
	)

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO saves (slot, session_id, level, payload, checksum, saved_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
    session_id = excluded.session_id,
    level = excluded.level,
    payload = excluded.payload,
    checksum = excluded.checksum,
    saved_at = excluded.saved_at
`,
		slot,
		record.SessionID,
		record.Level,
		record.Payload,
		checksum(record.Payload),
		savedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put session %s: %w", slot, err)
	}
	return nil
}

// GetSession reads the save in slot. A payload whose checksum no longer
// matches is reported as storage.ErrCorrupt.
func (s *Store) GetSession(ctx context.Context, slot string) (storage.SessionRecord, error) {
	_, span := tracer.Start(ctx, "storage.get_session")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return storage.SessionRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SessionRecord{}, fmt.Errorf("storage is not configured")
	}
	slot = strings.TrimSpace(slot)
	span.SetAttributes(attribute.String("save.slot", slot))

	var (
		record  storage.SessionRecord
		sum     string
		savedAt int64
	)
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT slot, session_id, level, payload, checksum, saved_at FROM saves WHERE slot = ?",
		slot,
	)
	if err := row.Scan(&record.Slot, &record.SessionID, &record.Level, &record.Payload, &sum, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SessionRecord{}, storage.ErrNotFound
		}
		return storage.SessionRecord{}, fmt.Errorf("get session %s: %w", slot, err)
	}
	if sum != checksum(record.Payload) {
		return storage.SessionRecord{}, fmt.Errorf("get session %s: checksum mismatch: %w", slot, storage.ErrCorrupt)
	}
	record.SavedAt = time.UnixMilli(savedAt).UTC()
	return record, nil
}

// DeleteSession removes the save in slot. Deleting an empty slot is not an
// error.
func (s *Store) DeleteSession(ctx context.Context, slot string) error {
	_, span := tracer.Start(ctx, "storage.delete_session")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM saves WHERE slot = ?", strings.TrimSpace(slot)); err != nil {
		return fmt.Errorf("delete session %s: %w", slot, err)
	}
	return nil
}

func checksum(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

var _ storage.SessionStore = (*Store)(nil)
