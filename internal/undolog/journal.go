package undolog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"globalsort/internal/errs"
)

// Journal is a Log backed by SQLite.
type Journal struct {
	db   *sql.DB
	path string
}

// OpenJournal opens or creates the journal database at path and applies
// migrations.
func OpenJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errs.Wrap(errs.ErrIO, "undolog", "open", "create journal directory", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, "undolog", "open", "open sqlite db", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, errs.Wrap(errs.ErrIO, "undolog", "open", fmt.Sprintf("apply pragma %q", pragma), execErr)
		}
	}

	j := &Journal{db: db, path: path}
	if err := j.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, errs.Wrap(errs.ErrIO, "undolog", "open", "migrate journal", err)
	}
	return j, nil
}

// Path returns the database location.
func (j *Journal) Path() string {
	return j.path
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

func (j *Journal) Append(ctx context.Context, rec Record) (Record, error) {
	if rec.MovedAt.IsZero() {
		rec.MovedAt = time.Now().UTC()
	}
	res, err := j.db.ExecContext(
		ctx,
		`INSERT INTO undo_records (session_id, current_path, original_path, kind, size_bytes, moved_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.CurrentPath,
		rec.OriginalPath,
		string(rec.Kind),
		rec.SizeBytes,
		rec.MovedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, errs.Wrap(errs.ErrIO, "undolog", "append", "insert record", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, errs.Wrap(errs.ErrIO, "undolog", "append", "read record id", err)
	}
	rec.ID = id
	return rec, nil
}

func (j *Journal) Records(ctx context.Context) ([]Record, error) {
	rows, err := j.db.QueryContext(
		ctx,
		`SELECT id, session_id, current_path, original_path, kind, size_bytes, moved_at
        FROM undo_records ORDER BY id`,
	)
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, "undolog", "records", "query records", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec     Record
			kind    string
			movedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.CurrentPath, &rec.OriginalPath, &kind, &rec.SizeBytes, &movedAt); err != nil {
			return nil, errs.Wrap(errs.ErrIO, "undolog", "records", "scan record", err)
		}
		rec.Kind = Kind(kind)
		if ts, parseErr := time.Parse(time.RFC3339Nano, movedAt); parseErr == nil {
			rec.MovedAt = ts
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrIO, "undolog", "records", "iterate records", err)
	}
	return out, nil
}

func (j *Journal) Len(ctx context.Context) (int, error) {
	var count int
	if err := j.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM undo_records").Scan(&count); err != nil {
		return 0, errs.Wrap(errs.ErrIO, "undolog", "len", "count records", err)
	}
	return count, nil
}

func (j *Journal) Clear(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, "DELETE FROM undo_records"); err != nil {
		return errs.Wrap(errs.ErrIO, "undolog", "clear", "delete records", err)
	}
	return nil
}
