package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stagecall/stagecall/internal/platform/id"
)

// Base carries the store-assigned fields shared by every document. Record
// shapes embed it so the collection can round-trip identity and timestamps
// through the JSON document.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Collection is a typed view over one logical document collection. It is
// created once at process start and owned by exactly one concept; documents
// are created, partially updated, or deleted only through their owner.
type Collection[T any] struct {
	db   *DB
	name string
}

// NewCollection returns the collection with the given name.
func NewCollection[T any](db *DB, name string) *Collection[T] {
	return &Collection[T]{db: db, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

type readOptions struct {
	descending bool
}

// ReadOption adjusts how ReadMany orders its results.
type ReadOption func(*readOptions)

// NewestFirst sorts results by descending insertion order.
func NewestFirst() ReadOption {
	return func(o *readOptions) { o.descending = true }
}

// OldestFirst sorts results by ascending insertion order. This is the
// default.
func OldestFirst() ReadOption {
	return func(o *readOptions) { o.descending = false }
}

// CreateOne inserts a new document with a fresh identifier and creation
// timestamp and returns the identifier. Duplicate content never fails;
// uniqueness beyond the identifier is the caller's responsibility.
func (c *Collection[T]) CreateOne(ctx context.Context, fields T) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c == nil || c.db == nil || c.db.sqlDB == nil {
		return "", fmt.Errorf("document store is not configured")
	}

	docID, err := id.NewID()
	if err != nil {
		return "", fmt.Errorf("generate document id: %w", err)
	}
	now := time.Now().UTC()

	doc, err := encodeDoc(fields, docID, now, now)
	if err != nil {
		return "", err
	}

	_, err = c.db.sqlDB.ExecContext(ctx, `
INSERT INTO documents (collection, id, created_at, updated_at, doc)
VALUES (?, ?, ?, ?, ?)
`, c.name, docID, now.UnixMilli(), now.UnixMilli(), doc)
	if err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}
	return docID, nil
}

// ReadOne returns the first document matching the filter in insertion order,
// or nil when none matches. Absence is a sentinel, never an error.
func (c *Collection[T]) ReadOne(ctx context.Context, filter Filter) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil || c.db == nil || c.db.sqlDB == nil {
		return nil, fmt.Errorf("document store is not configured")
	}

	where, args, err := buildWhere(c.name, filter)
	if err != nil {
		return nil, err
	}
	row := c.db.sqlDB.QueryRowContext(ctx, `
SELECT doc FROM documents WHERE `+where+` ORDER BY seq ASC LIMIT 1
`, args...)

	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read document: %w", err)
	}
	return decodeDoc[T](doc)
}

// ReadMany returns every document matching the filter, in insertion order
// unless NewestFirst is given.
func (c *Collection[T]) ReadMany(ctx context.Context, filter Filter, opts ...ReadOption) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil || c.db == nil || c.db.sqlDB == nil {
		return nil, fmt.Errorf("document store is not configured")
	}

	var options readOptions
	for _, opt := range opts {
		opt(&options)
	}
	order := "ASC"
	if options.descending {
		order = "DESC"
	}

	where, args, err := buildWhere(c.name, filter)
	if err != nil {
		return nil, err
	}
	rows, err := c.db.sqlDB.QueryContext(ctx, `
SELECT doc FROM documents WHERE `+where+` ORDER BY seq `+order+`
`, args...)
	if err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}
	defer rows.Close()

	var records []T
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		record, err := decodeDoc[T](doc)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return records, nil
}

// PartialUpdateOne merges the patch's fields into the first document matching
// the filter. Fields absent from the patch keep their existing values. No-op
// when nothing matches or the patch is empty.
func (c *Collection[T]) PartialUpdateOne(ctx context.Context, filter Filter, patch Patch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil || c.db == nil || c.db.sqlDB == nil {
		return fmt.Errorf("document store is not configured")
	}
	if len(patch) == 0 {
		return nil
	}

	where, args, err := buildWhere(c.name, filter)
	if err != nil {
		return err
	}

	tx, err := c.db.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
SELECT seq, doc FROM documents WHERE `+where+` ORDER BY seq ASC LIMIT 1
`, args...)

	var seq int64
	var doc string
	if err := row.Scan(&seq, &doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("read document for update: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(doc), &fields); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	for key, value := range patch {
		fields[key] = value
	}
	now := time.Now().UTC()
	fields["updated_at"] = now

	merged, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
UPDATE documents SET doc = ?, updated_at = ? WHERE seq = ?
`, string(merged), now.UnixMilli(), seq); err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return tx.Commit()
}

// DeleteOne removes the first document matching the filter in insertion
// order. No-op when nothing matches.
func (c *Collection[T]) DeleteOne(ctx context.Context, filter Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil || c.db == nil || c.db.sqlDB == nil {
		return fmt.Errorf("document store is not configured")
	}

	where, args, err := buildWhere(c.name, filter)
	if err != nil {
		return err
	}
	if _, err := c.db.sqlDB.ExecContext(ctx, `
DELETE FROM documents WHERE seq IN (
    SELECT seq FROM documents WHERE `+where+` ORDER BY seq ASC LIMIT 1
)
`, args...); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// PopOne atomically reads and deletes the first document matching the filter,
// returning it, or nil when none matches. The read and the delete are one
// statement, so two concurrent pops of the same document cannot both succeed.
func (c *Collection[T]) PopOne(ctx context.Context, filter Filter) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil || c.db == nil || c.db.sqlDB == nil {
		return nil, fmt.Errorf("document store is not configured")
	}

	where, args, err := buildWhere(c.name, filter)
	if err != nil {
		return nil, err
	}
	row := c.db.sqlDB.QueryRowContext(ctx, `
DELETE FROM documents WHERE seq IN (
    SELECT seq FROM documents WHERE `+where+` ORDER BY seq ASC LIMIT 1
)
RETURNING doc
`, args...)

	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("pop document: %w", err)
	}
	return decodeDoc[T](doc)
}

func encodeDoc[T any](fields T, docID string, createdAt, updatedAt time.Time) (string, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshal document fields: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", fmt.Errorf("unmarshal document fields: %w", err)
	}
	m["id"] = docID
	m["created_at"] = createdAt
	m["updated_at"] = updatedAt

	doc, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return string(doc), nil
}

func decodeDoc[T any](doc string) (*T, error) {
	var record T
	if err := json.Unmarshal([]byte(doc), &record); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &record, nil
}
