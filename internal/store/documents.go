package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// fieldName restricts ListDocuments ordering to plain JSON keys.
var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// GetDocument returns the document or ErrNotFound.
func (s *Store) GetDocument(ctx context.Context, userID, collection, docID string) (*Document, error) {
	d := &Document{UserID: userID, Collection: collection, ID: docID}
	var data, updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT data, updated_at FROM documents WHERE user_id = ? AND collection = ? AND doc_id = ?`,
		userID, collection, docID,
	).Scan(&data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get document %s/%s: %w", collection, docID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s/%s: %w", collection, docID, err)
	}
	d.Data = json.RawMessage(data)
	d.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return d, nil
}

// getJSON decodes a document into v. It reports false when the document does
// not exist.
func (s *Store) getJSON(ctx context.Context, userID, collection, docID string, v any) (bool, error) {
	d, err := s.GetDocument(ctx, userID, collection, docID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(d.Data, v); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", collection, docID, err)
	}
	return true, nil
}

// PutDocument writes v as the full document, replacing any previous content.
func (s *Store) PutDocument(ctx context.Context, userID, collection, docID string, v any) error {
	return putDocument(ctx, s.db, userID, collection, docID, v)
}

// DeleteDocument removes the document. Deleting a missing document is not an
// error.
func (s *Store) DeleteDocument(ctx context.Context, userID, collection, docID string) error {
	return deleteDocument(ctx, s.db, userID, collection, docID)
}

// timeOrder ranks ISO timestamps by instant. RFC 3339 text with trimmed
// fractions does not sort lexically.
const timeOrder = `CASE WHEN json_extract(data, ?) GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]T*'
	THEN julianday(json_extract(data, ?)) END`

// ListDocuments returns every document in the collection ordered by the JSON
// field orderBy, ties broken by document id. An empty orderBy orders by id.
func (s *Store) ListDocuments(ctx context.Context, userID, collection, orderBy string) ([]Document, error) {
	query := `SELECT doc_id, data, updated_at FROM documents WHERE user_id = ? AND collection = ?`
	args := []any{userID, collection}
	if orderBy != "" {
		if !fieldName.MatchString(orderBy) {
			return nil, fmt.Errorf("list %s: invalid order field %q", collection, orderBy)
		}
		query += ` ORDER BY ` + timeOrder + `, json_extract(data, ?), doc_id`
		path := "$." + orderBy
		args = append(args, path, path, path)
	} else {
		query += ` ORDER BY doc_id`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		d := Document{UserID: userID, Collection: collection}
		var data, updatedAt string
		if err := rows.Scan(&d.ID, &data, &updatedAt); err != nil {
			return nil, err
		}
		d.Data = json.RawMessage(data)
		d.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func putDocument(ctx context.Context, q querier, userID, collection, docID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, docID, err)
	}
	now := time.Now().UTC().Format(timestampLayout)
	_, err = q.ExecContext(ctx,
		`INSERT INTO documents (user_id, collection, doc_id, data, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, collection, doc_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, collection, docID, string(data), now,
	)
	if err != nil {
		return fmt.Errorf("put document %s/%s: %w", collection, docID, err)
	}
	return nil
}

func deleteDocument(ctx context.Context, q querier, userID, collection, docID string) error {
	_, err := q.ExecContext(ctx,
		`DELETE FROM documents WHERE user_id = ? AND collection = ? AND doc_id = ?`,
		userID, collection, docID,
	)
	if err != nil {
		return fmt.Errorf("delete document %s/%s: %w", collection, docID, err)
	}
	return nil
}
