package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shophub/storefront/internal/docstore"
)

// Store keeps every logical collection in one jsonb-backed table, keyed by
// (collection, id). Merge upserts lean on the jsonb || operator.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the documents table. Safe to run on every startup.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection text NOT NULL,
			id         text NOT NULL,
			data       jsonb NOT NULL,
			PRIMARY KEY (collection, id)
		)`)
	if err != nil {
		return fmt.Errorf("migrate documents: %w", err)
	}
	return nil
}

func (s *Store) Upsert(ctx context.Context, collection, id string, fields docstore.Fields, merge bool) error {
	if docstore.ContainsUnset(map[string]any(fields)) {
		return fmt.Errorf("upsert %s/%s: %w", collection, id, docstore.ErrUnsetValue)
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}

	action := "EXCLUDED.data"
	if merge {
		action = "documents.data || EXCLUDED.data"
	}

	_, err = s.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET data = %s`, action),
		collection, id, data)
	if err != nil {
		return fmt.Errorf("upsert %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Fields, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	var fields docstore.Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return fields, nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, collection string, filters map[string]any, orderBy docstore.OrderBy) ([]docstore.Doc, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, data FROM documents WHERE collection = $1`)
	args := []any{collection}

	for field, want := range filters {
		val, err := json.Marshal(want)
		if err != nil {
			return nil, fmt.Errorf("query %s: encode filter %s: %w", collection, field, err)
		}
		args = append(args, field, string(val))
		fmt.Fprintf(&sb, " AND data -> $%d = $%d::jsonb", len(args)-1, len(args))
	}

	if orderBy.Field != "" {
		args = append(args, orderBy.Field)
		dir := "ASC"
		if orderBy.Desc {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY data ->> $%d %s", len(args), dir)
	} else {
		sb.WriteString(" ORDER BY id ASC")
	}

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var out []docstore.Doc
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("query %s: scan: %w", collection, err)
		}
		var fields docstore.Fields
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("query %s: decode %s: %w", collection, id, err)
		}
		out = append(out, docstore.Doc{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	return out, nil
}
