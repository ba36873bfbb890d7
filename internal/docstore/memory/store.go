package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shophub/storefront/internal/docstore"
)

// Store is an in-memory docstore.Store used by tests and local development.
// It enforces the same unset-marker rejection as the Postgres backend so
// sanitization bugs fail fast everywhere.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]docstore.Fields
}

func New() *Store {
	return &Store{
		collections: make(map[string]map[string]docstore.Fields),
	}
}

func (s *Store) Upsert(ctx context.Context, collection, id string, fields docstore.Fields, merge bool) error {
	if docstore.ContainsUnset(map[string]any(fields)) {
		return fmt.Errorf("upsert %s/%s: %w", collection, id, docstore.ErrUnsetValue)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collections[collection]
	if col == nil {
		col = make(map[string]docstore.Fields)
		s.collections[collection] = col
	}

	existing, ok := col[id]
	if !ok || !merge {
		col[id] = deepCopy(fields)
		return nil
	}

	merged := deepCopy(existing)
	for k, v := range deepCopy(fields) {
		merged[k] = v
	}
	col[id] = merged
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Fields, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return deepCopy(doc), nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func (s *Store) Query(ctx context.Context, collection string, filters map[string]any, orderBy docstore.OrderBy) ([]docstore.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []docstore.Doc
	for id, fields := range s.collections[collection] {
		if matches(fields, filters) {
			out = append(out, docstore.Doc{ID: id, Fields: deepCopy(fields)})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if orderBy.Field == "" {
			return out[i].ID < out[j].ID
		}
		less := lessValue(out[i].Fields[orderBy.Field], out[j].Fields[orderBy.Field])
		if orderBy.Desc {
			return !less && !equalValue(out[i].Fields[orderBy.Field], out[j].Fields[orderBy.Field])
		}
		return less
	})

	return out, nil
}

func matches(fields docstore.Fields, filters map[string]any) bool {
	for k, want := range filters {
		got, ok := fields[k]
		if !ok {
			return false
		}
		if !equalValue(got, want) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func lessValue(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af < bf
	}
	return fmt.Sprintf("%v", a) < fmt.Sprintf("%v", b)
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func deepCopy(fields docstore.Fields) docstore.Fields {
	out := make(docstore.Fields, len(fields))
	for k, v := range fields {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = copyValue(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = copyValue(val)
		}
		return s
	default:
		return v
	}
}
