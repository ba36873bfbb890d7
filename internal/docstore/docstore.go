package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("document not found")
	// ErrUnsetValue is returned when a write payload carries the Unset marker
	// anywhere in its structure. Explicit nil is accepted and is distinct.
	ErrUnsetValue = errors.New("payload contains unset value")
)

type unsetMarker struct{}

// Unset means "no value provided". It is rejected by every Store
// implementation; callers sanitize payloads before writing.
var Unset = unsetMarker{}

// Fields is a single document's field set.
type Fields = map[string]any

type Doc struct {
	ID     string
	Fields Fields
}

type OrderBy struct {
	Field string
	Desc  bool
}

// Store is the keyed-collection document persistence contract. Upsert with
// merge=true patches the existing document's fields; merge=false replaces it.
type Store interface {
	Upsert(ctx context.Context, collection, id string, fields Fields, merge bool) error
	Get(ctx context.Context, collection, id string) (Fields, error)
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, filters map[string]any, orderBy OrderBy) ([]Doc, error)
}
