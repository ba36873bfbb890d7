package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shophub/storefront/internal/cart/domain"
)

const keyPrefix = "cart:"

// Store keeps each session's ledger as a single JSON blob, overwritten on
// every mutation.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Save(ctx context.Context, sessionID string, ledger domain.Ledger) error {
	blob, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", sessionID, err)
	}

	if err := s.rdb.Set(ctx, keyPrefix+sessionID, blob, 0).Err(); err != nil {
		return fmt.Errorf("save cart %s: %w", sessionID, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, sessionID string) (domain.Ledger, bool, error) {
	blob, err := s.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Ledger{}, false, nil
	}
	if err != nil {
		return domain.Ledger{}, false, fmt.Errorf("load cart %s: %w", sessionID, err)
	}

	var ledger domain.Ledger
	if err := json.Unmarshal(blob, &ledger); err != nil {
		return domain.Ledger{}, false, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}
	return ledger, true, nil
}
