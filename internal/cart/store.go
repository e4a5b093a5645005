package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/AhmedKettaf/inilapstore/pkg/config"
	"github.com/AhmedKettaf/inilapstore/pkg/redis"
)

type snapshotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type snapshotKeyer interface {
	CartKey(token string) string
}

// Store persists cart snapshots in Redis as JSON blobs. Every write refreshes
// the TTL so active carts never expire mid-session.
type Store struct {
	store snapshotStore
	keyer snapshotKeyer
	ttl   time.Duration
}

// NewStore wires the cart store against the shared Redis client.
func NewStore(client *redis.Client, cfg config.CartConfig) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if cfg.SnapshotTTL <= 0 {
		return nil, errors.New("cart snapshot TTL must be positive")
	}
	return &Store{store: client, keyer: client, ttl: cfg.SnapshotTTL}, nil
}

// Load returns the snapshot for a token, or an empty snapshot when none is
// stored yet.
func (s *Store) Load(ctx context.Context, token string) (*Snapshot, error) {
	raw, err := s.store.Get(ctx, s.keyer.CartKey(token))
	if errors.Is(err, goredis.Nil) {
		return &Snapshot{Token: token, Lines: []Line{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	snapshot.Token = token
	if snapshot.Lines == nil {
		snapshot.Lines = []Line{}
	}
	return &snapshot, nil
}

// Save writes the snapshot back with a fresh TTL.
func (s *Store) Save(ctx context.Context, snapshot *Snapshot) error {
	snapshot.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := s.store.Set(ctx, s.keyer.CartKey(snapshot.Token), payload, s.ttl); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

// Delete drops the snapshot for a token.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.store.Del(ctx, s.keyer.CartKey(token)); err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}
