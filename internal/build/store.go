package build

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/AhmedKettaf/inilapstore/pkg/config"
	"github.com/AhmedKettaf/inilapstore/pkg/enums"
	"github.com/AhmedKettaf/inilapstore/pkg/redis"
)

type snapshotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type snapshotKeyer interface {
	BuildKey(token string) string
}

// Store persists build-configurator snapshots in Redis, sharing the cart's
// snapshot TTL so abandoned builds age out alongside abandoned carts.
type Store struct {
	store snapshotStore
	keyer snapshotKeyer
	ttl   time.Duration
}

// NewStore wires the build store against the shared Redis client.
func NewStore(client *redis.Client, cfg config.CartConfig) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if cfg.SnapshotTTL <= 0 {
		return nil, errors.New("snapshot TTL must be positive")
	}
	return &Store{store: client, keyer: client, ttl: cfg.SnapshotTTL}, nil
}

func (s *Store) Load(ctx context.Context, token string) (*Snapshot, error) {
	raw, err := s.store.Get(ctx, s.keyer.BuildKey(token))
	if errors.Is(err, goredis.Nil) {
		return &Snapshot{Token: token, Slots: map[enums.PartType]SlotSelection{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load build snapshot: %w", err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("decode build snapshot: %w", err)
	}
	snapshot.Token = token
	if snapshot.Slots == nil {
		snapshot.Slots = map[enums.PartType]SlotSelection{}
	}
	return &snapshot, nil
}

func (s *Store) Save(ctx context.Context, snapshot *Snapshot) error {
	snapshot.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode build snapshot: %w", err)
	}
	if err := s.store.Set(ctx, s.keyer.BuildKey(snapshot.Token), payload, s.ttl); err != nil {
		return fmt.Errorf("save build snapshot: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.store.Del(ctx, s.keyer.BuildKey(token)); err != nil {
		return fmt.Errorf("delete build snapshot: %w", err)
	}
	return nil
}
