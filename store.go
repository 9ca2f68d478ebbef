package inventory

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"
)

// Store is the key-value persistence gateway of a Ledger. Each collection
// is saved whole under its own key, the last write wins.
type Store interface {
	// Load returns the data saved under key, or an error wrapping
	// fs.ErrNotExist if nothing was ever saved there.
	Load(key string) ([]byte, error)
	// Save replaces the data under key.
	Save(key string, data []byte) error
}

// MemoryStore is a Store that keeps data in memory.
type MemoryStore struct {
	data map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(key string) ([]byte, error) {
	data, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, fs.ErrNotExist)
	}
	return slices.Clone(data), nil
}

func (s *MemoryStore) Save(key string, data []byte) error {
	s.data[key] = slices.Clone(data)
	return nil
}

// Keys returns the sorted keys saved so far.
func (s *MemoryStore) Keys() []string {
	return slices.Sorted(maps.Keys(s.data))
}

// OpenStore returns the Store described by location:
//
//	mem:                 an empty MemoryStore
//	redis://host:port/db a RedisStore
//	anything else        a FileStore rooted in that directory
func OpenStore(ctx context.Context, location string) (Store, error) {
	switch {
	case location == "mem:":
		return NewMemoryStore(), nil
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return NewRedisStore(ctx, location)
	case location == "":
		return nil, fmt.Errorf("empty store location")
	default:
		return NewFileStore(location), nil
	}
}
