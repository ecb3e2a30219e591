// Package storage persists perft results in BadgerDB.
package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const keyPrefix = "perft/"

// DefaultFrontSize is the number of results kept in memory in front of the
// database.
const DefaultFrontSize = 1 << 16

// PerftRecord is the stored value for one position and depth.
type PerftRecord struct {
	FEN     string    `json:"fen"`
	Depth   int       `json:"depth"`
	Nodes   uint64    `json:"nodes"`
	Created time.Time `json:"created"`
}

// Options configures Open.
type Options struct {
	// Dir is the database directory. Empty means DatabaseDir().
	Dir string
	// InMemory keeps the database out of the filesystem.
	InMemory bool
	// FrontSize bounds the in-memory front cache; 0 means DefaultFrontSize.
	FrontSize int
	Logger    *zap.Logger
}

// Stats counts lookups and front cache entries.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

type frontKey struct {
	hash  uint64
	depth int
}

// PerftStore wraps BadgerDB behind a bounded in-memory map.
type PerftStore struct {
	db     *badger.DB
	logger *zap.Logger

	mu        sync.RWMutex
	front     map[frontKey]uint64
	frontSize int
	hits      uint64
	misses    uint64
}

// Open opens or creates a perft store.
func Open(o Options) (*PerftStore, error) {
	var opts badger.Options
	switch {
	case o.InMemory:
		opts = badger.DefaultOptions("").WithInMemory(true)
	default:
		dir := o.Dir
		if dir == "" {
			var err error
			if dir, err = DatabaseDir(); err != nil {
				return nil, fmt.Errorf("database dir: %w", err)
			}
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open perft store: %w", err)
	}

	if o.FrontSize <= 0 {
		o.FrontSize = DefaultFrontSize
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	o.Logger.Debug("perft store opened",
		zap.String("dir", opts.Dir),
		zap.Bool("in_memory", o.InMemory),
		zap.Int("front_size", o.FrontSize),
	)

	return &PerftStore{
		db:        db,
		logger:    o.Logger,
		front:     make(map[frontKey]uint64, min(o.FrontSize, 1024)),
		frontSize: o.FrontSize,
	}, nil
}

// Close closes the database.
func (s *PerftStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func recordKey(hash uint64, depth int) []byte {
	key := make([]byte, len(keyPrefix)+9)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint64(key[len(keyPrefix):], hash)
	key[len(key)-1] = byte(depth)
	return key
}

// Lookup returns the node count stored for a position hash and depth.
func (s *PerftStore) Lookup(hash uint64, depth int) (uint64, bool, error) {
	k := frontKey{hash, depth}
	s.mu.RLock()
	nodes, ok := s.front[k]
	s.mu.RUnlock()
	if ok {
		s.mu.Lock()
		s.hits++
		s.mu.Unlock()
		return nodes, true, nil
	}

	rec, ok, err := s.Record(hash, depth)
	if err != nil {
		return 0, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		s.misses++
		return 0, false, nil
	}
	s.hits++
	s.remember(k, rec.Nodes)
	return rec.Nodes, true, nil
}

// Record loads the full stored record, bypassing the front cache.
func (s *PerftStore) Record(hash uint64, depth int) (PerftRecord, bool, error) {
	var rec PerftRecord
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(hash, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return PerftRecord{}, false, fmt.Errorf("load perft %016x/%d: %w", hash, depth, err)
	}
	return rec, found, nil
}

// Save stores the node count for a position.
func (s *PerftStore) Save(hash uint64, depth int, fen string, nodes uint64) error {
	data, err := json.Marshal(PerftRecord{
		FEN:     fen,
		Depth:   depth,
		Nodes:   nodes,
		Created: time.Now(),
	})
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(hash, depth), data)
	})
	if err != nil {
		return fmt.Errorf("save perft %016x/%d: %w", hash, depth, err)
	}

	s.mu.Lock()
	s.remember(frontKey{hash, depth}, nodes)
	s.mu.Unlock()
	return nil
}

// remember stores an entry in the front cache. Callers hold s.mu.
func (s *PerftStore) remember(k frontKey, nodes uint64) {
	if len(s.front) >= s.frontSize {
		// Simple eviction: clear half the cache, at least one entry
		i := 0
		for key := range s.front {
			if i >= max(1, s.frontSize/2) {
				break
			}
			delete(s.front, key)
			i++
		}
		s.logger.Debug("perft front cache evicted", zap.Int("removed", i))
	}
	s.front[k] = nodes
}

// Stats reports front cache usage.
func (s *PerftStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Hits: s.hits, Misses: s.misses, Entries: len(s.front)}
}

// Count returns the number of records in the database.
func (s *PerftStore) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
