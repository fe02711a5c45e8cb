// Package badger implements db.Store on an embedded BadgerDB instance.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pagehighlight/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

const (
	gcInterval     = 5 * time.Minute
	gcDiscardRatio = 0.5
)

// Config holds embedded store settings.
type Config struct {
	Path     string
	InMemory bool
	Logger   *zap.Logger
	// ChunkSize bounds the value stored under one key; larger values are
	// split. <= 0 selects DefaultChunkSize, values above 1 MiB are clamped.
	ChunkSize int
}

// Store implements db.Store on BadgerDB.
type Store struct {
	db        *badger.DB
	logger    *zap.Logger
	chunkSize int

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Open opens (or creates) a BadgerDB database.
// On-disk databases get a background value-log GC loop.
func Open(cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("path is required for on-disk store")
		}
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = &zapAdapter{l: logger.Sugar().Named("badger")}
	opts.Compression = options.None

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	chunkSize = min(chunkSize, maxChunkSize)

	s := &Store{db: bdb, logger: logger, chunkSize: chunkSize, stop: make(chan struct{})}
	if !cfg.InMemory {
		s.wg.Add(1)
		go s.runGC()
	}
	return s, nil
}

func ensureDir(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(path, 0o750); err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

func (s *Store) runGC() {
	defer s.wg.Done()
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			// RunValueLogGC returns ErrNoRewrite when there is nothing to collect.
			for s.db.RunValueLogGC(gcDiscardRatio) == nil {
			}
		}
	}
}

// Ping reports whether the database is open.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	if s.db.IsClosed() {
		return &db.Error{Op: db.OpPing, Err: db.ErrClosed}
	}
	return nil
}

// WaitForReady returns immediately: an embedded store is ready once opened.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Close stops the GC loop and closes the database.
func (s *Store) Close() {
	s.once.Do(func() {
		close(s.stop)
		s.wg.Wait()
		if err := s.db.Close(); err != nil {
			s.logger.Warn("close badger", zap.Error(err))
		}
	})
}

// Get retrieves a copy of the value stored at key, reassembled from chunks if needed.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}

	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = readValue(txn, key, item)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, db.ErrKeyNotFound
	}
	if err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return out, nil
}

// Set stores a value without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.SetWithTTL(ctx, key, value, 0)
}

// SetWithTTL stores a value with an expiration. ttl <= 0 stores without expiry.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.SetMulti(ctx, []db.KVItem{{Key: key, Value: value}}, ttl)
}

// SetMulti stores all items in order. Writes that fit one transaction are
// atomic; larger ones are committed in several, in item order.
func (s *Store) SetMulti(ctx context.Context, items []db.KVItem, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}

	if err := s.write(s.entries(items, ttl)); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// write commits entries, starting a new transaction whenever the current one
// reports ErrTxnTooBig.
func (s *Store) write(entries []*badger.Entry) error {
	txn := s.db.NewTransaction(true)
	defer func() { txn.Discard() }()

	for _, e := range entries {
		err := txn.SetEntry(e)
		if errors.Is(err, badger.ErrTxnTooBig) {
			if err := txn.Commit(); err != nil {
				return err
			}
			txn = s.db.NewTransaction(true)
			err = txn.SetEntry(e)
		}
		if err != nil {
			return fmt.Errorf("key %s: %w", e.Key, err)
		}
	}
	return txn.Commit()
}

// Del deletes keys and their chunks. Missing keys are ignored.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			chunks, err := chunkKeys(txn, k)
			if err != nil {
				return fmt.Errorf("key %s: %w", k, err)
			}
			for _, ck := range chunks {
				if err := txn.Delete(ck); err != nil {
					return err
				}
			}
			if err := txn.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// Exists checks if a key exists and has not expired.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return true, nil
}
