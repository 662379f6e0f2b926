// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/pairfactory/state"
)

var (
	_ state.Database = (*Database)(nil)
	_ database.Batch = (*batch)(nil)

	ErrClosed = errors.New("database closed")
)

type Config struct {
	CacheSize                   int    `json:"cacheSize"`
	BytesPerSync                int    `json:"bytesPerSync"`
	MemTableStopWritesThreshold int    `json:"memTableStopWritesThreshold"`
	MemTableSize                uint64 `json:"memTableSize"`
	MaxOpenFiles                int    `json:"maxOpenFiles"`
	ConcurrentCompactions       int    `json:"concurrentCompactions"`
	Sync                        bool   `json:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   64 * 1024 * 1024,
		BytesPerSync:                1024 * 1024,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                8 * 1024 * 1024,
		MaxOpenFiles:                1_024,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database is the persistent store behind the registry. Every request
// reaches it as one batch.
type Database struct {
	db      *pebble.DB
	metrics *metrics

	writeOpts *pebble.WriteOptions

	closeOnce sync.Once
	closing   chan struct{}
	closed    bool
	l         sync.RWMutex
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d := &Database{
		metrics:   metrics,
		writeOpts: pebble.NoSync,
		closing:   make(chan struct{}),
	}
	if cfg.Sync {
		d.writeOpts = pebble.Sync
	}
	cache := pebble.NewCache(int64(cfg.CacheSize))
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:                       cache,
		BytesPerSync:                cfg.BytesPerSync,
		WALBytesPerSync:             cfg.BytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                cfg.MemTableSize,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		EventListener:               d.listener(),
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	go d.sampleStats()
	return d, registry, nil
}

func (db *Database) Has(key []byte) (bool, error) {
	_, err := db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (db *Database) Get(key []byte) ([]byte, error) {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return nil, ErrClosed
	}
	start := time.Now()
	v, closer, err := db.db.Get(key)
	db.metrics.get.Observe(float64(time.Since(start)))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	value := bytes.Clone(v)
	return value, closer.Close()
}

func (db *Database) Put(key []byte, value []byte) error {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return ErrClosed
	}
	return db.db.Set(key, value, db.writeOpts)
}

func (db *Database) Delete(key []byte) error {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return ErrClosed
	}
	return db.db.Delete(key, db.writeOpts)
}

func (db *Database) Close() error {
	db.l.Lock()
	defer db.l.Unlock()

	if db.closed {
		return ErrClosed
	}
	db.closed = true
	db.closeOnce.Do(func() { close(db.closing) })
	return db.db.Close()
}

type batchOp struct {
	key    []byte
	value  []byte
	delete bool
}

type batch struct {
	db    *Database
	batch *pebble.Batch
	ops   []batchOp
	size  int
}

func (db *Database) NewBatch() database.Batch {
	return &batch{db: db, batch: db.db.NewBatch()}
}

func (b *batch) Put(key []byte, value []byte) error {
	b.ops = append(b.ops, batchOp{key: bytes.Clone(key), value: bytes.Clone(value)})
	b.size += len(key) + len(value)
	return b.batch.Set(key, value, nil)
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, batchOp{key: bytes.Clone(key), delete: true})
	b.size += len(key)
	return b.batch.Delete(key, nil)
}

func (b *batch) Size() int {
	return b.size
}

func (b *batch) Write() error {
	b.db.l.RLock()
	defer b.db.l.RUnlock()

	if b.db.closed {
		return ErrClosed
	}
	start := time.Now()
	if err := b.batch.Commit(b.db.writeOpts); err != nil {
		return err
	}
	b.db.metrics.observeCommit(b.size, start)
	return nil
}

func (b *batch) Reset() {
	b.batch.Reset()
	b.ops = b.ops[:0]
	b.size = 0
}

func (b *batch) Replay(w database.KeyValueWriterDeleter) error {
	for _, op := range b.ops {
		if op.delete {
			if err := w.Delete(op.key); err != nil {
				return err
			}
			continue
		}
		if err := w.Put(op.key, op.value); err != nil {
			return err
		}
	}
	return nil
}

func (b *batch) Inner() database.Batch {
	return b
}
