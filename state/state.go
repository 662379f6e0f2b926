// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

type Immutable interface {
	GetValue(ctx context.Context, key []byte) (value []byte, err error)
}

type Mutable interface {
	Immutable

	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}

// Database is the persistent store the registry is committed to. Both the
// pebble-backed store and avalanchego's memdb satisfy it.
type Database interface {
	database.KeyValueReader
	database.Batcher
	database.Iteratee
}

var _ Immutable = (*ReadOnly)(nil)

// ReadOnly serves committed values straight from a [Database]. Queries run
// against it so they never observe an in-flight request.
type ReadOnly struct {
	db database.KeyValueReader
}

func NewReadOnly(db database.KeyValueReader) *ReadOnly {
	return &ReadOnly{db: db}
}

func (r *ReadOnly) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return r.db.Get(key)
}
