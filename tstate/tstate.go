// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"errors"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
)

// TState holds the changes of every committed view of a single top-level
// request. Nothing reaches the underlying database until [WriteTo] is called.
type TState struct {
	db database.KeyValueReader

	l           sync.RWMutex
	changedKeys map[string]maybe.Maybe[[]byte]
	ops         int
}

// New returns a new instance of TState reading through to [db].
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(db database.KeyValueReader, changedSize int) *TState {
	return &TState{
		db:          db,
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

// getChangedValue returns the committed-but-unwritten value of [key], whether
// [key] has been changed and whether it currently exists.
func (ts *TState) getChangedValue(key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

func (ts *TState) getStoredValue(key string) ([]byte, bool, error) {
	v, err := ts.db.Get([]byte(key))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// OpIndex returns the number of operations committed to [ts].
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// PendingChanges returns the number of keys changed by committed views.
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// WriteTo replays every change onto [batch] and writes it. The batch is the
// only point where the request touches disk, so either every change lands or
// none does.
func (ts *TState) WriteTo(batch database.Batch) error {
	ts.l.RLock()
	defer ts.l.RUnlock()

	for k, v := range ts.changedKeys {
		if v.IsNothing() {
			if err := batch.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := batch.Put([]byte(k), v.Value()); err != nil {
			return err
		}
	}
	return batch.Write()
}
