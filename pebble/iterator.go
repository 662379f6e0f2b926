// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"bytes"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
)

var _ database.Iterator = (*iterator)(nil)

type iterator struct {
	db   *Database
	iter *pebble.Iterator

	initialized bool
	released    bool
	err         error

	key   []byte
	value []byte
}

func (db *Database) NewIterator() database.Iterator {
	return db.newIterator(nil, nil)
}

func (db *Database) NewIteratorWithStart(start []byte) database.Iterator {
	return db.newIterator(start, nil)
}

func (db *Database) NewIteratorWithPrefix(prefix []byte) database.Iterator {
	return db.newIterator(nil, prefix)
}

func (db *Database) NewIteratorWithStartAndPrefix(start, prefix []byte) database.Iterator {
	return db.newIterator(start, prefix)
}

func (db *Database) newIterator(start, prefix []byte) database.Iterator {
	db.l.RLock()
	defer db.l.RUnlock()

	if db.closed {
		return &database.IteratorError{Err: ErrClosed}
	}
	it, err := db.db.NewIter(keyRange(start, prefix))
	if err != nil {
		return &database.IteratorError{Err: err}
	}
	return &iterator{db: db, iter: it}
}

func (it *iterator) Next() bool {
	if it.released || it.err != nil {
		return false
	}
	var ok bool
	if !it.initialized {
		ok = it.iter.First()
		it.initialized = true
	} else {
		ok = it.iter.Next()
	}
	if !ok {
		it.key, it.value = nil, nil
		it.err = it.iter.Error()
		return false
	}
	it.key = bytes.Clone(it.iter.Key())
	it.value = bytes.Clone(it.iter.Value())
	return true
}

func (it *iterator) Error() error {
	return it.err
}

func (it *iterator) Key() []byte {
	return it.key
}

func (it *iterator) Value() []byte {
	return it.value
}

func (it *iterator) Release() {
	if it.released {
		return
	}
	it.released = true
	if err := it.iter.Close(); err != nil && it.err == nil {
		it.err = err
	}
}

// keyRange bounds iteration to keys >= [start] that carry [prefix].
func keyRange(start, prefix []byte) *pebble.IterOptions {
	opts := &pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	}
	if bytes.Compare(start, prefix) > 0 {
		opts.LowerBound = start
	}
	return opts
}

// prefixUpperBound returns the smallest key greater than every key with
// [prefix], or nil when no such key exists.
func prefixUpperBound(prefix []byte) []byte {
	upper := bytes.Clone(prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		upper[i]++
		if upper[i] != 0 {
			return upper[:i+1]
		}
	}
	return nil
}
