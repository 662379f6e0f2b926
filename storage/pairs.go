// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/keys"
	"github.com/ava-labs/pairfactory/state"
)

// Pair is one registry row.
type Pair struct {
	Key     []byte
	Address codec.Address
}

// Pair keys are escaped and terminated before the chunk suffix so that rows
// iterate in byte order of the pair key, with a key ahead of every longer key
// it prefixes.
const (
	escape       byte = 0x00
	escapedZero  byte = 0xff
	pairKeyEnd   byte = 0x01
	maxEscapeLen      = 2
)

// [pairPrefix] + [escaped pairKey] + [escape, pairKeyEnd]
func PairKey(pairKey []byte) []byte {
	k := make([]byte, 0, 1+len(pairKey)+maxEscapeLen)
	k = append(k, pairPrefix)
	for _, b := range pairKey {
		k = append(k, b)
		if b == escape {
			k = append(k, escapedZero)
		}
	}
	k = append(k, escape, pairKeyEnd)
	return keys.EncodeChunks(k, PairChunks)
}

// parsePairKey reverses [PairKey].
func parsePairKey(k []byte) ([]byte, error) {
	raw := keys.Strip(k)
	if len(raw) < 1+maxEscapeLen || raw[0] != pairPrefix {
		return nil, fmt.Errorf("%w: pair key %x", ErrCorruptValue, k)
	}
	raw = raw[1:]
	pairKey := make([]byte, 0, len(raw)-maxEscapeLen)
	for i := 0; i < len(raw); i++ {
		if raw[i] != escape {
			pairKey = append(pairKey, raw[i])
			continue
		}
		if i+1 < len(raw) && raw[i+1] == escapedZero {
			pairKey = append(pairKey, escape)
			i++
			continue
		}
		if i+maxEscapeLen == len(raw) && raw[i+1] == pairKeyEnd {
			return pairKey, nil
		}
		break
	}
	return nil, fmt.Errorf("%w: pair key %x", ErrCorruptValue, k)
}

func GetPair(
	ctx context.Context,
	im state.Immutable,
	pairKey []byte,
) (codec.Address, bool, error) {
	v, err := im.GetValue(ctx, PairKey(pairKey))
	if errors.Is(err, database.ErrNotFound) {
		return codec.EmptyAddress, false, nil
	}
	if err != nil {
		return codec.EmptyAddress, false, err
	}
	if len(v) != codec.AddressLen {
		return codec.EmptyAddress, false, fmt.Errorf("%w: pair %x has %d bytes", ErrCorruptValue, pairKey, len(v))
	}
	return codec.Address(v), true, nil
}

func SetPair(
	ctx context.Context,
	mu state.Mutable,
	pairKey []byte,
	addr codec.Address,
) error {
	return mu.Insert(ctx, PairKey(pairKey), addr[:])
}

func DeletePair(ctx context.Context, mu state.Mutable, pairKey []byte) error {
	return mu.Remove(ctx, PairKey(pairKey))
}

// Pairs returns at most [limit] rows in ascending pair key order, starting
// strictly after [startAfter] when it is non-empty.
func Pairs(db database.Iteratee, startAfter []byte, limit int) ([]*Pair, error) {
	prefix := []byte{pairPrefix}
	var (
		it   database.Iterator
		skip []byte
	)
	if len(startAfter) > 0 {
		skip = PairKey(startAfter)
		it = db.NewIteratorWithStartAndPrefix(skip, prefix)
	} else {
		it = db.NewIteratorWithPrefix(prefix)
	}
	defer it.Release()

	pairs := make([]*Pair, 0, limit)
	for len(pairs) < limit && it.Next() {
		k := it.Key()
		if skip != nil && bytes.Equal(k, skip) {
			continue
		}
		v := it.Value()
		if len(v) != codec.AddressLen {
			return nil, fmt.Errorf("%w: pair key %x has %d bytes", ErrCorruptValue, k, len(v))
		}
		pairKey, err := parsePairKey(k)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, &Pair{
			Key:     pairKey,
			Address: codec.Address(v),
		})
	}
	return pairs, it.Error()
}
