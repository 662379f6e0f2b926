// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"encoding/binary"

	"github.com/ava-labs/pairfactory/consts"
)

const chunkSize = 64 // bytes

// Valid reports whether [key] is long enough to carry a chunk suffix.
func Valid(key []byte) bool {
	return len(key) >= consts.Uint16Len
}

// MaxChunks returns the chunk budget encoded in the last two bytes of [key].
func MaxChunks(key []byte) (uint16, bool) {
	l := len(key)
	if l < consts.Uint16Len {
		return 0, false
	}
	return binary.BigEndian.Uint16(key[l-consts.Uint16Len:]), true
}

func NumChunks(value []byte) (uint16, bool) {
	return numChunks(len(value))
}

func numChunks(valueLen int) (uint16, bool) {
	if valueLen == 0 {
		return 0, true
	}
	raw := valueLen/chunkSize + 1
	if raw > int(consts.MaxUint16) {
		return 0, false
	}
	return uint16(raw), true
}

// VerifyValue reports whether [value] fits inside the chunk budget of [key].
func VerifyValue(key []byte, value []byte) bool {
	valueChunks, ok := NumChunks(value)
	if !ok {
		return false
	}
	keyChunks, ok := MaxChunks(key)
	if !ok {
		return false
	}
	return valueChunks <= keyChunks
}

// Encode appends the number of chunks needed to hold [maxSize] bytes.
func Encode(key []byte, maxSize int) ([]byte, bool) {
	n, ok := numChunks(maxSize)
	if !ok {
		return nil, false
	}
	return EncodeChunks(key, n), true
}

func EncodeChunks(key []byte, maxChunks uint16) []byte {
	k := make([]byte, 0, len(key)+consts.Uint16Len)
	k = append(k, key...)
	return binary.BigEndian.AppendUint16(k, maxChunks)
}

// Strip removes the chunk suffix from [key].
func Strip(key []byte) []byte {
	if !Valid(key) {
		return nil
	}
	return key[:len(key)-consts.Uint16Len]
}
