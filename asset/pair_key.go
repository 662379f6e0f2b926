// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
)

// PairKey returns the canonical key of an asset set: every asset encoding
// sorted ascending and concatenated. The result does not depend on the order
// of [infos]. Sets with fewer than two assets or repeated assets have no key.
func PairKey(infos []Info) ([]byte, error) {
	if len(infos) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 assets, got %d", ErrInvalidAssetSet, len(infos))
	}
	encoded := make([][]byte, len(infos))
	size := 0
	for i, info := range infos {
		encoded[i] = info.Encode()
		size += len(encoded[i])
	}
	slices.SortFunc(encoded, bytes.Compare)
	key := make([]byte, 0, size)
	for i, e := range encoded {
		if i > 0 && bytes.Equal(e, encoded[i-1]) {
			return nil, fmt.Errorf("%w: duplicate asset %x", ErrInvalidAssetSet, e)
		}
		key = append(key, e...)
	}
	return key, nil
}

// Sorted returns a copy of [infos] in pair key order.
func Sorted(infos []Info) []Info {
	sorted := slices.Clone(infos)
	slices.SortFunc(sorted, func(a, b Info) int {
		return bytes.Compare(a.Encode(), b.Encode())
	})
	return sorted
}

// ParsePairKey decodes the assets of a key produced by [PairKey], in key
// order.
func ParsePairKey(key []byte) ([]Info, error) {
	p := codec.NewReader(key, consts.NetworkSizeLimit)
	var infos []Info
	for !p.Empty() {
		info, err := Unmarshal(p)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if len(infos) < 2 {
		return nil, fmt.Errorf("%w: key holds %d assets", ErrInvalidAssetSet, len(infos))
	}
	return infos, nil
}
