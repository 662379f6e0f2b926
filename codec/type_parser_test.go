// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/pairfactory/consts"
)

type blob interface {
	Typed
	Value() uint64
}

type blobA struct{ v uint64 }

func (*blobA) GetTypeID() uint8 { return 0 }

func (b *blobA) Value() uint64 { return b.v }

type blobB struct{ v uint64 }

func (*blobB) GetTypeID() uint8 { return 1 }

func (b *blobB) Value() uint64 { return b.v * 2 }

func unmarshalBlobA(p *Packer) (blob, error) {
	return &blobA{v: p.UnpackUint64(true)}, p.Err()
}

func unmarshalBlobB(p *Packer) (blob, error) {
	return &blobB{v: p.UnpackUint64(true)}, p.Err()
}

func TestTypeParser(t *testing.T) {
	require := require.New(t)
	tp := NewTypeParser[blob]()

	require.NoError(tp.Register(&blobA{}, unmarshalBlobA))
	require.NoError(tp.Register(&blobB{}, unmarshalBlobB))
	require.ErrorIs(tp.Register(&blobA{}, unmarshalBlobA), ErrDuplicateItem)

	name, ok := tp.Name(1)
	require.True(ok)
	require.Equal("*codec.blobB", name)

	wp := NewWriter(16, consts.NetworkSizeLimit)
	wp.PackByte(1)
	wp.PackUint64(21)
	b, err := tp.Unmarshal(NewReader(wp.Bytes(), consts.NetworkSizeLimit))
	require.NoError(err)
	require.Equal(uint64(42), b.Value())

	_, err = tp.Unmarshal(NewReader([]byte{9}, consts.NetworkSizeLimit))
	require.ErrorIs(err, ErrUnknownType)
}
