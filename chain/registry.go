// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
)

type ActionRegistry = *codec.TypeParser[Action]

// MarshalAction writes the type ID of [a] followed by its fields.
func MarshalAction(a Action) ([]byte, error) {
	p := codec.NewWriter(consts.ByteLen+a.Size(), consts.NetworkSizeLimit)
	p.PackByte(a.GetTypeID())
	a.Marshal(p)
	return p.Bytes(), p.Err()
}

// UnmarshalAction decodes an action written by [MarshalAction]. Trailing
// bytes are rejected.
func UnmarshalAction(registry ActionRegistry, b []byte) (Action, error) {
	p := codec.NewReader(b, consts.NetworkSizeLimit)
	a, err := registry.Unmarshal(p)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, codec.ErrExtraBytes
	}
	return a, nil
}
