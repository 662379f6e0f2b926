// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/state"
	"github.com/ava-labs/pairfactory/storage"
)

// loadOwnerConfig returns the config if [actor] is its owner.
func loadOwnerConfig(ctx context.Context, im state.Immutable, actor codec.Address) (*storage.Config, error) {
	cfg, err := storage.GetConfig(ctx, im)
	if err != nil {
		return nil, err
	}
	if actor != cfg.Owner {
		return nil, fmt.Errorf("%w: %s is not the owner", ErrUnauthorized, bech32(actor))
	}
	return cfg, nil
}

func bech32(addr codec.Address) string {
	saddr, err := codec.AddressBech32(consts.HRP, addr)
	if err != nil {
		return addr.String()
	}
	return saddr
}

// parseAddress turns a bech32 identity into an [codec.Address]. The empty
// address names nobody and is rejected.
func parseAddress(field, saddr string) (codec.Address, error) {
	addr, err := codec.ParseAddressBech32(consts.HRP, saddr)
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("%w: %s %q: %w", ErrInvalidAddress, field, saddr, err)
	}
	if addr == codec.EmptyAddress {
		return codec.EmptyAddress, fmt.Errorf("%w: %s is the empty address", ErrInvalidAddress, field)
	}
	return addr, nil
}

// ParseAddress is [parseAddress] for callers outside the package.
func ParseAddress(field, saddr string) (codec.Address, error) {
	return parseAddress(field, saddr)
}
