// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"errors"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
)

var (
	_ chain.Runtime = (*Runtime)(nil)

	ErrUnknownPair = errors.New("unknown pair")
)

// Runtime is a fixed [chain.Runtime] for action tests.
type Runtime struct {
	Address   codec.Address
	Coins     []chain.Coin
	Pairs     map[codec.Address]*chain.PairInfo
	Validator asset.Validator
}

func (r *Runtime) Self() codec.Address {
	return r.Address
}

func (r *Runtime) Funds() []chain.Coin {
	return r.Coins
}

func (r *Runtime) QueryPair(_ context.Context, pair codec.Address) (*chain.PairInfo, error) {
	info, ok := r.Pairs[pair]
	if !ok {
		return nil, ErrUnknownPair
	}
	return info, nil
}

func (r *Runtime) ValidateAsset(ctx context.Context, info asset.Info) error {
	if r.Validator == nil {
		return asset.DefaultValidator{}.ValidateAsset(ctx, info)
	}
	return r.Validator.ValidateAsset(ctx, info)
}
