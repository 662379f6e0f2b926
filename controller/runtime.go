// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
)

var _ chain.Runtime = (*runtime)(nil)

type runtime struct {
	asset.Validator

	self  codec.Address
	funds []chain.Coin
	host  Host
}

func (r *runtime) Self() codec.Address {
	return r.self
}

func (r *runtime) Funds() []chain.Coin {
	return r.funds
}

func (r *runtime) QueryPair(ctx context.Context, pair codec.Address) (*chain.PairInfo, error) {
	return r.host.QueryPair(ctx, pair)
}

// nested returns the runtime seen by calls that carry no funds.
func (r *runtime) nested() *runtime {
	return &runtime{
		Validator: r.Validator,
		self:      r.self,
		host:      r.host,
	}
}
