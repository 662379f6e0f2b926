// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"

	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/controller"
	"github.com/ava-labs/pairfactory/storage"
)

type Controller interface {
	Tracer() trace.Tracer
	Config(context.Context) (*storage.Config, []*storage.PairTypeEntry, error)
	Pair(context.Context, []asset.Info) (*chain.PairInfo, error)
	Pairs(ctx context.Context, startAfter []asset.Info, limit int) ([]*chain.PairInfo, error)
	FeeInfo(context.Context, storage.PairType) (*controller.FeeInfo, error)
	DisabledPairTypes(context.Context) ([]storage.PairType, error)
	Version(context.Context) (*storage.Version, error)
	SubmitBytes(ctx context.Context, actor codec.Address, action []byte, funds []chain.Coin) (*chain.Result, error)
}

// Results returns recently committed requests, oldest first.
type Results interface {
	Items() []*chain.Result
}
