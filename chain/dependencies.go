// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/state"
)

// Runtime is what an [Action] may ask of its environment while it executes.
type Runtime interface {
	asset.Validator

	// Self is the address of the registry.
	Self() codec.Address

	// Funds are the coins attached to the current request.
	Funds() []Coin

	// QueryPair performs a synchronous read of a deployed pair contract.
	QueryPair(ctx context.Context, pair codec.Address) (*PairInfo, error)
}

type Action interface {
	codec.Typed

	// StateKeys is a full enumeration of all database keys that could be
	// touched during execution by [actor].
	//
	// All keys specified must be suffixed with the number of chunks that
	// could ever be read from that key (formatted as a big-endian uint16).
	StateKeys(actor codec.Address) state.Keys

	// Size is the number of bytes [Marshal] writes.
	Size() int

	Marshal(p *codec.Packer)

	// Execute applies the action to [mu]. If an error is returned, every
	// change made by the enclosing request is discarded.
	//
	// The returned [Response] lists the calls to issue to collaborators and
	// the events to publish once the request commits.
	Execute(
		ctx context.Context,
		rt Runtime,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
	) (*Response, error)
}

// ReplyHandler finalizes calls that requested a callback.
type ReplyHandler interface {
	Reply(ctx context.Context, rt Runtime, mu state.Mutable, reply *Reply) (*Response, error)
}

// Call is an action issued by a contract while the enclosing request is
// still running.
type Call struct {
	Actor  codec.Address
	Action Action
}
