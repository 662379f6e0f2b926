// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=mock_host.go . Host

package controller

import (
	"context"

	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
)

// Host executes the calls the registry issues to other contracts.
type Host interface {
	// Instantiate deploys a pair contract on behalf of [sender].
	Instantiate(ctx context.Context, sender codec.Address, msg *chain.InstantiatePair) (*chain.InstantiateResult, error)

	// Execute calls an existing contract. Its result is never delivered back.
	Execute(ctx context.Context, sender codec.Address, msg *chain.ExecuteContract) error

	QueryPair(ctx context.Context, pair codec.Address) (*chain.PairInfo, error)
}
