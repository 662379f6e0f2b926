// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/codec"
)

// PairInfo is what a deployed pair contract reports about itself.
type PairInfo struct {
	ContractAddr   codec.Address
	AssetInfos     []asset.Info
	LiquidityToken codec.Address
	PairType       string
}
