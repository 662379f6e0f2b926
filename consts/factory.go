// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/version"
)

const (
	Name = "pairfactory"
	HRP  = "pair"
)

// Address type IDs. The first byte of every [codec.Address] identifies what
// kind of actor it is.
const (
	AccountAddressID uint8 = iota
	FactoryAddressID
	PairAddressID
	LiquidityTokenAddressID
	TokenAddressID
)

// Action type IDs
const (
	UpdateConfigID uint8 = iota
	UpdatePairTypeID
	CreatePairID
	DeregisterID
	ProposeOwnerID
	DropOwnershipProposalID
	ClaimOwnershipID
)

// Message type IDs for calls issued to collaborators
const (
	InstantiatePairID uint8 = iota
	ExecuteContractID
)

// Payload type IDs understood by the incentives contract
const (
	DeactivatePoolID uint8 = iota
)

var ID ids.ID

func init() {
	b := make([]byte, ids.IDLen)
	copy(b, []byte(Name))
	vmID, err := ids.ToID(b)
	if err != nil {
		panic(err)
	}
	ID = vmID
}

var Version = &version.Semantic{
	Major: 1,
	Minor: 4,
	Patch: 0,
}
