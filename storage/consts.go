// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

// Key prefixes
const (
	configPrefix byte = iota
	pairTypePrefix
	pairPrefix
	pendingCreationPrefix
	ownershipProposalPrefix
	versionPrefix
	lastCreationPrefix
)

// Chunks
const (
	ConfigChunks            uint16 = 3
	PairTypeChunks          uint16 = 2
	PairChunks              uint16 = 1
	PendingCreationChunks   uint16 = 17
	OwnershipProposalChunks uint16 = 1
	VersionChunks           uint16 = 2
	LastCreationChunks      uint16 = 17
)

const (
	// MaxFeeBps is the upper bound of total plus maker fee.
	MaxFeeBps = 10_000

	MaxPairTypeNameLen = 64

	// ContractName is recorded alongside [consts.Version] at initialization.
	ContractName = "pairfactory-registry"
)
