// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"errors"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/storage"
)

var (
	// Authorization and configuration errors
	ErrUnknownAction     = errors.New("unknown action")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidAddress    = errors.New("invalid address")
	ErrDuplicatePairType = errors.New("duplicate pair type")
	ErrInvalidFeeBps     = storage.ErrInvalidFeeBps
	ErrPairTypeNotFound  = storage.ErrPairTypeNotFound

	// Pair lifecycle errors
	ErrInvalidAssetSet         = asset.ErrInvalidAssetSet
	ErrPairAlreadyExists       = errors.New("pair already exists")
	ErrPairTypeDisabled        = errors.New("pair type disabled")
	ErrCreationPending         = errors.New("pair creation already pending")
	ErrInitParamsTooLarge      = errors.New("init params too large")
	ErrUnrecognizedCallback    = errors.New("unrecognized callback")
	ErrPendingCreationNotFound = errors.New("pending creation not found")
	ErrPairAlreadyRegistered   = errors.New("pair already registered")
	ErrMalformedCallback       = errors.New("malformed callback data")
	ErrPairNotFound            = storage.ErrPairNotFound

	// Ownership errors
	ErrSameOwner                 = errors.New("new owner cannot be the current owner")
	ErrProposalTTLTooLong        = errors.New("proposal ttl too long")
	ErrOwnershipProposalNotFound = errors.New("ownership proposal not found")
)
