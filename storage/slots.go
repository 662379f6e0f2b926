// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/keys"
	"github.com/ava-labs/pairfactory/state"
)

// [pendingCreationPrefix]
func PendingCreationKey() []byte {
	return keys.EncodeChunks([]byte{pendingCreationPrefix}, PendingCreationChunks)
}

// GetPendingCreation returns the pair key of the creation in flight.
func GetPendingCreation(ctx context.Context, im state.Immutable) ([]byte, bool, error) {
	v, err := im.GetValue(ctx, PendingCreationKey())
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func SetPendingCreation(ctx context.Context, mu state.Mutable, pairKey []byte) error {
	return mu.Insert(ctx, PendingCreationKey(), pairKey)
}

func ClearPendingCreation(ctx context.Context, mu state.Mutable) error {
	return mu.Remove(ctx, PendingCreationKey())
}

// [lastCreationPrefix]
func LastCreationKey() []byte {
	return keys.EncodeChunks([]byte{lastCreationPrefix}, LastCreationChunks)
}

// GetLastCreation returns the pair key of the most recently finalized
// creation. Unlike the pending slot it outlives the request.
func GetLastCreation(ctx context.Context, im state.Immutable) ([]byte, bool, error) {
	v, err := im.GetValue(ctx, LastCreationKey())
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func SetLastCreation(ctx context.Context, mu state.Mutable, pairKey []byte) error {
	return mu.Insert(ctx, LastCreationKey(), pairKey)
}

// OwnershipProposal offers the owner role to [Owner] until [Expiry] (unix
// seconds, inclusive).
type OwnershipProposal struct {
	Owner  codec.Address
	Expiry int64
}

// Expired reports whether the proposal can no longer be claimed at [now].
func (o *OwnershipProposal) Expired(now int64) bool {
	return now > o.Expiry
}

// [ownershipProposalPrefix]
func OwnershipProposalKey() []byte {
	return keys.EncodeChunks([]byte{ownershipProposalPrefix}, OwnershipProposalChunks)
}

func GetOwnershipProposal(ctx context.Context, im state.Immutable) (*OwnershipProposal, bool, error) {
	v, err := im.GetValue(ctx, OwnershipProposalKey())
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	p := codec.NewReader(v, len(v))
	var o OwnershipProposal
	p.UnpackAddress(&o.Owner)
	o.Expiry = p.UnpackInt64(false)
	if err := p.Err(); err != nil {
		return nil, false, fmt.Errorf("%w: ownership proposal: %w", ErrCorruptValue, err)
	}
	return &o, true, nil
}

func SetOwnershipProposal(ctx context.Context, mu state.Mutable, o *OwnershipProposal) error {
	p := codec.NewWriter(codec.AddressLen+consts.Int64Len, codec.AddressLen+consts.Int64Len)
	p.PackAddress(o.Owner)
	p.PackInt64(o.Expiry)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, OwnershipProposalKey(), p.Bytes())
}

func ClearOwnershipProposal(ctx context.Context, mu state.Mutable) error {
	return mu.Remove(ctx, OwnershipProposalKey())
}

// Version names the registry implementation that initialized the store.
type Version struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}

// [versionPrefix]
func VersionKey() []byte {
	return keys.EncodeChunks([]byte{versionPrefix}, VersionChunks)
}

func SetVersion(ctx context.Context, mu state.Mutable, v *Version) error {
	size := codec.StringLen(v.Contract) + codec.StringLen(v.Version)
	p := codec.NewWriter(size, size)
	p.PackString(v.Contract)
	p.PackString(v.Version)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, VersionKey(), p.Bytes())
}

func GetVersion(ctx context.Context, im state.Immutable) (*Version, bool, error) {
	b, err := im.GetValue(ctx, VersionKey())
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	p := codec.NewReader(b, len(b))
	v := &Version{
		Contract: p.UnpackString(true),
		Version:  p.UnpackString(true),
	}
	if err := p.Err(); err != nil {
		return nil, false, fmt.Errorf("%w: version: %w", ErrCorruptValue, err)
	}
	return v, true, nil
}
