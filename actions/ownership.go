// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/state"
	"github.com/ava-labs/pairfactory/storage"
)

var (
	_ chain.Action = (*ProposeOwner)(nil)
	_ chain.Action = (*DropOwnershipProposal)(nil)
	_ chain.Action = (*ClaimOwnership)(nil)
)

// ProposeOwner offers the owner role to [Owner] for [ExpiresIn] seconds. Any
// earlier proposal is replaced.
type ProposeOwner struct {
	Owner     codec.Address `json:"owner"`
	ExpiresIn uint64        `json:"expiresIn"`
}

func (*ProposeOwner) GetTypeID() uint8 {
	return consts.ProposeOwnerID
}

func (*ProposeOwner) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.ConfigKey()):            state.Read,
		string(storage.OwnershipProposalKey()): state.All,
	}
}

func (p *ProposeOwner) Execute(
	ctx context.Context,
	_ chain.Runtime,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
) (*chain.Response, error) {
	cfg, err := loadOwnerConfig(ctx, mu, actor)
	if err != nil {
		return nil, err
	}
	if p.Owner == codec.EmptyAddress {
		return nil, fmt.Errorf("%w: proposed owner is the empty address", ErrInvalidAddress)
	}
	if p.Owner == cfg.Owner {
		return nil, ErrSameOwner
	}
	if p.ExpiresIn > MaxProposalTTL {
		return nil, fmt.Errorf("%w: %d > %d seconds", ErrProposalTTLTooLong, p.ExpiresIn, MaxProposalTTL)
	}
	proposal := &storage.OwnershipProposal{
		Owner:  p.Owner,
		Expiry: timestamp + int64(p.ExpiresIn),
	}
	if err := storage.SetOwnershipProposal(ctx, mu, proposal); err != nil {
		return nil, err
	}
	event := chain.NewEvent(EventProposeOwner).
		Add(AttrNewOwner, bech32(p.Owner)).
		Add(AttrExpiresAt, strconv.FormatInt(proposal.Expiry, 10))
	return chain.NewResponse().AddEvent(event), nil
}

func (*ProposeOwner) Size() int {
	return codec.AddressLen + consts.Uint64Len
}

func (p *ProposeOwner) Marshal(pk *codec.Packer) {
	pk.PackAddress(p.Owner)
	pk.PackUint64(p.ExpiresIn)
}

func UnmarshalProposeOwner(p *codec.Packer) (chain.Action, error) {
	var propose ProposeOwner
	p.UnpackAddress(&propose.Owner)
	propose.ExpiresIn = p.UnpackUint64(false)
	return &propose, p.Err()
}

// DropOwnershipProposal withdraws the open proposal, if any.
type DropOwnershipProposal struct{}

func (*DropOwnershipProposal) GetTypeID() uint8 {
	return consts.DropOwnershipProposalID
}

func (*DropOwnershipProposal) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.ConfigKey()):            state.Read,
		string(storage.OwnershipProposalKey()): state.Read | state.Write,
	}
}

func (*DropOwnershipProposal) Execute(
	ctx context.Context,
	_ chain.Runtime,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
) (*chain.Response, error) {
	if _, err := loadOwnerConfig(ctx, mu, actor); err != nil {
		return nil, err
	}
	if err := storage.ClearOwnershipProposal(ctx, mu); err != nil {
		return nil, err
	}
	return chain.NewResponse().AddEvent(chain.NewEvent(EventDropOwnershipProposal)), nil
}

func (*DropOwnershipProposal) Size() int {
	return 0
}

func (*DropOwnershipProposal) Marshal(*codec.Packer) {}

func UnmarshalDropOwnershipProposal(*codec.Packer) (chain.Action, error) {
	return &DropOwnershipProposal{}, nil
}

// ClaimOwnership makes the proposed owner the owner.
type ClaimOwnership struct{}

func (*ClaimOwnership) GetTypeID() uint8 {
	return consts.ClaimOwnershipID
}

func (*ClaimOwnership) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.ConfigKey()):            state.Read | state.Write,
		string(storage.OwnershipProposalKey()): state.Read | state.Write,
	}
}

func (*ClaimOwnership) Execute(
	ctx context.Context,
	_ chain.Runtime,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
) (*chain.Response, error) {
	proposal, exists, err := storage.GetOwnershipProposal(ctx, mu)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOwnershipProposalNotFound
	}
	if proposal.Expired(timestamp) {
		return nil, fmt.Errorf("%w: expired at %d", ErrOwnershipProposalNotFound, proposal.Expiry)
	}
	if actor != proposal.Owner {
		return nil, fmt.Errorf("%w: %s is not the proposed owner", ErrUnauthorized, bech32(actor))
	}
	cfg, err := storage.GetConfig(ctx, mu)
	if err != nil {
		return nil, err
	}
	cfg.Owner = actor
	if err := storage.SetConfig(ctx, mu, cfg); err != nil {
		return nil, err
	}
	if err := storage.ClearOwnershipProposal(ctx, mu); err != nil {
		return nil, err
	}
	event := chain.NewEvent(EventClaimOwnership).Add(AttrNewOwner, bech32(actor))
	return chain.NewResponse().AddEvent(event), nil
}

func (*ClaimOwnership) Size() int {
	return 0
}

func (*ClaimOwnership) Marshal(*codec.Packer) {}

func UnmarshalClaimOwnership(*codec.Packer) (chain.Action, error) {
	return &ClaimOwnership{}, nil
}
