// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/state"
	"github.com/ava-labs/pairfactory/storage"
)

var _ chain.Action = (*UpdatePairType)(nil)

// UpdatePairType creates or replaces the profile of [Entry.PairType].
type UpdatePairType struct {
	Entry storage.PairTypeEntry `json:"entry"`
}

func (*UpdatePairType) GetTypeID() uint8 {
	return consts.UpdatePairTypeID
}

func (u *UpdatePairType) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.ConfigKey()):                   state.Read,
		string(storage.PairTypeKey(u.Entry.PairType)): state.All,
	}
}

func (u *UpdatePairType) Execute(
	ctx context.Context,
	_ chain.Runtime,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
) (*chain.Response, error) {
	if _, err := loadOwnerConfig(ctx, mu, actor); err != nil {
		return nil, err
	}
	if err := u.Entry.Validate(); err != nil {
		return nil, err
	}
	if err := storage.SetPairType(ctx, mu, &u.Entry); err != nil {
		return nil, err
	}
	event := chain.NewEvent(EventUpdatePairType).Add(AttrPairType, u.Entry.PairType.String())
	return chain.NewResponse().AddEvent(event), nil
}

func (u *UpdatePairType) Size() int {
	return u.Entry.Size()
}

func (u *UpdatePairType) Marshal(p *codec.Packer) {
	u.Entry.Marshal(p)
}

func UnmarshalUpdatePairType(p *codec.Packer) (chain.Action, error) {
	entry, err := storage.UnmarshalPairTypeEntry(p)
	if err != nil {
		return nil, err
	}
	return &UpdatePairType{Entry: *entry}, nil
}
