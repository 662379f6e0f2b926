// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/state"
	"github.com/ava-labs/pairfactory/storage"
)

var _ chain.Action = (*CreatePair)(nil)

// CreatePair starts the deployment of a pair contract. The pair is only
// registered once [Factory] receives the deployment callback.
type CreatePair struct {
	PairType   storage.PairType `json:"pairType"`
	AssetInfos []asset.Info     `json:"assetInfos"`
	InitParams codec.Bytes      `json:"initParams,omitempty"`
}

func (*CreatePair) GetTypeID() uint8 {
	return consts.CreatePairID
}

func (c *CreatePair) StateKeys(codec.Address) state.Keys {
	keys := state.Keys{
		string(storage.ConfigKey()):             state.Read,
		string(storage.PairTypeKey(c.PairType)): state.Read,
		string(storage.PendingCreationKey()):    state.All,
	}
	// The callback registers the pair in the same request.
	if pairKey, err := asset.PairKey(c.AssetInfos); err == nil {
		keys.Add(string(storage.PairKey(pairKey)), state.All)
	}
	return keys
}

func (c *CreatePair) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
) (*chain.Response, error) {
	if err := asset.ValidateInfos(ctx, rt, c.AssetInfos); err != nil {
		return nil, err
	}
	if len(c.InitParams) > chain.MaxInitParamsSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInitParamsTooLarge, len(c.InitParams))
	}
	label := asset.Label(c.AssetInfos)
	pairKey, err := asset.PairKey(c.AssetInfos)
	if err != nil {
		return nil, err
	}
	pair, exists, err := storage.GetPair(ctx, mu, pairKey)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s at %s", ErrPairAlreadyExists, label, bech32(pair))
	}
	entry, exists, err := storage.GetPairType(ctx, mu, c.PairType)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrPairTypeNotFound, c.PairType)
	}
	cfg, err := storage.GetConfig(ctx, mu)
	if err != nil {
		return nil, err
	}
	if entry.Permissioned && actor != cfg.Owner {
		return nil, fmt.Errorf("%w: %s pairs are permissioned", ErrUnauthorized, c.PairType)
	}
	if entry.Disabled {
		return nil, fmt.Errorf("%w: %s", ErrPairTypeDisabled, c.PairType)
	}
	if pending, exists, err := storage.GetPendingCreation(ctx, mu); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%w: key %x", ErrCreationPending, pending)
	}
	if err := storage.SetPendingCreation(ctx, mu, pairKey); err != nil {
		return nil, err
	}

	msg := &chain.InstantiatePair{
		TemplateID: entry.TemplateID,
		Admin:      cfg.Owner,
		Label:      PairLabel,
		Funds:      rt.Funds(),
		Msg: &chain.PairInstantiateMsg{
			PairType:        entry.PairType.String(),
			AssetInfos:      c.AssetInfos,
			TokenTemplateID: cfg.TokenTemplateID,
			Factory:         rt.Self(),
			InitParams:      c.InitParams,
		},
	}
	return chain.NewResponse().
		AddMessage(&chain.SubMsg{
			ID:      InstantiatePairReplyID,
			Msg:     msg,
			ReplyOn: chain.ReplySuccess,
		}).
		AddEvent(chain.NewEvent(EventCreatePair).Add(AttrPair, label)), nil
}

func (c *CreatePair) Size() int {
	return codec.StringLen(c.PairType.String()) +
		asset.InfosSize(c.AssetInfos) +
		codec.BytesLen(c.InitParams)
}

func (c *CreatePair) Marshal(p *codec.Packer) {
	p.PackString(c.PairType.String())
	asset.MarshalInfos(p, c.AssetInfos)
	p.PackBytes(c.InitParams)
}

func UnmarshalCreatePair(p *codec.Packer) (chain.Action, error) {
	var c CreatePair
	name := p.UnpackString(true)
	if err := p.Err(); err != nil {
		return nil, err
	}
	pairType, err := storage.ParsePairType(name)
	if err != nil {
		return nil, err
	}
	c.PairType = pairType
	infos, err := asset.UnmarshalInfos(p)
	if err != nil {
		return nil, err
	}
	c.AssetInfos = infos
	var params []byte
	p.UnpackBytes(chain.MaxInitParamsSize, false, &params)
	if len(params) > 0 {
		c.InitParams = params
	}
	return &c, p.Err()
}
