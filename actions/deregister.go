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

var _ chain.Action = (*Deregister)(nil)

// Deregister removes a pair from the registry. The same assets may be paired
// again afterwards.
type Deregister struct {
	AssetInfos []asset.Info `json:"assetInfos"`
}

func (*Deregister) GetTypeID() uint8 {
	return consts.DeregisterID
}

func (d *Deregister) StateKeys(codec.Address) state.Keys {
	keys := state.Keys{
		string(storage.ConfigKey()): state.Read,
	}
	if pairKey, err := asset.PairKey(d.AssetInfos); err == nil {
		keys.Add(string(storage.PairKey(pairKey)), state.Read|state.Write)
	}
	return keys
}

func (d *Deregister) Execute(
	ctx context.Context,
	rt chain.Runtime,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
) (*chain.Response, error) {
	cfg, err := loadOwnerConfig(ctx, mu, actor)
	if err != nil {
		return nil, err
	}
	if err := asset.ValidateInfos(ctx, rt, d.AssetInfos); err != nil {
		return nil, err
	}
	pairKey, err := asset.PairKey(d.AssetInfos)
	if err != nil {
		return nil, err
	}
	pair, exists, err := storage.GetPair(ctx, mu, pairKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrPairNotFound, asset.Label(d.AssetInfos))
	}
	if err := storage.DeletePair(ctx, mu, pairKey); err != nil {
		return nil, err
	}

	resp := chain.NewResponse()
	if cfg.HasIncentives() {
		info, err := rt.QueryPair(ctx, pair)
		if err != nil {
			return nil, fmt.Errorf("query pair %s: %w", bech32(pair), err)
		}
		resp.AddMessage(&chain.SubMsg{
			Msg: &chain.ExecuteContract{
				Contract: cfg.Incentives,
				Msg:      (&chain.DeactivatePool{LPToken: info.LiquidityToken}).Bytes(),
			},
			ReplyOn: chain.ReplyNever,
		})
	}
	event := chain.NewEvent(EventDeregister).Add(AttrPairContractAddr, bech32(pair))
	return resp.AddEvent(event), nil
}

func (d *Deregister) Size() int {
	return asset.InfosSize(d.AssetInfos)
}

func (d *Deregister) Marshal(p *codec.Packer) {
	asset.MarshalInfos(p, d.AssetInfos)
}

func UnmarshalDeregister(p *codec.Packer) (chain.Action, error) {
	infos, err := asset.UnmarshalInfos(p)
	if err != nil {
		return nil, err
	}
	return &Deregister{AssetInfos: infos}, nil
}
