// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"strconv"

	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/state"
	"github.com/ava-labs/pairfactory/storage"
)

var _ chain.Action = (*UpdateConfig)(nil)

// UpdateConfig overwrites every present field of the config. A nil template
// id and empty strings are absent.
type UpdateConfig struct {
	TokenTemplateID *uint64 `json:"tokenTemplateID,omitempty"`
	FeeCollector    string  `json:"feeCollector"`
	Incentives      string  `json:"incentives"`
	CoinRegistry    string  `json:"coinRegistry"`
}

func (*UpdateConfig) GetTypeID() uint8 {
	return consts.UpdateConfigID
}

func (*UpdateConfig) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.ConfigKey()): state.Read | state.Write,
	}
}

func (u *UpdateConfig) Execute(
	ctx context.Context,
	_ chain.Runtime,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
) (*chain.Response, error) {
	cfg, err := loadOwnerConfig(ctx, mu, actor)
	if err != nil {
		return nil, err
	}
	event := chain.NewEvent(EventUpdateConfig)
	if u.TokenTemplateID != nil {
		cfg.TokenTemplateID = *u.TokenTemplateID
		event.Add("token_template_id", strconv.FormatUint(*u.TokenTemplateID, 10))
	}
	fields := []struct {
		name  string
		value string
		dest  *codec.Address
	}{
		{name: "fee_collector", value: u.FeeCollector, dest: &cfg.FeeCollector},
		{name: "incentives", value: u.Incentives, dest: &cfg.Incentives},
		{name: "coin_registry", value: u.CoinRegistry, dest: &cfg.CoinRegistry},
	}
	for _, f := range fields {
		if len(f.value) == 0 {
			continue
		}
		addr, err := parseAddress(f.name, f.value)
		if err != nil {
			return nil, err
		}
		*f.dest = addr
		event.Add(f.name, f.value)
	}
	if err := storage.SetConfig(ctx, mu, cfg); err != nil {
		return nil, err
	}
	return chain.NewResponse().AddEvent(event), nil
}

// Size counts the presence bitset and the fields that are set.
func (u *UpdateConfig) Size() int {
	size := consts.Uint64Len
	if u.TokenTemplateID != nil {
		size += consts.Uint64Len
	}
	for _, s := range []string{u.FeeCollector, u.Incentives, u.CoinRegistry} {
		if len(s) > 0 {
			size += codec.StringLen(s)
		}
	}
	return size
}

func (u *UpdateConfig) Marshal(p *codec.Packer) {
	op := codec.NewOptionalWriter(u.Size())
	op.PackUint64(u.TokenTemplateID)
	op.PackString(u.FeeCollector)
	op.PackString(u.Incentives)
	op.PackString(u.CoinRegistry)
	p.PackOptional(op)
}

func UnmarshalUpdateConfig(p *codec.Packer) (chain.Action, error) {
	var u UpdateConfig
	op := p.NewOptionalReader()
	u.TokenTemplateID = op.UnpackUint64()
	u.FeeCollector = op.UnpackString()
	u.Incentives = op.UnpackString()
	u.CoinRegistry = op.UnpackString()
	op.Done()
	return &u, op.Err()
}
