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

// Config is the single factory-wide configuration record. Unset optional
// addresses are [codec.EmptyAddress].
type Config struct {
	Owner           codec.Address
	TokenTemplateID uint64
	FeeCollector    codec.Address
	Incentives      codec.Address
	CoinRegistry    codec.Address
}

func (c *Config) HasFeeCollector() bool {
	return c.FeeCollector != codec.EmptyAddress
}

func (c *Config) HasIncentives() bool {
	return c.Incentives != codec.EmptyAddress
}

func (*Config) Size() int {
	return 4*codec.AddressLen + 2*consts.Uint64Len
}

func (c *Config) Marshal(p *codec.Packer) {
	p.PackAddress(c.Owner)
	p.PackUint64(c.TokenTemplateID)
	op := codec.NewOptionalWriter(2 * codec.AddressLen)
	op.PackAddress(c.FeeCollector)
	op.PackAddress(c.Incentives)
	p.PackOptional(op)
	p.PackAddress(c.CoinRegistry)
}

func UnmarshalConfig(p *codec.Packer) (*Config, error) {
	var c Config
	p.UnpackAddress(&c.Owner)
	c.TokenTemplateID = p.UnpackUint64(false)
	op := p.NewOptionalReader()
	op.UnpackAddress(&c.FeeCollector)
	op.UnpackAddress(&c.Incentives)
	op.Done()
	if err := op.Err(); err != nil {
		return nil, err
	}
	p.UnpackAddress(&c.CoinRegistry)
	return &c, p.Err()
}

// [configPrefix]
func ConfigKey() []byte {
	return keys.EncodeChunks([]byte{configPrefix}, ConfigChunks)
}

func GetConfig(ctx context.Context, im state.Immutable) (*Config, error) {
	v, err := im.GetValue(ctx, ConfigKey())
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, err
	}
	c, err := UnmarshalConfig(codec.NewReader(v, len(v)))
	if err != nil {
		return nil, fmt.Errorf("%w: config: %w", ErrCorruptValue, err)
	}
	return c, nil
}

func SetConfig(ctx context.Context, mu state.Mutable, c *Config) error {
	p := codec.NewWriter(c.Size(), consts.NetworkSizeLimit)
	c.Marshal(p)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, ConfigKey(), p.Bytes())
}
