// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"fmt"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/state"
	"github.com/ava-labs/pairfactory/storage"
)

// FeeInfo is what a pair needs to charge fees.
type FeeInfo struct {
	FeeCollector codec.Address
	TotalFeeBps  uint16
	MakerFeeBps  uint16
}

// Config returns the committed config and every pair type in ascending
// discriminant order.
func (c *Controller) Config(ctx context.Context) (*storage.Config, []*storage.PairTypeEntry, error) {
	ctx, span := c.tracer.Start(ctx, "Controller.Config")
	defer span.End()

	cfg, err := storage.GetConfig(ctx, state.NewReadOnly(c.db))
	if err != nil {
		return nil, nil, err
	}
	entries, err := storage.PairTypes(c.db)
	if err != nil {
		return nil, nil, err
	}
	return cfg, entries, nil
}

// Pair returns the info reported by the pair registered for [infos].
func (c *Controller) Pair(ctx context.Context, infos []asset.Info) (*chain.PairInfo, error) {
	ctx, span := c.tracer.Start(ctx, "Controller.Pair")
	defer span.End()

	pairKey, err := asset.PairKey(infos)
	if err != nil {
		return nil, err
	}
	addr, exists, err := storage.GetPair(ctx, state.NewReadOnly(c.db), pairKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", storage.ErrPairNotFound, asset.Label(infos))
	}
	return c.host.QueryPair(ctx, addr)
}

// Pairs pages through registered pairs in ascending pair key order. The page
// starts strictly after the pair of [startAfter] when it is set.
func (c *Controller) Pairs(ctx context.Context, startAfter []asset.Info, limit int) ([]*chain.PairInfo, error) {
	ctx, span := c.tracer.Start(ctx, "Controller.Pairs")
	defer span.End()

	var cursor []byte
	if len(startAfter) > 0 {
		pairKey, err := asset.PairKey(startAfter)
		if err != nil {
			return nil, err
		}
		cursor = pairKey
	}
	pairs, err := storage.Pairs(c.db, cursor, c.pageLimit(limit))
	if err != nil {
		return nil, err
	}
	infos := make([]*chain.PairInfo, 0, len(pairs))
	for _, pair := range pairs {
		info, err := c.host.QueryPair(ctx, pair.Address)
		if err != nil {
			return nil, fmt.Errorf("query pair %s: %w", pair.Address, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (c *Controller) pageLimit(limit int) int {
	switch {
	case limit <= 0:
		return c.config.DefaultPageLimit
	case limit > c.config.MaxPageLimit:
		return c.config.MaxPageLimit
	default:
		return limit
	}
}

// FeeInfo returns the fee collector together with the fees of [pairType].
func (c *Controller) FeeInfo(ctx context.Context, pairType storage.PairType) (*FeeInfo, error) {
	ctx, span := c.tracer.Start(ctx, "Controller.FeeInfo")
	defer span.End()

	im := state.NewReadOnly(c.db)
	cfg, err := storage.GetConfig(ctx, im)
	if err != nil {
		return nil, err
	}
	entry, exists, err := storage.GetPairType(ctx, im, pairType)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", storage.ErrPairTypeNotFound, pairType)
	}
	return &FeeInfo{
		FeeCollector: cfg.FeeCollector,
		TotalFeeBps:  entry.TotalFeeBps,
		MakerFeeBps:  entry.MakerFeeBps,
	}, nil
}

// DisabledPairTypes lists the pair types that are disabled or excluded from
// generator rewards.
func (c *Controller) DisabledPairTypes(ctx context.Context) ([]storage.PairType, error) {
	_, span := c.tracer.Start(ctx, "Controller.DisabledPairTypes")
	defer span.End()

	entries, err := storage.PairTypes(c.db)
	if err != nil {
		return nil, err
	}
	var disabled []storage.PairType
	for _, entry := range entries {
		if entry.Disabled || entry.GeneratorDisabled {
			disabled = append(disabled, entry.PairType)
		}
	}
	return disabled, nil
}

// Version returns the record written when the store was initialized.
func (c *Controller) Version(ctx context.Context) (*storage.Version, error) {
	v, exists, err := storage.GetVersion(ctx, state.NewReadOnly(c.db))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, storage.ErrConfigNotFound
	}
	return v, nil
}
