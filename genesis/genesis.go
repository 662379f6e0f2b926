// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/pairfactory/actions"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/state"
	"github.com/ava-labs/pairfactory/storage"
)

type Genesis struct {
	// Address prefix
	HRP string `json:"hrp"`

	// Config (bech32 addresses)
	Owner           string `json:"owner"`
	TokenTemplateID uint64 `json:"tokenTemplateID"`
	FeeCollector    string `json:"feeCollector,omitempty"`
	Incentives      string `json:"incentives,omitempty"`
	CoinRegistry    string `json:"coinRegistry"`

	// Pair types available from the start
	PairTypes []*storage.PairTypeEntry `json:"pairTypes"`
}

func Default() *Genesis {
	return &Genesis{
		HRP:             consts.HRP,
		TokenTemplateID: 1,
		PairTypes: []*storage.PairTypeEntry{
			{
				PairType:    storage.XYK,
				TemplateID:  2,
				TotalFeeBps: 30,
				MakerFeeBps: 10,
			},
			{
				PairType:    storage.Stable,
				TemplateID:  3,
				TotalFeeBps: 5,
				MakerFeeBps: 2,
			},
		},
	}
}

func New(b []byte) (*Genesis, error) {
	g := Default()
	if len(b) > 0 {
		if err := json.Unmarshal(b, g); err != nil {
			return nil, fmt.Errorf("failed to unmarshal genesis %s: %w", string(b), err)
		}
	}
	return g, nil
}

// Load writes the config, every pair type and the version record to [mu].
// Nothing is written if any field is invalid.
func (g *Genesis) Load(ctx context.Context, tracer trace.Tracer, mu state.Mutable) error {
	ctx, span := tracer.Start(ctx, "Genesis.Load")
	defer span.End()

	if consts.HRP != g.HRP {
		return fmt.Errorf("%w: %s", ErrInvalidHRP, g.HRP)
	}
	cfg, err := g.config()
	if err != nil {
		return err
	}
	seen := set.NewSet[string](len(g.PairTypes))
	for i, entry := range g.PairTypes {
		if entry == nil {
			return fmt.Errorf("%w: pair type %d", ErrMissingPairType, i)
		}
		name := entry.PairType.String()
		if seen.Contains(name) {
			return fmt.Errorf("%w: %s", actions.ErrDuplicatePairType, name)
		}
		seen.Add(name)
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("pair type %s: %w", name, err)
		}
	}

	if err := storage.SetConfig(ctx, mu, cfg); err != nil {
		return err
	}
	for _, entry := range g.PairTypes {
		if err := storage.SetPairType(ctx, mu, entry); err != nil {
			return err
		}
	}
	return storage.SetVersion(ctx, mu, &storage.Version{
		Contract: storage.ContractName,
		Version:  consts.Version.String(),
	})
}

// StateKeys lists every key [Load] writes.
func (g *Genesis) StateKeys() state.Keys {
	keys := state.Keys{
		string(storage.ConfigKey()):  state.All,
		string(storage.VersionKey()): state.All,
	}
	for _, entry := range g.PairTypes {
		if entry == nil {
			continue
		}
		keys.Add(string(storage.PairTypeKey(entry.PairType)), state.All)
	}
	return keys
}

func (g *Genesis) config() (*storage.Config, error) {
	cfg := &storage.Config{TokenTemplateID: g.TokenTemplateID}
	fields := []struct {
		name     string
		value    string
		optional bool
		dest     *codec.Address
	}{
		{name: "owner", value: g.Owner, dest: &cfg.Owner},
		{name: "fee_collector", value: g.FeeCollector, optional: true, dest: &cfg.FeeCollector},
		{name: "incentives", value: g.Incentives, optional: true, dest: &cfg.Incentives},
		{name: "coin_registry", value: g.CoinRegistry, dest: &cfg.CoinRegistry},
	}
	for _, f := range fields {
		if f.optional && len(f.value) == 0 {
			continue
		}
		addr, err := actions.ParseAddress(f.name, f.value)
		if err != nil {
			return nil, err
		}
		*f.dest = addr
	}
	return cfg, nil
}
