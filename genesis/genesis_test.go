// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/pairfactory/actions"
	"github.com/ava-labs/pairfactory/chain/chaintest"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/storage"
	"github.com/ava-labs/pairfactory/trace"
)

func testGenesis() (*Genesis, codec.Address) {
	owner := codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID())
	g := Default()
	g.Owner = codec.MustAddressBech32(consts.HRP, owner)
	g.CoinRegistry = codec.MustAddressBech32(consts.HRP, codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID()))
	return g, owner
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	g, owner := testGenesis()
	g.PairTypes = append(g.PairTypes, &storage.PairTypeEntry{
		PairType:     storage.Custom("pcl"),
		TemplateID:   9,
		TotalFeeBps:  100,
		Permissioned: true,
	})
	mu := chaintest.NewInMemoryStore()
	require.NoError(g.Load(ctx, trace.Noop(consts.Name), mu))

	cfg, err := storage.GetConfig(ctx, mu)
	require.NoError(err)
	require.Equal(owner, cfg.Owner)
	require.Equal(uint64(1), cfg.TokenTemplateID)
	require.False(cfg.HasFeeCollector())
	require.False(cfg.HasIncentives())

	for _, entry := range g.PairTypes {
		stored, exists, err := storage.GetPairType(ctx, mu, entry.PairType)
		require.NoError(err)
		require.True(exists)
		require.Equal(entry, stored)
	}

	v, exists, err := storage.GetVersion(ctx, mu)
	require.NoError(err)
	require.True(exists)
	require.Equal(storage.ContractName, v.Contract)
	require.Equal(consts.Version.String(), v.Version)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Genesis)
		err    error
	}{
		{
			name:   "hrp",
			modify: func(g *Genesis) { g.HRP = "avax" },
			err:    ErrInvalidHRP,
		},
		{
			name:   "owner",
			modify: func(g *Genesis) { g.Owner = "" },
			err:    actions.ErrInvalidAddress,
		},
		{
			name:   "incentives",
			modify: func(g *Genesis) { g.Incentives = "pair1invalid" },
			err:    actions.ErrInvalidAddress,
		},
		{
			name: "duplicate pair type",
			modify: func(g *Genesis) {
				g.PairTypes = append(g.PairTypes, &storage.PairTypeEntry{PairType: storage.XYK})
			},
			err: actions.ErrDuplicatePairType,
		},
		{
			name:   "empty owner",
			modify: func(g *Genesis) { g.Owner = codec.MustAddressBech32(consts.HRP, codec.EmptyAddress) },
			err:    actions.ErrInvalidAddress,
		},
		{
			name:   "empty coin registry",
			modify: func(g *Genesis) { g.CoinRegistry = codec.MustAddressBech32(consts.HRP, codec.EmptyAddress) },
			err:    actions.ErrInvalidAddress,
		},
		{
			name:   "nil pair type",
			modify: func(g *Genesis) { g.PairTypes = append(g.PairTypes, nil) },
			err:    ErrMissingPairType,
		},
		{
			name: "unknown pair type",
			modify: func(g *Genesis) {
				g.PairTypes = append(g.PairTypes, &storage.PairTypeEntry{PairType: storage.PairType{Name: "bogus"}})
			},
			err: storage.ErrInvalidPairType,
		},
		{
			name: "empty custom pair type",
			modify: func(g *Genesis) {
				g.PairTypes = append(g.PairTypes, &storage.PairTypeEntry{PairType: storage.Custom("")})
			},
			err: storage.ErrInvalidPairType,
		},
		{
			name: "fees",
			modify: func(g *Genesis) {
				g.PairTypes[0].MakerFeeBps = g.PairTypes[0].TotalFeeBps + 1
			},
			err: storage.ErrInvalidFeeBps,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()

			g, _ := testGenesis()
			tt.modify(g)
			mu := chaintest.NewInMemoryStore()
			require.ErrorIs(g.Load(ctx, trace.Noop(consts.Name), mu), tt.err)

			_, err := storage.GetConfig(ctx, mu)
			require.ErrorIs(err, storage.ErrConfigNotFound)
		})
	}
}

func TestLoadNullPairType(t *testing.T) {
	require := require.New(t)

	g, _ := testGenesis()
	require.NoError(json.Unmarshal([]byte(`{"pairTypes":[null]}`), g))
	require.Len(g.StateKeys(), 2)
	require.ErrorIs(g.Load(context.Background(), trace.Noop(consts.Name), chaintest.NewInMemoryStore()), ErrMissingPairType)
}

func TestNew(t *testing.T) {
	require := require.New(t)

	g, _ := testGenesis()
	b, err := json.Marshal(g)
	require.NoError(err)

	parsed, err := New(b)
	require.NoError(err)
	require.Equal(g, parsed)

	_, err = New([]byte("{"))
	require.Error(err)

	def, err := New(nil)
	require.NoError(err)
	require.Equal(Default(), def)
}
