// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
)

var factory = codec.CreateAddress(consts.FactoryAddressID, ids.Empty)

func instantiateMsg(templateID uint64, denoms ...string) *chain.InstantiatePair {
	infos := make([]asset.Info, len(denoms))
	for i, denom := range denoms {
		infos[i] = asset.Native(denom)
	}
	return &chain.InstantiatePair{
		TemplateID: templateID,
		Label:      "pair",
		Msg: &chain.PairInstantiateMsg{
			PairType:        "xyk",
			AssetInfos:      infos,
			TokenTemplateID: 1,
			Factory:         factory,
		},
	}
}

func TestInstantiateIsDeterministic(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	deploy := func() []*chain.PairInfo {
		h := NewLocal(logging.NoLog{})
		_, err := h.Instantiate(ctx, factory, instantiateMsg(2, "uusd", "uluna"))
		require.NoError(err)
		_, err = h.Instantiate(ctx, factory, instantiateMsg(2, "uusd", "uatom"))
		require.NoError(err)
		return h.Deployed()
	}
	first := deploy()
	require.Len(first, 2)
	require.Equal(first, deploy())
	require.NotEqual(first[0].ContractAddr, first[1].ContractAddr)

	for _, info := range first {
		require.Equal(consts.PairAddressID, info.ContractAddr.TypeID())
		require.Equal(consts.LiquidityTokenAddressID, info.LiquidityToken.TypeID())
	}
}

func TestInstantiateResult(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	h := NewLocal(logging.NoLog{})
	h.OnInstantiate(func(pair codec.Address, _ *chain.InstantiatePair) []*chain.Call {
		return []*chain.Call{{Actor: pair}}
	})
	msg := instantiateMsg(2, "uusd", "uluna")
	res, err := h.Instantiate(ctx, factory, msg)
	require.NoError(err)
	require.Len(res.Calls, 1)
	require.Equal(res.Address, res.Calls[0].Actor)

	parsed, err := chain.UnmarshalPairInstantiateMsg(res.Data)
	require.NoError(err)
	require.Equal(msg.Msg, parsed)

	info, err := h.QueryPair(ctx, res.Address)
	require.NoError(err)
	require.Equal(msg.Msg.AssetInfos, info.AssetInfos)

	_, err = h.QueryPair(ctx, factory)
	require.ErrorIs(err, ErrUnknownPair)
}

func TestRejectTemplate(t *testing.T) {
	require := require.New(t)

	h := NewLocal(logging.NoLog{})
	h.RejectTemplate(9)
	_, err := h.Instantiate(context.Background(), factory, instantiateMsg(9, "uusd", "uluna"))
	require.ErrorIs(err, ErrTemplateRejected)
	require.Empty(h.Deployed())
}

func TestExecuteDeactivatePool(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	h := NewLocal(logging.NoLog{})
	lpToken := codec.CreateAddress(consts.LiquidityTokenAddressID, ids.GenerateTestID())
	incentives := codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID())

	require.Error(h.Execute(ctx, factory, &chain.ExecuteContract{Contract: incentives, Msg: []byte{0xff}}))
	require.False(h.Deactivated(lpToken))

	msg := &chain.ExecuteContract{
		Contract: incentives,
		Msg:      (&chain.DeactivatePool{LPToken: lpToken}).Bytes(),
	}
	require.NoError(h.Execute(ctx, factory, msg))
	require.True(h.Deactivated(lpToken))
	require.Equal([]*chain.ExecuteContract{msg}, h.Executed())
}
