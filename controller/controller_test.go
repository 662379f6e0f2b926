// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ava-labs/pairfactory/actions"
	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/controller"
	"github.com/ava-labs/pairfactory/event"
	"github.com/ava-labs/pairfactory/genesis"
	"github.com/ava-labs/pairfactory/host"
	"github.com/ava-labs/pairfactory/state"
	"github.com/ava-labs/pairfactory/storage"
	"github.com/ava-labs/pairfactory/trace"
)

var (
	errDeploy = errors.New("deploy failed")
	errNotify = errors.New("notify failed")

	uusd  = asset.Native("uusd")
	uluna = asset.Native("uluna")
	uatom = asset.Native("uatom")
	uosmo = asset.Native("uosmo")
)

type env struct {
	c        *controller.Controller
	db       *memdb.Database
	registry *prometheus.Registry
	results  *event.Buffer[*chain.Result]

	owner      codec.Address
	incentives codec.Address
}

func newEnv(t *testing.T, h controller.Host, withIncentives bool) *env {
	return newEnvWithConfig(t, h, withIncentives, controller.NewDefaultConfig())
}

func newEnvWithConfig(t *testing.T, h controller.Host, withIncentives bool, config controller.Config) *env {
	require := require.New(t)

	e := &env{
		db:         memdb.New(),
		registry:   prometheus.NewRegistry(),
		results:    event.NewBuffer[*chain.Result](16),
		owner:      codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID()),
		incentives: codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID()),
	}
	c, err := controller.New(
		config,
		logging.NoLog{},
		trace.Noop(consts.Name),
		e.registry,
		e.db,
		h,
		asset.DefaultValidator{},
		e.results,
	)
	require.NoError(err)
	e.c = c

	g := genesis.Default()
	g.Owner = codec.MustAddressBech32(consts.HRP, e.owner)
	g.CoinRegistry = codec.MustAddressBech32(consts.HRP, codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID()))
	if withIncentives {
		g.Incentives = codec.MustAddressBech32(consts.HRP, e.incentives)
	}
	g.PairTypes = append(g.PairTypes, &storage.PairTypeEntry{
		PairType:          storage.Custom("legacy"),
		TemplateID:        4,
		TotalFeeBps:       20,
		GeneratorDisabled: true,
	})
	require.NoError(c.Initialize(context.Background(), g))
	return e
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func (e *env) dump(t *testing.T) map[string][]byte {
	return dump(t, e.db)
}

func dump(t *testing.T, db database.Iteratee) map[string][]byte {
	it := db.NewIterator()
	defer it.Release()

	values := map[string][]byte{}
	for it.Next() {
		values[string(it.Key())] = bytes.Clone(it.Value())
	}
	require.NoError(t, it.Error())
	return values
}

func (e *env) pending(t *testing.T) bool {
	_, exists, err := storage.GetPendingCreation(context.Background(), state.NewReadOnly(e.db))
	require.NoError(t, err)
	return exists
}

func TestCreatePair(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	h := host.NewLocal(logging.NoLog{})
	e := newEnv(t, h, false)
	creator := codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID())

	result, err := e.c.Submit(ctx, creator, &actions.CreatePair{
		PairType:   storage.XYK,
		AssetInfos: []asset.Info{uusd, uluna},
	}, []chain.Coin{{Denom: "uusd", Amount: 10}})
	require.NoError(err)
	require.True(result.Success)
	require.Equal(1, result.Calls)
	require.Len(result.Events, 2)
	require.Equal(actions.EventCreatePair, result.Events[0].Action)
	require.Equal(actions.EventRegister, result.Events[1].Action)
	require.False(e.pending(t))

	deployed := h.Deployed()
	require.Len(deployed, 1)
	addr, ok := result.Events[1].Get(actions.AttrPairContractAddr)
	require.True(ok)
	require.Equal(codec.MustAddressBech32(consts.HRP, deployed[0].ContractAddr), addr)

	info, err := e.c.Pair(ctx, []asset.Info{uluna, uusd})
	require.NoError(err)
	require.Equal(deployed[0], info)
	require.Equal("xyk", info.PairType)

	_, err = e.c.Submit(ctx, creator, &actions.CreatePair{
		PairType:   storage.Stable,
		AssetInfos: []asset.Info{uluna, uusd},
	}, nil)
	require.ErrorIs(err, actions.ErrPairAlreadyExists)

	require.Equal([]*chain.Result{result}, e.results.Items())
}

func TestFailedInstantiateDiscardsRequest(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	mockHost := controller.NewMockHost(ctrl)
	mockHost.EXPECT().
		Instantiate(gomock.Any(), controller.Address, gomock.Any()).
		Return(nil, errDeploy)

	e := newEnv(t, mockHost, false)
	before := e.dump(t)

	_, err := e.c.Submit(ctx, e.owner, &actions.CreatePair{
		PairType:   storage.XYK,
		AssetInfos: []asset.Info{uusd, uluna},
	}, nil)
	require.ErrorIs(err, errDeploy)
	require.Equal(before, e.dump(t))
	require.Empty(e.results.Items())
}

func TestMissingContractAddress(t *testing.T) {
	require := require.New(t)

	ctrl := gomock.NewController(t)
	mockHost := controller.NewMockHost(ctrl)
	mockHost.EXPECT().
		Instantiate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&chain.InstantiateResult{}, nil)

	e := newEnv(t, mockHost, false)
	before := e.dump(t)
	_, err := e.c.Submit(context.Background(), e.owner, &actions.CreatePair{
		PairType:   storage.XYK,
		AssetInfos: []asset.Info{uusd, uluna},
	}, nil)
	require.ErrorIs(err, chain.ErrMissingContractAddress)
	require.Equal(before, e.dump(t))
}

func TestReentrantCreateRejected(t *testing.T) {
	tests := []struct {
		name   string
		assets []asset.Info
	}{
		{
			name:   "same pair",
			assets: []asset.Info{uluna, uusd},
		},
		{
			name:   "other pair",
			assets: []asset.Info{uatom, uosmo},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()

			h := host.NewLocal(logging.NoLog{})
			h.OnInstantiate(func(pair codec.Address, _ *chain.InstantiatePair) []*chain.Call {
				return []*chain.Call{{
					Actor:  pair,
					Action: &actions.CreatePair{PairType: storage.XYK, AssetInfos: tt.assets},
				}}
			})
			e := newEnv(t, h, false)
			before := e.dump(t)

			_, err := e.c.Submit(ctx, e.owner, &actions.CreatePair{
				PairType:   storage.XYK,
				AssetInfos: []asset.Info{uusd, uluna},
			}, nil)
			require.ErrorIs(err, actions.ErrCreationPending)
			require.Equal(before, e.dump(t))
		})
	}
}

func TestNestedCallsRun(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	h := host.NewLocal(logging.NoLog{})
	e := newEnv(t, h, false)
	newOwner := codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID())

	// The deployed pair proposes nothing itself but the owner's nested
	// proposal runs inside the same request.
	h.OnInstantiate(func(codec.Address, *chain.InstantiatePair) []*chain.Call {
		return []*chain.Call{{
			Actor:  e.owner,
			Action: &actions.ProposeOwner{Owner: newOwner, ExpiresIn: 60},
		}}
	})
	result, err := e.c.Submit(ctx, e.owner, &actions.CreatePair{
		PairType:   storage.XYK,
		AssetInfos: []asset.Info{uusd, uluna},
	}, nil)
	require.NoError(err)
	require.Len(result.Events, 3)
	require.Equal(actions.EventProposeOwner, result.Events[1].Action)
	require.Equal(actions.EventRegister, result.Events[2].Action)

	proposal, exists, err := storage.GetOwnershipProposal(ctx, state.NewReadOnly(e.db))
	require.NoError(err)
	require.True(exists)
	require.Equal(newOwner, proposal.Owner)
}

func TestCallDepthExceeded(t *testing.T) {
	require := require.New(t)

	h := host.NewLocal(logging.NoLog{})
	config := controller.NewDefaultConfig()
	config.MaxCallDepth = 0
	e := newEnvWithConfig(t, h, false, config)
	h.OnInstantiate(func(codec.Address, *chain.InstantiatePair) []*chain.Call {
		return []*chain.Call{{Actor: e.owner, Action: &actions.DropOwnershipProposal{}}}
	})

	_, err := e.c.Submit(context.Background(), e.owner, &actions.CreatePair{
		PairType:   storage.XYK,
		AssetInfos: []asset.Info{uusd, uluna},
	}, nil)
	require.ErrorIs(err, controller.ErrCallDepthExceeded)
}

func TestDeregister(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	h := host.NewLocal(logging.NoLog{})
	e := newEnv(t, h, true)
	pair := []asset.Info{uusd, uluna}

	_, err := e.c.Submit(ctx, e.owner, &actions.CreatePair{PairType: storage.XYK, AssetInfos: pair}, nil)
	require.NoError(err)
	info, err := e.c.Pair(ctx, pair)
	require.NoError(err)

	result, err := e.c.Submit(ctx, e.owner, &actions.Deregister{AssetInfos: pair}, nil)
	require.NoError(err)
	require.Equal(1, result.Calls)
	require.True(h.Deactivated(info.LiquidityToken))
	require.Equal(e.incentives, h.Executed()[0].Contract)

	_, err = e.c.Pair(ctx, pair)
	require.ErrorIs(err, storage.ErrPairNotFound)
	_, err = e.c.Submit(ctx, e.owner, &actions.Deregister{AssetInfos: pair}, nil)
	require.ErrorIs(err, actions.ErrPairNotFound)

	// The pair can be created again.
	_, err = e.c.Submit(ctx, e.owner, &actions.CreatePair{PairType: storage.XYK, AssetInfos: pair}, nil)
	require.NoError(err)
	recreated, err := e.c.Pair(ctx, pair)
	require.NoError(err)
	require.NotEqual(info.ContractAddr, recreated.ContractAddr)
}

func TestDeregisterNotificationFailure(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	pairAddr := codec.CreateAddress(consts.PairAddressID, ids.GenerateTestID())
	pairInfo := &chain.PairInfo{
		ContractAddr:   pairAddr,
		AssetInfos:     []asset.Info{uusd, uluna},
		LiquidityToken: codec.CreateAddress(consts.LiquidityTokenAddressID, ids.GenerateTestID()),
		PairType:       "xyk",
	}

	ctrl := gomock.NewController(t)
	mockHost := controller.NewMockHost(ctrl)
	mockHost.EXPECT().Instantiate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&chain.InstantiateResult{Address: pairAddr}, nil)
	mockHost.EXPECT().QueryPair(gomock.Any(), pairAddr).Return(pairInfo, nil).AnyTimes()
	mockHost.EXPECT().Execute(gomock.Any(), controller.Address, gomock.Any()).Return(errNotify)

	e := newEnv(t, mockHost, true)
	_, err := e.c.Submit(ctx, e.owner, &actions.CreatePair{PairType: storage.XYK, AssetInfos: pairInfo.AssetInfos}, nil)
	require.NoError(err)

	before := e.dump(t)
	_, err = e.c.Submit(ctx, e.owner, &actions.Deregister{AssetInfos: pairInfo.AssetInfos}, nil)
	require.ErrorIs(err, errNotify)
	require.Equal(before, e.dump(t))

	info, err := e.c.Pair(ctx, pairInfo.AssetInfos)
	require.NoError(err)
	require.Equal(pairInfo, info)
}

func TestDeliverReplyAfterCreate(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	e := newEnv(t, host.NewLocal(logging.NoLog{}), false)
	assets := []asset.Info{uusd, uluna}
	_, err := e.c.Submit(ctx, e.owner, &actions.CreatePair{PairType: storage.XYK, AssetInfos: assets}, nil)
	require.NoError(err)
	info, err := e.c.Pair(ctx, assets)
	require.NoError(err)

	before := e.dump(t)
	saddr := codec.MustAddressBech32(consts.HRP, info.ContractAddr)
	_, err = e.c.DeliverReply(ctx, &chain.Reply{
		ID:     actions.InstantiatePairReplyID,
		Result: chain.SubMsgResult{Data: chain.EncodeInstantiateResponse(saddr, nil)},
	})
	require.ErrorIs(err, actions.ErrPairAlreadyRegistered)
	require.Equal(before, e.dump(t))
}

func TestDeliverReply(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	e := newEnv(t, host.NewLocal(logging.NoLog{}), false)
	saddr := codec.MustAddressBech32(consts.HRP, codec.CreateAddress(consts.PairAddressID, ids.GenerateTestID()))
	before := e.dump(t)

	_, err := e.c.DeliverReply(ctx, &chain.Reply{
		ID:     actions.InstantiatePairReplyID,
		Result: chain.SubMsgResult{Data: chain.EncodeInstantiateResponse(saddr, nil)},
	})
	require.ErrorIs(err, actions.ErrPendingCreationNotFound)

	_, err = e.c.DeliverReply(ctx, &chain.Reply{
		ID:     actions.InstantiatePairReplyID,
		Result: chain.SubMsgResult{Error: "out of gas"},
	})
	require.ErrorIs(err, actions.ErrUnrecognizedCallback)
	require.Equal(before, e.dump(t))
}

func TestOwnershipTransfer(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	e := newEnv(t, host.NewLocal(logging.NoLog{}), false)
	newOwner := codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID())
	clock := e.c.Clock()

	clock.Set(time.Unix(1_000, 0))
	_, err := e.c.Submit(ctx, e.owner, &actions.ProposeOwner{Owner: newOwner, ExpiresIn: 100}, nil)
	require.NoError(err)

	clock.Set(time.Unix(1_101, 0))
	_, err = e.c.Submit(ctx, newOwner, &actions.ClaimOwnership{}, nil)
	require.ErrorIs(err, actions.ErrOwnershipProposalNotFound)

	clock.Set(time.Unix(2_000, 0))
	_, err = e.c.Submit(ctx, e.owner, &actions.ProposeOwner{Owner: newOwner, ExpiresIn: 100}, nil)
	require.NoError(err)
	clock.Set(time.Unix(2_100, 0))
	_, err = e.c.Submit(ctx, newOwner, &actions.ClaimOwnership{}, nil)
	require.NoError(err)

	cfg, _, err := e.c.Config(ctx)
	require.NoError(err)
	require.Equal(newOwner, cfg.Owner)

	_, err = e.c.Submit(ctx, e.owner, &actions.UpdateConfig{TokenTemplateID: uint64Ptr(5)}, nil)
	require.ErrorIs(err, actions.ErrUnauthorized)
}

func TestPairsPagination(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	config := controller.NewDefaultConfig()
	config.DefaultPageLimit = 2
	config.MaxPageLimit = 3
	e := newEnvWithConfig(t, host.NewLocal(logging.NoLog{}), false, config)

	sets := [][]asset.Info{
		{uusd, uluna},
		{uusd, uatom},
		{uatom, uosmo},
		{uluna, uosmo},
	}
	for _, set := range sets {
		_, err := e.c.Submit(ctx, e.owner, &actions.CreatePair{PairType: storage.XYK, AssetInfos: set}, nil)
		require.NoError(err)
	}

	all, err := e.c.Pairs(ctx, nil, 100)
	require.NoError(err)
	require.Len(all, 3)

	page, err := e.c.Pairs(ctx, nil, 0)
	require.NoError(err)
	require.Equal(all[:2], page)

	rest, err := e.c.Pairs(ctx, page[1].AssetInfos, 10)
	require.NoError(err)
	require.Len(rest, 2)
	require.Equal(all[2], rest[0])
	for _, info := range rest {
		require.NotEqual(page[1].ContractAddr, info.ContractAddr)
	}

	_, err = e.c.Pairs(ctx, []asset.Info{uusd}, 10)
	require.ErrorIs(err, asset.ErrInvalidAssetSet)
}

func TestQueries(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	e := newEnv(t, host.NewLocal(logging.NoLog{}), false)
	feeCollector := codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID())
	_, err := e.c.Submit(ctx, e.owner, &actions.UpdateConfig{
		FeeCollector: codec.MustAddressBech32(consts.HRP, feeCollector),
	}, nil)
	require.NoError(err)
	_, err = e.c.Submit(ctx, e.owner, &actions.UpdatePairType{Entry: storage.PairTypeEntry{
		PairType:    storage.Concentrated,
		TemplateID:  5,
		TotalFeeBps: 50,
		MakerFeeBps: 25,
		Disabled:    true,
	}}, nil)
	require.NoError(err)

	cfg, entries, err := e.c.Config(ctx)
	require.NoError(err)
	require.Equal(feeCollector, cfg.FeeCollector)
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.PairType.String()
	}
	require.Equal([]string{"concentrated", "custom-legacy", "stable", "xyk"}, names)

	fees, err := e.c.FeeInfo(ctx, storage.Concentrated)
	require.NoError(err)
	require.Equal(&controller.FeeInfo{FeeCollector: feeCollector, TotalFeeBps: 50, MakerFeeBps: 25}, fees)
	_, err = e.c.FeeInfo(ctx, storage.Custom("missing"))
	require.ErrorIs(err, storage.ErrPairTypeNotFound)

	disabled, err := e.c.DisabledPairTypes(ctx)
	require.NoError(err)
	require.Equal([]storage.PairType{storage.Concentrated, storage.Custom("legacy")}, disabled)

	v, err := e.c.Version(ctx)
	require.NoError(err)
	require.Equal(storage.ContractName, v.Contract)
}

func TestInitializeOnce(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	e := newEnv(t, host.NewLocal(logging.NoLog{}), false)
	before := e.dump(t)

	g := genesis.Default()
	g.Owner = codec.MustAddressBech32(consts.HRP, codec.CreateAddress(consts.AccountAddressID, ids.GenerateTestID()))
	require.NoError(e.c.Initialize(ctx, g))
	require.Equal(before, e.dump(t))
}

func TestSubmitBytesAndMetrics(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	e := newEnv(t, host.NewLocal(logging.NoLog{}), false)
	b, err := chain.MarshalAction(&actions.UpdateConfig{TokenTemplateID: uint64Ptr(42)})
	require.NoError(err)

	_, err = e.c.SubmitBytes(ctx, e.owner, b, nil)
	require.NoError(err)
	_, err = e.c.SubmitBytes(ctx, e.owner, append(b, 0), nil)
	require.ErrorIs(err, codec.ErrExtraBytes)
	_, err = e.c.SubmitBytes(ctx, e.owner, []byte{0xee}, nil)
	require.ErrorIs(err, codec.ErrUnknownType)

	cfg, _, err := e.c.Config(ctx)
	require.NoError(err)
	require.Equal(uint64(42), cfg.TokenTemplateID)

	families, err := e.registry.Gather()
	require.NoError(err)
	found := map[string]bool{}
	for _, family := range families {
		found[family.GetName()] = true
	}
	require.True(found["actions_accepted"])
	require.True(found["controller_host_calls"])
	require.True(found["controller_request_count"])
}

func TestClose(t *testing.T) {
	require := require.New(t)

	e := newEnv(t, host.NewLocal(logging.NoLog{}), false)
	require.NoError(e.c.Close())
	_, err := e.c.Submit(context.Background(), e.owner, &actions.ClaimOwnership{}, nil)
	require.ErrorIs(err, controller.ErrClosed)
}
