// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/storage"
)

type JSONRPCServer struct {
	c             Controller
	results       Results
	submitEnabled bool
}

func NewJSONRPCServer(c Controller, results Results, submitEnabled bool) *JSONRPCServer {
	return &JSONRPCServer{c: c, results: results, submitEnabled: submitEnabled}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (*JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) error {
	reply.Success = true
	return nil
}

type VersionReply struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}

func (j *JSONRPCServer) Version(req *http.Request, _ *struct{}, reply *VersionReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Version")
	defer span.End()

	v, err := j.c.Version(ctx)
	if err != nil {
		return err
	}
	reply.Contract = v.Contract
	reply.Version = v.Version
	return nil
}

type ConfigReply struct {
	Owner           string                   `json:"owner"`
	TokenTemplateID uint64                   `json:"tokenTemplateID"`
	FeeCollector    string                   `json:"feeCollector,omitempty"`
	Incentives      string                   `json:"incentives,omitempty"`
	CoinRegistry    string                   `json:"coinRegistry"`
	PairTypes       []*storage.PairTypeEntry `json:"pairTypes"`
}

func (j *JSONRPCServer) Config(req *http.Request, _ *struct{}, reply *ConfigReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Config")
	defer span.End()

	cfg, entries, err := j.c.Config(ctx)
	if err != nil {
		return err
	}
	reply.Owner = codec.MustAddressBech32(consts.HRP, cfg.Owner)
	reply.TokenTemplateID = cfg.TokenTemplateID
	if cfg.HasFeeCollector() {
		reply.FeeCollector = codec.MustAddressBech32(consts.HRP, cfg.FeeCollector)
	}
	if cfg.HasIncentives() {
		reply.Incentives = codec.MustAddressBech32(consts.HRP, cfg.Incentives)
	}
	reply.CoinRegistry = codec.MustAddressBech32(consts.HRP, cfg.CoinRegistry)
	reply.PairTypes = entries
	return nil
}

type PairInfo struct {
	ContractAddr   string       `json:"contractAddr"`
	AssetInfos     []asset.Info `json:"assetInfos"`
	LiquidityToken string       `json:"liquidityToken"`
	PairType       string       `json:"pairType"`
}

func newPairInfo(info *chain.PairInfo) *PairInfo {
	return &PairInfo{
		ContractAddr:   codec.MustAddressBech32(consts.HRP, info.ContractAddr),
		AssetInfos:     info.AssetInfos,
		LiquidityToken: codec.MustAddressBech32(consts.HRP, info.LiquidityToken),
		PairType:       info.PairType,
	}
}

type PairArgs struct {
	AssetInfos []asset.Info `json:"assetInfos"`
}

type PairReply struct {
	Pair *PairInfo `json:"pair"`
}

func (j *JSONRPCServer) Pair(req *http.Request, args *PairArgs, reply *PairReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Pair")
	defer span.End()

	info, err := j.c.Pair(ctx, args.AssetInfos)
	if err != nil {
		return err
	}
	reply.Pair = newPairInfo(info)
	return nil
}

type PairsArgs struct {
	StartAfter []asset.Info `json:"startAfter,omitempty"`
	Limit      int          `json:"limit,omitempty"`
}

type PairsReply struct {
	Pairs []*PairInfo `json:"pairs"`
}

func (j *JSONRPCServer) Pairs(req *http.Request, args *PairsArgs, reply *PairsReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Pairs")
	defer span.End()

	infos, err := j.c.Pairs(ctx, args.StartAfter, args.Limit)
	if err != nil {
		return err
	}
	reply.Pairs = make([]*PairInfo, len(infos))
	for i, info := range infos {
		reply.Pairs[i] = newPairInfo(info)
	}
	return nil
}

type FeeInfoArgs struct {
	PairType storage.PairType `json:"pairType"`
}

type FeeInfoReply struct {
	FeeCollector string `json:"feeCollector,omitempty"`
	TotalFeeBps  uint16 `json:"totalFeeBps"`
	MakerFeeBps  uint16 `json:"makerFeeBps"`
}

func (j *JSONRPCServer) FeeInfo(req *http.Request, args *FeeInfoArgs, reply *FeeInfoReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.FeeInfo")
	defer span.End()

	fees, err := j.c.FeeInfo(ctx, args.PairType)
	if err != nil {
		return err
	}
	if fees.FeeCollector != codec.EmptyAddress {
		reply.FeeCollector = codec.MustAddressBech32(consts.HRP, fees.FeeCollector)
	}
	reply.TotalFeeBps = fees.TotalFeeBps
	reply.MakerFeeBps = fees.MakerFeeBps
	return nil
}

type DisabledPairTypesReply struct {
	PairTypes []storage.PairType `json:"pairTypes"`
}

func (j *JSONRPCServer) DisabledPairTypes(req *http.Request, _ *struct{}, reply *DisabledPairTypesReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.DisabledPairTypes")
	defer span.End()

	pairTypes, err := j.c.DisabledPairTypes(ctx)
	if err != nil {
		return err
	}
	reply.PairTypes = pairTypes
	return nil
}

type SubmitArgs struct {
	Actor  string       `json:"actor"`
	Action codec.Bytes  `json:"action"`
	Funds  []chain.Coin `json:"funds,omitempty"`
}

type SubmitReply struct {
	Result *chain.Result `json:"result"`
}

// Submit executes an action on behalf of [args.Actor]. It is only served
// when explicitly enabled.
func (j *JSONRPCServer) Submit(req *http.Request, args *SubmitArgs, reply *SubmitReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Submit")
	defer span.End()

	if !j.submitEnabled {
		return ErrSubmitDisabled
	}
	actor, err := codec.ParseAddressBech32(consts.HRP, args.Actor)
	if err != nil {
		return err
	}
	result, err := j.c.SubmitBytes(ctx, actor, args.Action, args.Funds)
	if err != nil {
		return err
	}
	reply.Result = result
	return nil
}

type ResultsReply struct {
	Results []*chain.Result `json:"results"`
}

func (j *JSONRPCServer) Results(_ *http.Request, _ *struct{}, reply *ResultsReply) error {
	reply.Results = j.results.Items()
	return nil
}
