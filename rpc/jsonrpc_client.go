// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/requester"
	"github.com/ava-labs/pairfactory/storage"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester
}

// NewJSONRPCClient talks to the service mounted under [uri].
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	return &JSONRPCClient{requester.New(uri, consts.Name)}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) Version(ctx context.Context) (*VersionReply, error) {
	resp := new(VersionReply)
	err := cli.requester.SendRequest(ctx,
		"version",
		nil,
		resp,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (cli *JSONRPCClient) Config(ctx context.Context) (*ConfigReply, error) {
	resp := new(ConfigReply)
	err := cli.requester.SendRequest(ctx,
		"config",
		nil,
		resp,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (cli *JSONRPCClient) Pair(ctx context.Context, infos []asset.Info) (*PairInfo, error) {
	resp := new(PairReply)
	err := cli.requester.SendRequest(ctx,
		"pair",
		&PairArgs{AssetInfos: infos},
		resp,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Pair, nil
}

func (cli *JSONRPCClient) Pairs(ctx context.Context, startAfter []asset.Info, limit int) ([]*PairInfo, error) {
	resp := new(PairsReply)
	err := cli.requester.SendRequest(ctx,
		"pairs",
		&PairsArgs{StartAfter: startAfter, Limit: limit},
		resp,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Pairs, nil
}

func (cli *JSONRPCClient) FeeInfo(ctx context.Context, pairType storage.PairType) (*FeeInfoReply, error) {
	resp := new(FeeInfoReply)
	err := cli.requester.SendRequest(ctx,
		"feeInfo",
		&FeeInfoArgs{PairType: pairType},
		resp,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (cli *JSONRPCClient) DisabledPairTypes(ctx context.Context) ([]storage.PairType, error) {
	resp := new(DisabledPairTypesReply)
	err := cli.requester.SendRequest(ctx,
		"disabledPairTypes",
		nil,
		resp,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return resp.PairTypes, nil
}

// Submit marshals [action] and executes it as [actor].
func (cli *JSONRPCClient) Submit(
	ctx context.Context,
	actor codec.Address,
	action chain.Action,
	funds []chain.Coin,
) (*chain.Result, error) {
	b, err := chain.MarshalAction(action)
	if err != nil {
		return nil, err
	}
	resp := new(SubmitReply)
	err = cli.requester.SendRequest(ctx,
		"submit",
		&SubmitArgs{
			Actor:  codec.MustAddressBech32(consts.HRP, actor),
			Action: b,
			Funds:  funds,
		},
		resp,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Result, nil
}

func (cli *JSONRPCClient) Results(ctx context.Context) ([]*chain.Result, error) {
	resp := new(ResultsReply)
	err := cli.requester.SendRequest(ctx,
		"results",
		nil,
		resp,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Results, nil
}
