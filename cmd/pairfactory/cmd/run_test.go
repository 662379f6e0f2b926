// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/pairfactory/actions"
	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/config"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/genesis"
	"github.com/ava-labs/pairfactory/pubsub"
	"github.com/ava-labs/pairfactory/rpc"
	"github.com/ava-labs/pairfactory/server"
	"github.com/ava-labs/pairfactory/storage"
)

func TestServeNode(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	cfg, err := config.New([]byte(`{"submitEnabled": true}`))
	require.NoError(err)
	g := genesis.Default()
	g.Owner = codec.MustAddressBech32(consts.HRP, actorAddress("admin"))
	g.CoinRegistry = codec.MustAddressBech32(consts.HRP, actorAddress("coin_registry"))

	n, err := newNode(ctx, cfg, g, logging.NoLog{})
	require.NoError(err)
	t.Cleanup(func() {
		require.NoError(n.Close())
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	srv, err := server.New(logging.NoLog{}, listener, cfg.ServerOptions())
	require.NoError(err)
	require.NoError(addRoutes(srv, cfg, n))
	go func() {
		_ = srv.Dispatch()
	}()
	t.Cleanup(func() {
		require.NoError(srv.Shutdown())
	})

	uri := fmt.Sprintf("http://%s/%s", listener.Addr(), apiBase)
	cli := rpc.NewJSONRPCClient(uri)
	ok, err := cli.Ping(ctx)
	require.NoError(err)
	require.True(ok)

	stream, err := pubsub.NewClient(ctx, uri+rpc.WebSocketEndpoint)
	require.NoError(err)
	defer stream.Close()
	require.Eventually(func() bool {
		return n.stream.Connections() == 1
	}, 5*time.Second, 10*time.Millisecond)

	result, err := cli.Submit(ctx, actorAddress("alice"), &actions.CreatePair{
		PairType:   storage.XYK,
		AssetInfos: []asset.Info{asset.Native("uusd"), asset.Native("uluna")},
	}, nil)
	require.NoError(err)
	require.True(result.Success)

	streamed, err := stream.Listen()
	require.NoError(err)
	require.Equal(result, streamed)

	resp, err := http.Get(uri + rpc.MetricsEndpoint)
	require.NoError(err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Contains(string(body), "controller_registered_pairs 1")
}
