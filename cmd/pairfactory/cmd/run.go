// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/pairfactory/config"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/genesis"
	"github.com/ava-labs/pairfactory/rpc"
	"github.com/ava-labs/pairfactory/server"
)

const apiBase = "ext"

func newRunCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Serve the registry over JSON-RPC",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, g, err := f.load()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, g)
		},
	}
}

func run(ctx context.Context, cfg *config.Config, g *genesis.Genesis) error {
	log := newLogger(cfg, consts.Name, false)
	defer log.Stop()

	n, err := newNode(ctx, cfg, g, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := n.Close(); err != nil {
			log.Error("failed to close node", zap.Error(err))
		}
	}()

	listener, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return err
	}
	srv, err := server.New(
		log,
		listener,
		cfg.ServerOptions(),
		server.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)
	if err != nil {
		return err
	}
	if err := addRoutes(srv, cfg, n); err != nil {
		return err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.Dispatch(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		log.Info("shutting down")
		return srv.Shutdown()
	})
	log.Info("serving",
		zap.Stringer("address", listener.Addr()),
		zap.String("version", consts.Version.String()),
		zap.Bool("submitEnabled", cfg.SubmitEnabled),
		zap.Bool("streamEnabled", cfg.StreamEnabled),
	)
	return eg.Wait()
}

func addRoutes(srv server.Server, cfg *config.Config, n *node) error {
	handler, err := server.NewHandler(rpc.NewJSONRPCServer(n.controller, n.results, cfg.SubmitEnabled), consts.Name)
	if err != nil {
		return err
	}
	if err := srv.AddRoute(handler, apiBase, rpc.JSONRPCEndpoint); err != nil {
		return err
	}
	if err := srv.AddRoute(server.NewMetricsHandler(n.gatherer), apiBase, rpc.MetricsEndpoint); err != nil {
		return err
	}
	if n.stream != nil {
		return srv.AddRoute(n.stream, apiBase, rpc.WebSocketEndpoint)
	}
	return nil
}
