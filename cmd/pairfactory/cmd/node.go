// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/config"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/controller"
	"github.com/ava-labs/pairfactory/event"
	"github.com/ava-labs/pairfactory/genesis"
	"github.com/ava-labs/pairfactory/host"
	"github.com/ava-labs/pairfactory/pubsub"
	"github.com/ava-labs/pairfactory/storage"

	pftrace "github.com/ava-labs/pairfactory/trace"
)

// node owns everything a running registry needs.
type node struct {
	log        logging.Logger
	tracer     trace.Tracer
	db         storage.DB
	host       *host.Local
	results    *event.Buffer[*chain.Result]
	stream     *pubsub.Server
	controller *controller.Controller
	gatherer   prometheus.Gatherer
}

func newNode(ctx context.Context, cfg *config.Config, g *genesis.Genesis, log logging.Logger) (*node, error) {
	tracer, err := pftrace.New(cfg.GetTraceConfig())
	if err != nil {
		return nil, err
	}
	db, dbGatherer, err := storage.New(cfg.Pebble, cfg.DataDir, consts.Name)
	if err != nil {
		return nil, err
	}

	n := &node{
		log:     log,
		tracer:  tracer,
		db:      db,
		host:    host.NewLocal(log),
		results: event.NewBuffer[*chain.Result](cfg.ResultsBufferSize),
	}
	registry := prometheus.NewRegistry()
	n.gatherer = prometheus.Gatherers{registry, dbGatherer}

	subs := []event.Subscription[*chain.Result]{
		n.results,
		event.SubscriptionFunc[*chain.Result]{
			AcceptF: func(_ context.Context, r *chain.Result) error {
				log.Debug("request committed",
					zap.Bool("success", r.Success),
					zap.Int("events", len(r.Events)),
					zap.Int("calls", r.Calls),
				)
				return nil
			},
		},
	}
	if cfg.StreamEnabled {
		n.stream = pubsub.New(log, cfg.Stream)
		subs = append(subs, n.stream)
	}
	n.controller, err = controller.New(
		cfg.Controller,
		log,
		tracer,
		registry,
		db,
		n.host,
		asset.DefaultValidator{},
		subs...,
	)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	if err := n.controller.Initialize(ctx, g); err != nil {
		return nil, errors.Join(err, n.Close())
	}
	return n, nil
}

func (n *node) Close() error {
	errs := wrappers.Errs{}
	errs.Add(
		n.controller.Close(),
		n.db.Close(),
		n.tracer.Close(),
	)
	return errs.Err
}
