// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/pairfactory/actions"
	"github.com/ava-labs/pairfactory/asset"
	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/event"
	"github.com/ava-labs/pairfactory/genesis"
	"github.com/ava-labs/pairfactory/state"
	"github.com/ava-labs/pairfactory/storage"
	"github.com/ava-labs/pairfactory/tstate"
)

const changedKeysEstimate = 8

// Address is the identity the registry uses when calling other contracts.
var Address = codec.CreateAddress(consts.FactoryAddressID, consts.ID)

type Config struct {
	DefaultPageLimit int `json:"defaultPageLimit"`
	MaxPageLimit     int `json:"maxPageLimit"`

	// MaxCallDepth bounds how deep calls issued by instantiated contracts
	// may nest.
	MaxCallDepth int `json:"maxCallDepth"`
}

func NewDefaultConfig() Config {
	return Config{
		DefaultPageLimit: 10,
		MaxPageLimit:     30,
		MaxCallDepth:     4,
	}
}

// Controller executes one request at a time against [db]. A request either
// commits every change it made in a single batch or none of them.
type Controller struct {
	config    Config
	log       logging.Logger
	tracer    trace.Tracer
	metrics   *metrics
	db        state.Database
	host      Host
	validator asset.Validator
	parser    chain.ActionRegistry
	handler   chain.ReplyHandler

	clock mockable.Clock

	l      sync.Mutex
	subs   []event.Subscription[*chain.Result]
	closed bool
}

func New(
	config Config,
	log logging.Logger,
	tracer trace.Tracer,
	registerer prometheus.Registerer,
	db state.Database,
	host Host,
	validator asset.Validator,
	subs ...event.Subscription[*chain.Result],
) (*Controller, error) {
	if config.DefaultPageLimit <= 0 || config.MaxPageLimit < config.DefaultPageLimit {
		return nil, fmt.Errorf("%w: default=%d max=%d", ErrInvalidLimit, config.DefaultPageLimit, config.MaxPageLimit)
	}
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Controller{
		config:    config,
		log:       log,
		tracer:    tracer,
		metrics:   m,
		db:        db,
		host:      host,
		validator: validator,
		parser:    actions.Parser,
		handler:   &actions.Factory{},
		subs:      subs,
	}, nil
}

func (c *Controller) Tracer() trace.Tracer {
	return c.tracer
}

func (c *Controller) Parser() chain.ActionRegistry {
	return c.parser
}

// Clock is the source of request timestamps.
func (c *Controller) Clock() *mockable.Clock {
	return &c.clock
}

// Initialize loads [g] unless the store already holds a version record.
func (c *Controller) Initialize(ctx context.Context, g *genesis.Genesis) error {
	ctx, span := c.tracer.Start(ctx, "Controller.Initialize")
	defer span.End()

	c.l.Lock()
	defer c.l.Unlock()

	v, exists, err := storage.GetVersion(ctx, state.NewReadOnly(c.db))
	if err != nil {
		return err
	}
	if exists {
		c.log.Info("store already initialized",
			zap.String("contract", v.Contract),
			zap.String("version", v.Version),
		)
		return nil
	}

	ts := tstate.New(c.db, len(g.PairTypes)+2)
	view := ts.NewView(g.StateKeys())
	if err := g.Load(ctx, c.tracer, view); err != nil {
		return err
	}
	view.Commit()
	batch := c.db.NewBatch()
	if err := ts.WriteTo(batch); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	c.log.Info("initialized store",
		zap.String("owner", g.Owner),
		zap.Int("pairTypes", len(g.PairTypes)),
	)
	return nil
}

// Submit executes [action] on behalf of [actor], including every call it
// issues and every callback those calls produce.
func (c *Controller) Submit(
	ctx context.Context,
	actor codec.Address,
	action chain.Action,
	funds []chain.Coin,
) (*chain.Result, error) {
	ctx, span := c.tracer.Start(ctx, "Controller.Submit")
	defer span.End()

	scope := action.StateKeys(actor)
	return c.execute(ctx, c.actionName(action), scope, funds, func(ctx context.Context, req *request) error {
		return req.run(ctx, actor, action, 0)
	})
}

// SubmitBytes decodes an action written by [chain.MarshalAction] and submits
// it.
func (c *Controller) SubmitBytes(
	ctx context.Context,
	actor codec.Address,
	b []byte,
	funds []chain.Coin,
) (*chain.Result, error) {
	action, err := chain.UnmarshalAction(c.parser, b)
	if err != nil {
		return nil, err
	}
	return c.Submit(ctx, actor, action, funds)
}

// DeliverReply hands a callback that arrived outside of any request to the
// registry. Such a callback can only succeed if a creation is pending; a
// repeat of one already finalized reports the pair as registered.
func (c *Controller) DeliverReply(ctx context.Context, reply *chain.Reply) (*chain.Result, error) {
	ctx, span := c.tracer.Start(ctx, "Controller.DeliverReply")
	defer span.End()

	scope := state.Keys{}
	committed := state.NewReadOnly(c.db)
	for _, get := range []func(context.Context, state.Immutable) ([]byte, bool, error){
		storage.GetPendingCreation,
		storage.GetLastCreation,
	} {
		pairKey, exists, err := get(ctx, committed)
		if err != nil {
			return nil, err
		}
		if exists {
			scope.Add(string(storage.PairKey(pairKey)), state.All)
		}
	}
	return c.execute(ctx, "reply", scope, nil, func(ctx context.Context, req *request) error {
		return req.reply(ctx, reply, 0)
	})
}

func (c *Controller) execute(
	ctx context.Context,
	name string,
	scope state.Keys,
	funds []chain.Coin,
	f func(context.Context, *request) error,
) (*chain.Result, error) {
	c.l.Lock()
	defer c.l.Unlock()

	if c.closed {
		return nil, ErrClosed
	}

	start := time.Now()
	timestamp := c.clock.Time().Unix()
	ts := tstate.New(c.db, changedKeysEstimate)
	scope.Add(string(storage.PendingCreationKey()), state.All)
	scope.Add(string(storage.LastCreationKey()), state.All)
	req := &request{
		c:         c,
		view:      ts.NewView(scope),
		timestamp: timestamp,
		rt: &runtime{
			Validator: c.validator,
			self:      Address,
			funds:     funds,
			host:      c.host,
		},
	}

	err := f(ctx, req)
	if err == nil {
		err = c.commit(ctx, ts, req)
	}
	c.metrics.request.Observe(float64(time.Since(start)))
	if err != nil {
		c.metrics.rejected.WithLabelValues(name).Inc()
		c.log.Debug("discarded request",
			zap.String("action", name),
			zap.Int("calls", req.calls),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	c.metrics.accepted.WithLabelValues(name).Inc()
	for _, e := range req.events {
		switch e.Action {
		case actions.EventRegister:
			c.metrics.pairs.Inc()
		case actions.EventDeregister:
			c.metrics.pairs.Dec()
		}
	}

	result := &chain.Result{
		Success:   true,
		Events:    req.events,
		Calls:     req.calls,
		Timestamp: timestamp,
	}
	c.log.Debug("committed request",
		zap.String("action", name),
		zap.Int("events", len(req.events)),
		zap.Int("calls", req.calls),
		zap.Int("changes", ts.PendingChanges()),
	)
	if err := event.NotifyAll(ctx, result, c.subs...); err != nil {
		c.log.Warn("failed to notify subscribers", zap.Error(err))
	}
	return result, nil
}

// commit clears the pending creation slot and writes every change of [req]
// in one batch.
func (c *Controller) commit(ctx context.Context, ts *tstate.TState, req *request) error {
	if err := storage.ClearPendingCreation(ctx, req.view); err != nil {
		return err
	}
	req.view.Commit()
	batch := c.db.NewBatch()
	if err := ts.WriteTo(batch); err != nil {
		return err
	}
	return batch.Write()
}

func (c *Controller) actionName(action chain.Action) string {
	name, ok := c.parser.Name(action.GetTypeID())
	if !ok {
		return fmt.Sprintf("action-%d", action.GetTypeID())
	}
	return name
}

// Close rejects further requests and closes every subscription.
func (c *Controller) Close() error {
	c.l.Lock()
	defer c.l.Unlock()

	c.closed = true
	return event.CloseAll(c.subs...)
}
