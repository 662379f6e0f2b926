// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/tstate"
)

// request is the state of one top-level request. Every action, call and
// callback it runs shares [view].
type request struct {
	c         *Controller
	view      *tstate.TStateView
	rt        *runtime
	timestamp int64

	events []*chain.Event
	calls  int
}

func (r *request) run(ctx context.Context, actor codec.Address, action chain.Action, depth int) error {
	if depth > r.c.config.MaxCallDepth {
		return fmt.Errorf("%w: %d", ErrCallDepthExceeded, depth)
	}
	rt := r.rt
	if depth > 0 {
		rt = rt.nested()
	}
	resp, err := action.Execute(ctx, rt, r.view, r.timestamp, actor)
	if err != nil {
		return err
	}
	return r.dispatch(ctx, resp, depth)
}

// dispatch records the events of [resp] and issues its calls in order.
func (r *request) dispatch(ctx context.Context, resp *chain.Response, depth int) error {
	r.events = append(r.events, resp.Events...)
	for _, sub := range resp.Messages {
		r.calls++
		r.c.metrics.hostCalls.Inc()

		var (
			data []byte
			err  error
		)
		switch msg := sub.Msg.(type) {
		case *chain.InstantiatePair:
			data, err = r.instantiate(ctx, msg, depth)
		case *chain.ExecuteContract:
			err = r.c.host.Execute(ctx, r.rt.self, msg)
		default:
			err = fmt.Errorf("%w: %T", chain.ErrUnknownMessage, sub.Msg)
		}

		result := chain.SubMsgResult{Data: data}
		if err != nil {
			if sub.ReplyOn != chain.ReplyError && sub.ReplyOn != chain.ReplyAlways {
				return fmt.Errorf("call %d: %w", sub.ID, err)
			}
			result = chain.SubMsgResult{Error: err.Error()}
		} else if sub.ReplyOn != chain.ReplySuccess && sub.ReplyOn != chain.ReplyAlways {
			continue
		}
		if err := r.reply(ctx, &chain.Reply{ID: sub.ID, Result: result}, depth); err != nil {
			return err
		}
	}
	return nil
}

// instantiate deploys a pair, runs the calls the new contract issued and
// returns the instantiate response the callback carries.
func (r *request) instantiate(ctx context.Context, msg *chain.InstantiatePair, depth int) ([]byte, error) {
	res, err := r.c.host.Instantiate(ctx, r.rt.self, msg)
	if err != nil {
		return nil, err
	}
	if res == nil || res.Address == codec.EmptyAddress {
		return nil, chain.ErrMissingContractAddress
	}
	for _, call := range res.Calls {
		r.view.ExtendScope(call.Action.StateKeys(call.Actor))
		if err := r.run(ctx, call.Actor, call.Action, depth+1); err != nil {
			return nil, fmt.Errorf("nested call from %s: %w", call.Actor, err)
		}
	}
	saddr, err := codec.AddressBech32(consts.HRP, res.Address)
	if err != nil {
		return nil, err
	}
	return chain.EncodeInstantiateResponse(saddr, res.Data), nil
}

func (r *request) reply(ctx context.Context, reply *chain.Reply, depth int) error {
	r.c.metrics.replies.Inc()
	r.c.log.Debug("delivering reply",
		zap.Uint64("id", reply.ID),
		zap.Bool("failed", reply.Result.Failed()),
	)
	resp, err := r.c.handler.Reply(ctx, r.rt, r.view, reply)
	if err != nil {
		return err
	}
	return r.dispatch(ctx, resp, depth)
}
