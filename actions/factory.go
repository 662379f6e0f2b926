// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/state"
	"github.com/ava-labs/pairfactory/storage"
)

var _ chain.ReplyHandler = (*Factory)(nil)

// Factory finalizes pair deployments started by [CreatePair].
type Factory struct{}

// Reply registers the contract reported by a successful deployment under the
// pending pair key. The key is kept as the last creation, so a callback
// repeated after its request committed hits the already-registered guard.
func (*Factory) Reply(
	ctx context.Context,
	_ chain.Runtime,
	mu state.Mutable,
	reply *chain.Reply,
) (*chain.Response, error) {
	if reply.ID != InstantiatePairReplyID {
		return nil, fmt.Errorf("%w: reply id %d", ErrUnrecognizedCallback, reply.ID)
	}
	if reply.Result.Failed() {
		return nil, fmt.Errorf("%w: deployment failed: %s", ErrUnrecognizedCallback, reply.Result.Error)
	}
	if len(reply.Result.Data) == 0 {
		return nil, fmt.Errorf("%w: no instantiate response", ErrUnrecognizedCallback)
	}
	pairKey, exists, err := storage.GetPendingCreation(ctx, mu)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, replayError(ctx, mu)
	}
	registered, exists, err := storage.GetPair(ctx, mu, pairKey)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: key %x at %s", ErrPairAlreadyRegistered, pairKey, bech32(registered))
	}
	saddr, _, err := chain.ParseInstantiateResponse(reply.Result.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCallback, err)
	}
	pair, err := codec.ParseAddressBech32(consts.HRP, saddr)
	if err != nil {
		return nil, fmt.Errorf("%w: contract address %q: %w", ErrMalformedCallback, saddr, err)
	}
	if err := storage.SetPair(ctx, mu, pairKey, pair); err != nil {
		return nil, err
	}
	if err := storage.SetLastCreation(ctx, mu, pairKey); err != nil {
		return nil, err
	}
	event := chain.NewEvent(EventRegister).Add(AttrPairContractAddr, saddr)
	return chain.NewResponse().AddEvent(event), nil
}

// replayError explains a callback that arrived with no creation pending.
func replayError(ctx context.Context, im state.Immutable) error {
	pairKey, exists, err := storage.GetLastCreation(ctx, im)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPendingCreationNotFound
	}
	registered, exists, err := storage.GetPair(ctx, im, pairKey)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPendingCreationNotFound
	}
	return fmt.Errorf("%w: key %x at %s", ErrPairAlreadyRegistered, pairKey, bech32(registered))
}
