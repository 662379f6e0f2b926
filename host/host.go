// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/set"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/pairfactory/chain"
	"github.com/ava-labs/pairfactory/codec"
	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/controller"
)

var (
	_ controller.Host = (*Local)(nil)

	ErrUnknownPair      = errors.New("unknown pair")
	ErrTemplateRejected = errors.New("template rejected instantiation")
)

// InstantiateHook returns the calls a freshly deployed pair issues before
// its deployment is reported back.
type InstantiateHook func(pair codec.Address, msg *chain.InstantiatePair) []*chain.Call

// Local deploys pairs in memory. Addresses are derived from the deployment
// sequence so identical runs produce identical registries.
type Local struct {
	log logging.Logger

	l           sync.Mutex
	nonce       uint64
	pairs       map[codec.Address]*chain.PairInfo
	executed    []*chain.ExecuteContract
	rejected    set.Set[uint64]
	onDeploy    InstantiateHook
	deactivated set.Set[codec.Address]
}

func NewLocal(log logging.Logger) *Local {
	return &Local{
		log:   log,
		pairs: map[codec.Address]*chain.PairInfo{},
	}
}

// RejectTemplate makes every instantiation of [templateID] fail.
func (h *Local) RejectTemplate(templateID uint64) {
	h.l.Lock()
	defer h.l.Unlock()

	h.rejected.Add(templateID)
}

func (h *Local) OnInstantiate(hook InstantiateHook) {
	h.l.Lock()
	defer h.l.Unlock()

	h.onDeploy = hook
}

func (h *Local) Instantiate(
	_ context.Context,
	sender codec.Address,
	msg *chain.InstantiatePair,
) (*chain.InstantiateResult, error) {
	h.l.Lock()
	defer h.l.Unlock()

	if h.rejected.Contains(msg.TemplateID) {
		return nil, fmt.Errorf("%w: %d", ErrTemplateRejected, msg.TemplateID)
	}
	if msg.Msg == nil {
		return nil, fmt.Errorf("%w: missing instantiate message", chain.ErrUnknownMessage)
	}

	h.nonce++
	pair := deriveAddress(consts.PairAddressID, sender, msg.TemplateID, h.nonce)
	info := &chain.PairInfo{
		ContractAddr:   pair,
		AssetInfos:     msg.Msg.AssetInfos,
		LiquidityToken: deriveAddress(consts.LiquidityTokenAddressID, pair, msg.Msg.TokenTemplateID, h.nonce),
		PairType:       msg.Msg.PairType,
	}
	h.pairs[pair] = info
	h.log.Debug("instantiated pair",
		zap.Stringer("pair", pair),
		zap.Uint64("template", msg.TemplateID),
		zap.String("pairType", info.PairType),
	)

	result := &chain.InstantiateResult{
		Address: pair,
		Data:    msg.Msg.Bytes(),
	}
	if h.onDeploy != nil {
		result.Calls = h.onDeploy(pair, msg)
	}
	return result, nil
}

func (h *Local) Execute(_ context.Context, _ codec.Address, msg *chain.ExecuteContract) error {
	h.l.Lock()
	defer h.l.Unlock()

	deactivate, err := chain.UnmarshalDeactivatePool(msg.Msg)
	if err != nil {
		return err
	}
	h.deactivated.Add(deactivate.LPToken)
	h.executed = append(h.executed, msg)
	h.log.Debug("deactivated pool",
		zap.Stringer("incentives", msg.Contract),
		zap.Stringer("lpToken", deactivate.LPToken),
	)
	return nil
}

func (h *Local) QueryPair(_ context.Context, pair codec.Address) (*chain.PairInfo, error) {
	h.l.Lock()
	defer h.l.Unlock()

	info, ok := h.pairs[pair]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPair, pair)
	}
	return info, nil
}

// Deployed returns every pair ever instantiated, ordered by address.
func (h *Local) Deployed() []*chain.PairInfo {
	h.l.Lock()
	defer h.l.Unlock()

	addrs := maps.Keys(h.pairs)
	sortAddresses(addrs)
	infos := make([]*chain.PairInfo, len(addrs))
	for i, addr := range addrs {
		infos[i] = h.pairs[addr]
	}
	return infos
}

// Deactivated reports whether the incentives contract was told to drop the
// pool of [lpToken].
func (h *Local) Deactivated(lpToken codec.Address) bool {
	h.l.Lock()
	defer h.l.Unlock()

	return h.deactivated.Contains(lpToken)
}

func (h *Local) Executed() []*chain.ExecuteContract {
	h.l.Lock()
	defer h.l.Unlock()

	executed := make([]*chain.ExecuteContract, len(h.executed))
	copy(executed, h.executed)
	return executed
}

func deriveAddress(typeID uint8, parent codec.Address, templateID uint64, nonce uint64) codec.Address {
	b := make([]byte, codec.AddressLen+2*consts.Uint64Len)
	copy(b, parent[:])
	binary.BigEndian.PutUint64(b[codec.AddressLen:], templateID)
	binary.BigEndian.PutUint64(b[codec.AddressLen+consts.Uint64Len:], nonce)
	return codec.CreateAddress(typeID, ids.ID(hashing.ComputeHash256Array(b)))
}

func sortAddresses(addrs []codec.Address) {
	slices.SortFunc(addrs, func(a, b codec.Address) int {
		return bytes.Compare(a[:], b[:])
	})
}
