// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/pairfactory/keys"
	"github.com/ava-labs/pairfactory/state"
)

const defaultOps = 8

var _ state.Mutable = (*TStateView)(nil)

type op struct {
	k string

	pastExists  bool
	pastV       []byte
	pastChanged bool
}

type TStateView struct {
	ts                 *TState
	pendingChangedKeys map[string]maybe.Maybe[[]byte]

	// Ops is a record of all operations performed on [TStateView]. Tracking
	// operations allows for reverting state to a certain point-in-time.
	ops []*op

	scope       state.Keys
	canAllocate bool
}

// NewView returns a view limited to [scope]. The view keeps its own copy of
// [scope].
func (ts *TState) NewView(scope state.Keys) *TStateView {
	owned := make(state.Keys, len(scope))
	owned.Union(scope)
	return &TStateView{
		ts:                 ts,
		pendingChangedKeys: make(map[string]maybe.Maybe[[]byte], len(scope)),
		ops:                make([]*op, 0, defaultOps),
		scope:              owned,
		canAllocate:        true,
	}
}

// ExtendScope grants the view access to [keys]. Nested calls made during a
// request declare their own keys and run in the view of the outer request.
func (ts *TStateView) ExtendScope(keys state.Keys) {
	ts.scope.Union(keys)
}

// Rollback restores the TStateView to the ts.ops[restorePoint] operation.
func (ts *TStateView) Rollback(_ context.Context, restorePoint int) {
	for i := len(ts.ops) - 1; i >= restorePoint; i-- {
		op := ts.ops[i]

		// The key was untouched before this op, so drop the overlay and let
		// reads fall through again.
		if !op.pastChanged {
			delete(ts.pendingChangedKeys, op.k)
			continue
		}
		if !op.pastExists {
			ts.pendingChangedKeys[op.k] = maybe.Nothing[[]byte]()
			continue
		}
		ts.pendingChangedKeys[op.k] = maybe.Some(op.pastV)
	}
	ts.ops = ts.ops[:restorePoint]
}

// OpIndex returns the number of operations done on ts.
func (ts *TStateView) OpIndex() int {
	return len(ts.ops)
}

// DisableAllocation causes [Insert] to return an error if it would create a
// new key.
func (ts *TStateView) DisableAllocation() {
	ts.canAllocate = false
}

func (ts *TStateView) EnableAllocation() {
	ts.canAllocate = true
}

func (ts *TStateView) checkScope(k []byte, perm state.Permissions) bool {
	return ts.scope[string(k)].Has(perm)
}

// GetValue returns the value associated with [key]. If [key] is not readable
// in the scope or does not exist an error is returned.
func (ts *TStateView) GetValue(_ context.Context, key []byte) ([]byte, error) {
	if !ts.checkScope(key, state.Read) {
		return nil, ErrInvalidKeyOrPermission
	}
	v, _, exists, err := ts.getValue(string(key))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func (ts *TStateView) getValue(key string) ([]byte, bool, bool, error) {
	if v, ok := ts.pendingChangedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false, nil
		}
		return v.Value(), true, true, nil
	}
	if v, changed, exists := ts.ts.getChangedValue(key); changed {
		return v, true, exists, nil
	}
	v, exists, err := ts.ts.getStoredValue(key)
	return v, false, exists, err
}

// Insert sets or updates [key] to [value].
//
// Any bytes passed into [Insert] will be consumed by [TStateView] and should
// not be modified/referenced after this call.
func (ts *TStateView) Insert(_ context.Context, key []byte, value []byte) error {
	if !keys.VerifyValue(key, value) {
		return ErrInvalidKeyValue
	}
	k := string(key)
	past, changed, exists, err := ts.getValue(k)
	if err != nil {
		return err
	}
	if exists {
		if !ts.checkScope(key, state.Write) {
			return ErrInvalidKeyOrPermission
		}
	} else {
		if !ts.checkScope(key, state.Allocate) {
			return ErrInvalidKeyOrPermission
		}
		if !ts.canAllocate {
			return ErrAllocationDisabled
		}
	}
	ts.pendingChangedKeys[k] = maybe.Some(value)
	ts.ops = append(ts.ops, &op{
		k:           k,
		pastExists:  exists,
		pastV:       past,
		pastChanged: changed,
	})
	return nil
}

// Remove deletes [key]. Removing a key that does not exist is a no-op.
func (ts *TStateView) Remove(_ context.Context, key []byte) error {
	if !ts.checkScope(key, state.Write) {
		return ErrInvalidKeyOrPermission
	}
	k := string(key)
	past, changed, exists, err := ts.getValue(k)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	ts.pendingChangedKeys[k] = maybe.Nothing[[]byte]()
	ts.ops = append(ts.ops, &op{
		k:           k,
		pastExists:  true,
		pastV:       past,
		pastChanged: changed,
	})
	return nil
}

func (ts *TStateView) PendingChanges() int {
	return len(ts.pendingChangedKeys)
}

// Commit folds the view's changes into its [TState].
func (ts *TStateView) Commit() {
	ts.ts.l.Lock()
	defer ts.ts.l.Unlock()

	for k, v := range ts.pendingChangedKeys {
		ts.ts.changedKeys[k] = v
	}
	ts.ts.ops += len(ts.ops)
}
